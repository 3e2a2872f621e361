package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"twstyle/ir"
	"twstyle/style"
	"twstyle/theme"
	"twstyle/units"
)

var (
	flexOne   = regexp.MustCompile(`^\d+(\.\d+)?$`)
	flexTwo   = regexp.MustCompile(`^(\d+)\s+(\d+)$`)
	flexBasis = regexp.MustCompile(`^(\d+)\s+([^ ]+)$`)
	flexThree = regexp.MustCompile(`^(\d+)\s+(\d+)\s+(.+)$`)
)

// Flex resolves the flex-<value> shorthand in its one, two and three value
// forms. Values may come from the theme or be written with underscores in
// brackets: flex-[2_1_0%].
func Flex() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		raw, ok := ctx.Theme.Value(theme.Flex, value)
		if !ok {
			raw = strings.ReplaceAll(units.Unbracket(value), "_", " ")
		}

		if flexOne.MatchString(raw) {
			grow, _ := strconv.ParseFloat(raw, 64)
			return ir.Of(style.Of("flexGrow", grow, "flexBasis", "0%")), nil
		}
		if m := flexTwo.FindStringSubmatch(raw); m != nil {
			return ir.Of(style.Of("flexGrow", atof(m[1]), "flexShrink", atof(m[2]))), nil
		}
		if m := flexBasis.FindStringSubmatch(raw); m != nil {
			basis, err := units.Value(m[2], units.Context{})
			if err != nil {
				return ir.None, classify(err)
			}
			return ir.Of(style.Of("flexGrow", atof(m[1]), "flexBasis", basis)), nil
		}
		if m := flexThree.FindStringSubmatch(raw); m != nil {
			basis, err := units.Value(m[3], units.Context{})
			if err != nil {
				return ir.None, classify(err)
			}
			return ir.Of(style.Of("flexGrow", atof(m[1]), "flexShrink", atof(m[2]), "flexBasis", basis)), nil
		}
		return ir.None, notMine(value)
	}
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// GrowShrink resolves grow, shrink, flex-grow and flex-shrink. value is
// empty for the bare form, which uses the DEFAULT theme entry.
func GrowShrink(prop, category string) Func {
	return func(ctx Context, value string) (ir.IR, error) {
		value = units.Unbracket(strings.TrimPrefix(value, "-"))
		key := value
		if key == "" {
			key = theme.DefaultKey
		}
		raw, ok := ctx.Theme.Value(category, key)
		if !ok {
			raw = value
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ir.None, notMine(value)
		}
		return ir.Prop(prop, style.Number(n)), nil
	}
}

// Basis resolves basis-<value> and flex-basis-<value>.
func Basis() Func {
	return single("flexBasis", func(ctx Context, value string) (style.Value, error) {
		return configOrUnconfigged(ctx, theme.FlexBasis, value)
	})
}

// Gap resolves gap-<n>, gap-x-<n> (columnGap) and gap-y-<n> (rowGap).
func Gap() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		prop := "gap"
		if rest, ok := strings.CutPrefix(value, "x-"); ok {
			prop, value = "columnGap", rest
		} else if rest, ok := strings.CutPrefix(value, "y-"); ok {
			prop, value = "rowGap", rest
		}
		v, err := configOrUnconfigged(ctx, theme.Gap, value)
		if err != nil {
			return ir.None, classify(err)
		}
		return ir.Prop(prop, v), nil
	}
}
