package resolve

import (
	"regexp"
	"slices"
	"strings"

	"twstyle/ir"
	"twstyle/style"
	"twstyle/theme"
	"twstyle/units"
)

var borderWidthValue = regexp.MustCompile(`^(-?\d+)?$`)

var borderStyles = []string{"solid", "dashed", "dotted"}

// Border resolves everything after the "border" literal: widths ("", "-2",
// "-t-4"), styles, colors ("-red-500", "-b-[#fff]") and arbitrary widths
// ("-[3px]").
func Border() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		rest, d := consumeDirection(value)
		prop := "border" + d.Suffix() + "Width"

		if borderWidthValue.MatchString(rest) {
			key := strings.TrimPrefix(rest, "-")
			if key == "" {
				key = theme.DefaultKey
			}
			cfg, ok := ctx.Theme.Value(theme.BorderWidth, key)
			if !ok {
				return ir.None, notMine(value)
			}
			v, err := units.Value(cfg, units.Context{})
			if err != nil {
				return ir.None, classify(err)
			}
			return ir.Prop(prop, v), nil
		}

		rest = strings.TrimPrefix(rest, "-")
		if slices.Contains(borderStyles, rest) {
			return ir.Prop("borderStyle", style.String(rest)), nil
		}

		if res, err := Color(borderColorTarget(d))(ctx, rest); err == nil {
			return res, nil
		}

		if !units.IsArbitrary(rest) {
			return ir.None, notMine(value)
		}
		v, err := units.Unconfigged(units.Unbracket(rest), units.Context{})
		if err != nil {
			return ir.None, classify(err)
		}
		if _, ok := v.Num(); !ok {
			return ir.None, notMine(value)
		}
		return ir.Prop(prop, v), nil
	}
}

// Radius resolves everything after the "rounded" literal. Side forms expand
// to the two corner properties native platforms support.
func Radius() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		rest, d := consumeDirection(value)
		rest = strings.TrimPrefix(rest, "-")
		if rest == "" {
			rest = theme.DefaultKey
		}

		var v style.Value
		if cfg, ok := ctx.Theme.Value(theme.BorderRadius, rest); ok {
			var err error
			if v, err = units.Value(cfg, units.Context{}); err != nil {
				return ir.None, classify(err)
			}
		} else {
			var err error
			if v, err = units.Unconfigged(rest, units.Context{}); err != nil {
				return ir.None, classify(err)
			}
			if _, ok := v.Num(); !ok {
				return ir.None, notMine(value)
			}
		}
		return ir.Of(radiusStyle(d, v)), nil
	}
}

func radiusStyle(d Direction, v style.Value) *style.Style {
	s := style.New()
	switch d {
	case Top:
		s.Set("borderTopLeftRadius", v)
		s.Set("borderTopRightRadius", v)
	case Bottom:
		s.Set("borderBottomLeftRadius", v)
		s.Set("borderBottomRightRadius", v)
	case Left:
		s.Set("borderBottomLeftRadius", v)
		s.Set("borderTopLeftRadius", v)
	case Right:
		s.Set("borderBottomRightRadius", v)
		s.Set("borderTopRightRadius", v)
	default:
		s.Set("border"+d.Suffix()+"Radius", v)
	}
	return s
}
