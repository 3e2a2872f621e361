package resolve

import (
	"math"
	"strings"

	"twstyle/ir"
	"twstyle/style"
	"twstyle/theme"
	"twstyle/units"
)

func filterEntry(entry string, v style.Value) ir.IR {
	return ir.Defer(func(s *style.Style) error {
		combine(s, filterKey, entry, v)
		return nil
	})
}

// Filter resolves brightness, contrast and saturate amounts. Unconfigged
// values are percentages, bracketed values are used verbatim.
func Filter(entry, category string) Func {
	return func(ctx Context, value string) (ir.IR, error) {
		var v style.Value
		switch cfg, ok := ctx.Theme.Value(category, value); {
		case ok:
			var err error
			if v, err = units.Value(cfg, units.Context{}); err != nil {
				return ir.None, classify(err)
			}
		case units.IsArbitrary(value):
			n, _, err := units.Parse(units.Unbracket(value), false)
			if err != nil {
				return ir.None, notMine(value)
			}
			v = style.Number(n)
		default:
			n, _, err := units.Parse(value, false)
			if err != nil {
				return ir.None, notMine(value)
			}
			v = style.Number(n / 100)
		}
		return filterEntry(entry, v), nil
	}
}

// Amount resolves grayscale, invert and sepia. The bare form ("grayscale")
// applies the DEFAULT entry or the full effect; "-<n>" selects an amount
// where integers are percentages.
func Amount(entry, category string) Func {
	return func(ctx Context, value string) (ir.IR, error) {
		key, hasAmount := strings.CutPrefix(value, "-")
		if !hasAmount {
			if value != "" {
				return ir.None, notMine(value)
			}
			key = theme.DefaultKey
		}

		if cfg, ok := ctx.Theme.Value(category, key); ok {
			n, u, err := units.Parse(cfg, false)
			if err != nil {
				return ir.None, classify(err)
			}
			if u == units.Percent {
				n /= 100
			}
			return filterEntry(entry, style.Number(n)), nil
		}
		if !hasAmount {
			return filterEntry(entry, style.Number(1)), nil
		}

		n, _, err := units.Parse(units.Unbracket(key), false)
		if err != nil {
			return ir.None, notMine(value)
		}
		if n == math.Trunc(n) {
			n /= 100
		}
		return filterEntry(entry, style.Number(n)), nil
	}
}

// HueRotate resolves hue-rotate-<deg>.
func HueRotate() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		v, err := angle(Context{Theme: ctx.Theme, Negative: ctx.Negative}, theme.HueRotate, value)
		if err != nil {
			return ir.None, classify(err)
		}
		return filterEntry("hueRotate", v), nil
	}
}
