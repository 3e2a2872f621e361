package resolve

import (
	"fmt"
	"math"

	"twstyle/ir"
	"twstyle/style"
	"twstyle/theme"
	"twstyle/units"
)

// FontSize resolves text-<size>. Configured sizes may carry a line height
// (relative values are multiplied by the size) and a letter spacing.
func FontSize() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		fs, ok := ctx.Theme.FontSize(value)
		if !ok {
			v, err := units.Unconfigged(value, ctx.units())
			if err != nil {
				return ir.None, classify(err)
			}
			return ir.Prop("fontSize", v), nil
		}

		size, err := units.Value(fs.Size, ctx.positive())
		if err != nil {
			return ir.None, classify(err)
		}
		s := style.New()
		s.Set("fontSize", size)
		px, numeric := size.Num()

		if fs.LineHeight != "" {
			if v, ok := relativeTo(fs.LineHeight, px, numeric, false); ok {
				s.Set("lineHeight", v)
			}
		}
		if fs.LetterSpacing != "" {
			if v, ok := relativeTo(fs.LetterSpacing, px, numeric, true); ok {
				s.Set("letterSpacing", v)
			}
		}
		return ir.Of(s), nil
	}
}

// relativeTo converts a companion value of a font size. Unitless and em
// values scale with the size; em letter spacing is rounded to hundredths.
func relativeTo(raw string, size float64, sizeKnown, round bool) (style.Value, bool) {
	n, u, err := units.Parse(raw, false)
	if err != nil {
		return style.Value{}, false
	}
	if sizeKnown && (u == units.None || u == units.Em) {
		if round {
			return style.Number(round2(n * size)), true
		}
		return style.Number(n * size), true
	}
	v, err := units.Convert(n, u, units.Context{})
	if err != nil {
		return style.Value{}, false
	}
	return v, true
}

// LineHeight resolves leading-<value>. Unitless values are relative to the
// font size and therefore resolved after all other utilities merged.
func LineHeight() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		raw, ok := ctx.Theme.Value(theme.LineHeight, value)
		if !ok {
			raw = units.Unbracket(value)
		}
		n, u, err := units.Parse(raw, false)
		if err != nil {
			return ir.None, classify(err)
		}
		if u == units.None {
			return ir.Defer(func(s *style.Style) error {
				size, ok := fontSize(s)
				if !ok {
					return fmt.Errorf("relative line height %q: %w", value, ErrFontSizeRequired)
				}
				s.Set("lineHeight", style.Number(size*n))
				return nil
			}), nil
		}
		v, err := units.Convert(n, u, ctx.positive())
		if err != nil {
			return ir.None, classify(err)
		}
		return ir.Prop("lineHeight", v), nil
	}
}

// LetterSpacing resolves tracking-<value>. Configured em values depend on
// the font size.
func LetterSpacing() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		raw, ok := ctx.Theme.Value(theme.LetterSpacing, value)
		if !ok {
			v, err := units.Unconfigged(value, ctx.units())
			if err != nil {
				return ir.None, classify(err)
			}
			return ir.Prop("letterSpacing", v), nil
		}

		n, u, err := units.Parse(raw, false)
		if err != nil {
			return ir.None, classify(err)
		}
		switch u {
		case units.Em:
			if ctx.Negative {
				n = -n
			}
			return ir.Defer(func(s *style.Style) error {
				size, ok := fontSize(s)
				if !ok {
					return fmt.Errorf("relative letter spacing %q: %w", value, ErrFontSizeRequired)
				}
				s.Set("letterSpacing", style.Number(round2(n*size)))
				return nil
			}), nil
		case units.Percent:
			return ir.None, fmt.Errorf("percentage letter spacing %q: %w", raw, units.ErrUnsupportedUnit)
		}
		v, err := units.Convert(n, u, ctx.units())
		if err != nil {
			return ir.None, classify(err)
		}
		return ir.Prop("letterSpacing", v), nil
	}
}

// FontFamily resolves font-<family> to the first configured family.
func FontFamily() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		families, ok := ctx.Theme.FontFamily(value)
		if !ok || len(families) == 0 {
			return ir.None, notMine(value)
		}
		return ir.Prop("fontFamily", style.String(families[0])), nil
	}
}

func fontSize(s *style.Style) (float64, bool) {
	v, ok := s.Get("fontSize")
	if !ok {
		return 0, false
	}
	n, ok := v.Num()
	if !ok || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

const epsilon = 0x1p-52

func round2(f float64) float64 {
	return math.Round((f+epsilon)*100) / 100
}
