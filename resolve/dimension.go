package resolve

import (
	"strings"

	"twstyle/ir"
	"twstyle/style"
	"twstyle/theme"
	"twstyle/units"
)

// Size resolves width and height style values.
func Size(prop, category string) Func {
	return single(prop, func(ctx Context, value string) (style.Value, error) {
		return configOrUnconfigged(ctx, category, value)
	})
}

// MinMax resolves minWidth, maxHeight and friends. "screen" means the full
// viewport along the property's axis.
func MinMax(prop, category string) Func {
	return single(prop, func(ctx Context, value string) (style.Value, error) {
		if cfg, ok := ctx.Theme.Value(category, value); ok {
			if v, err := units.Value(cfg, ctx.units()); err == nil {
				return v, nil
			}
		}
		if value == "screen" {
			value = "100vh"
			if strings.HasSuffix(prop, "Width") {
				value = "100vw"
			}
		}
		return units.Unconfigged(value, ctx.units())
	})
}

// Inset resolves top, bottom, left, right and the inset shorthand with its
// x and y axis forms.
func Inset(prop string) Func {
	return func(ctx Context, value string) (ir.IR, error) {
		d := All
		if prop == "inset" {
			if rest, ok := strings.CutPrefix(value, "x-"); ok {
				d, value = Horizontal, rest
			} else if rest, ok := strings.CutPrefix(value, "y-"); ok {
				d, value = Vertical, rest
			}
		}

		var v style.Value
		if value == "auto" {
			v = style.String("auto")
		} else {
			var err error
			if v, err = configOrUnconfigged(ctx, theme.Inset, value); err != nil {
				return ir.None, classify(err)
			}
		}
		return ir.Of(insetStyle(prop, d, v)), nil
	}
}

func insetStyle(prop string, d Direction, v style.Value) *style.Style {
	s := style.New()
	if prop != "inset" {
		s.Set(prop, v)
		return s
	}
	switch d {
	case Horizontal:
		s.Set("left", v)
		s.Set("right", v)
	case Vertical:
		s.Set("top", v)
		s.Set("bottom", v)
	default:
		s.Set("top", v)
		s.Set("left", v)
		s.Set("right", v)
		s.Set("bottom", v)
	}
	return s
}
