package resolve

import (
	"strconv"
	"strings"

	"twstyle/ir"
	"twstyle/style"
	"twstyle/units"
)

// ShadowOpacity resolves shadow-opacity-<percent>.
func ShadowOpacity() Func {
	return func(_ Context, value string) (ir.IR, error) {
		pct, err := strconv.Atoi(value)
		if err != nil {
			return ir.None, notMine(value)
		}
		return ir.Prop("shadowOpacity", style.Number(float64(pct)/100)), nil
	}
}

// ShadowOffset resolves shadow-offset-<n> and shadow-offset-<w>/<h>.
func ShadowOffset() Func {
	return func(_ Context, value string) (ir.IR, error) {
		w, h, pair := strings.Cut(value, "/")
		if !pair {
			h = w
		}
		width, err := offsetValue(w)
		if err != nil {
			return ir.None, err
		}
		height, err := offsetValue(h)
		if err != nil {
			return ir.None, err
		}
		offset := style.New()
		offset.Set("width", width)
		offset.Set("height", height)
		return ir.Prop("shadowOffset", style.Nested(offset)), nil
	}
}

func offsetValue(s string) (style.Value, error) {
	v, err := units.Unconfigged(s, units.Context{})
	if err != nil {
		return style.Value{}, classify(err)
	}
	if _, ok := v.Num(); !ok {
		return style.Value{}, notMine(s)
	}
	return v, nil
}

// ShadowRadius resolves shadow-radius-<n>.
func ShadowRadius() Func {
	return single("shadowRadius", func(_ Context, value string) (style.Value, error) {
		return units.Unconfigged(value, units.Context{})
	})
}

// Elevation resolves elevation-<int>.
func Elevation() Func {
	return func(_ Context, value string) (ir.IR, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return ir.None, notMine(value)
		}
		return ir.Prop("elevation", style.Number(float64(n))), nil
	}
}
