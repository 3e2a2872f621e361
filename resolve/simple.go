package resolve

import (
	"slices"
	"strconv"

	"twstyle/ir"
	"twstyle/style"
	"twstyle/theme"
	"twstyle/units"
)

// Keyword accepts a fixed set of values written verbatim to prop.
func Keyword(prop string, allowed ...string) Func {
	return func(_ Context, value string) (ir.IR, error) {
		if !slices.Contains(allowed, value) {
			return ir.None, notMine(value)
		}
		return ir.Prop(prop, style.String(value)), nil
	}
}

// Opacity resolves opacity-<n>: configured values are used as is, bare
// numbers are percentages.
func Opacity() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		if cfg, ok := ctx.Theme.Value(theme.Opacity, value); ok {
			if n, _, err := units.Parse(cfg, false); err == nil {
				return ir.Prop("opacity", style.Number(n)), nil
			}
		}
		n, _, err := units.Parse(units.Unbracket(value), false)
		if err != nil {
			return ir.None, notMine(value)
		}
		return ir.Prop("opacity", style.Number(n/100)), nil
	}
}

// ZIndex resolves z-<n>, honoring the sign of negated tokens.
func ZIndex() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		raw, ok := ctx.Theme.Value(theme.ZIndex, value)
		if !ok {
			raw = units.Unbracket(value)
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ir.None, notMine(value)
		}
		if ctx.Negative {
			n = -n
		}
		return ir.Prop("zIndex", style.Number(n)), nil
	}
}

// AspectRatio resolves aspect-ratio-<n> and aspect-ratio-<a>/<b>.
func AspectRatio() Func {
	return func(_ Context, value string) (ir.IR, error) {
		n, _, err := units.Parse(units.Unbracket(value), true)
		if err != nil {
			return ir.None, notMine(value)
		}
		return ir.Prop("aspectRatio", style.Number(n)), nil
	}
}

// OutlineWidth resolves outline-<width>.
func OutlineWidth() Func {
	return single("outlineWidth", func(ctx Context, value string) (style.Value, error) {
		return configOrUnconfigged(Context{Theme: ctx.Theme}, theme.OutlineWidth, value)
	})
}

// OutlineOffset resolves outline-offset-<n>, honoring negation.
func OutlineOffset() Func {
	return single("outlineOffset", func(ctx Context, value string) (style.Value, error) {
		return configOrUnconfigged(Context{Theme: ctx.Theme, Negative: ctx.Negative}, theme.OutlineOffset, value)
	})
}
