// Package resolve turns the value part of a utility token into IR. Each
// resolver serves one utility family and reports one of three outcomes:
// a nil error means the token resolved, ErrNotMine lets the dispatcher try
// the next candidate, and any other error marks the token invalid.
package resolve

import (
	"errors"
	"fmt"

	"twstyle/ir"
	"twstyle/style"
	"twstyle/theme"
	"twstyle/units"
)

var (
	ErrNotMine          = errors.New("not handled by this resolver")
	ErrFontSizeRequired = errors.New("font size must be set")
)

// Context carries everything a resolver may consult.
type Context struct {
	Theme    *theme.Theme
	Negative bool
	// Viewport is nil when window dimensions are unknown.
	Viewport *units.Viewport
}

func (c Context) units() units.Context {
	return units.Context{Negative: c.Negative, Viewport: c.Viewport}
}

func (c Context) positive() units.Context {
	return units.Context{Viewport: c.Viewport}
}

// Func resolves the value part of a token.
type Func func(ctx Context, value string) (ir.IR, error)

func notMine(value string) error {
	return fmt.Errorf("%w: %q", ErrNotMine, value)
}

// classify maps unit conversion failures onto resolver outcomes. Values the
// family cannot parse belong to someone else; values it recognizes but
// cannot convert are invalid.
func classify(err error) error {
	if errors.Is(err, units.ErrViewportRequired) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrNotMine, err)
}

// configOrUnconfigged converts the theme value for key when present and
// falls back to the unconfigged form otherwise.
func configOrUnconfigged(ctx Context, category, key string) (style.Value, error) {
	if cfg, ok := ctx.Theme.Value(category, key); ok {
		return units.Value(cfg, ctx.units())
	}
	return units.Unconfigged(key, ctx.units())
}

// single wraps one property write into a resolver.
func single(prop string, convert func(Context, string) (style.Value, error)) Func {
	return func(ctx Context, value string) (ir.IR, error) {
		v, err := convert(ctx, value)
		if err != nil {
			return ir.None, classify(err)
		}
		return ir.Prop(prop, v), nil
	}
}
