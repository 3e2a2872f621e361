package resolve

import (
	"slices"
	"strings"

	"twstyle/ir"
	"twstyle/style"
	"twstyle/theme"
	"twstyle/units"
)

const (
	transformKey = "transform"
	filterKey    = "filter"

	// transformNoneKey suppresses every transform contribution of a resolution.
	transformNoneKey = style.PrivatePrefix + "transform_none"
)

// combine writes {entry: v} into the list stored under listKey. An existing
// entry with the same key is replaced at its position, otherwise the entry is
// appended. The list is rebuilt so that values shared with cached IR are never
// mutated.
func combine(s *style.Style, listKey, entry string, v style.Value) {
	var items []*style.Style
	if cur, ok := s.Get(listKey); ok {
		items, _ = cur.Items()
	}
	items = slices.Clone(items)

	item := style.New()
	item.Set(entry, v)

	i := slices.IndexFunc(items, func(it *style.Style) bool { return it.Has(entry) })
	if i >= 0 {
		items[i] = item
	} else {
		items = append(items, item)
	}
	s.Set(listKey, style.List(items...))
}

func transformEntry(entry string, v style.Value) ir.IR {
	return ir.Defer(func(s *style.Style) error {
		if s.Has(transformNoneKey) {
			return nil
		}
		combine(s, transformKey, entry, v)
		return nil
	})
}

// TransformNone clears the transform list and suppresses any other transform
// utility of the same resolution, whatever its position.
func TransformNone() ir.IR {
	return ir.Defer(func(s *style.Style) error {
		s.Set(transformKey, style.List())
		s.Set(transformNoneKey, style.Bool(true))
		return nil
	})
}

// cutAxis strips a leading "<axis>-" for any of the given axes and returns
// the upper-cased axis.
func cutAxis(value string, axes ...string) (string, string) {
	for _, a := range axes {
		if rest, ok := strings.CutPrefix(value, a+"-"); ok {
			return rest, strings.ToUpper(a)
		}
	}
	return value, ""
}

// Scale resolves scale-<n>, scale-x-<n> and scale-y-<n>. Unconfigged values
// are percentages, bracketed values are used verbatim.
func Scale() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		value, axis := cutAxis(value, "x", "y")

		var v style.Value
		switch cfg, ok := ctx.Theme.Value(theme.Scale, value); {
		case ok:
			var err error
			if v, err = units.Value(cfg, ctx.positive()); err != nil {
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
		if ctx.Negative {
			if n, ok := v.Num(); ok {
				v = style.Number(-n)
			}
		}
		return transformEntry("scale"+axis, v), nil
	}
}

// angle resolves a rotate or skew amount: theme entry, bracketed value or a
// bare number of degrees.
func angle(ctx Context, category, value string) (style.Value, error) {
	if cfg, ok := ctx.Theme.Value(category, value); ok {
		return units.Value(cfg, ctx.units())
	}
	if units.IsArbitrary(value) {
		return units.Value(units.Unbracket(value), ctx.units())
	}
	n, _, err := units.Parse(value, false)
	if err != nil {
		return style.Value{}, err
	}
	return units.Convert(n, units.Deg, ctx.units())
}

// Rotate resolves rotate-<deg> and its x, y and z axis forms.
func Rotate() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		value, axis := cutAxis(value, "x", "y", "z")
		v, err := angle(ctx, theme.Rotate, value)
		if err != nil {
			return ir.None, classify(err)
		}
		return transformEntry("rotate"+axis, v), nil
	}
}

// Skew resolves skew-x-<deg> and skew-y-<deg>; an axis is required.
func Skew() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		value, axis := cutAxis(value, "x", "y")
		if axis == "" {
			return ir.None, notMine(value)
		}
		v, err := angle(ctx, theme.Skew, value)
		if err != nil {
			return ir.None, classify(err)
		}
		return transformEntry("skew"+axis, v), nil
	}
}

// Translate resolves translate-x-<n> and translate-y-<n>; an axis is
// required.
func Translate() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		value, axis := cutAxis(value, "x", "y")
		if axis == "" {
			return ir.None, notMine(value)
		}
		v, err := configOrUnconfigged(ctx, theme.Translate, value)
		if err != nil {
			return ir.None, classify(err)
		}
		return transformEntry("translate"+axis, v), nil
	}
}

var originPositions = []string{"left", "center", "right", "top", "bottom"}

// Origin resolves origin-<name> from the theme or origin-[x_y_z] where x and
// y are positions, pixels or percentages and z is pixels.
func Origin() Func {
	return func(ctx Context, value string) (ir.IR, error) {
		if cfg, ok := ctx.Theme.Value(theme.TransformOrigin, value); ok {
			return ir.Prop("transformOrigin", style.String(cfg)), nil
		}
		if !units.IsArbitrary(value) {
			return ir.None, notMine(value)
		}
		parts := strings.Split(units.Unbracket(value), "_")
		if len(parts) > 3 {
			return ir.None, notMine(value)
		}

		first, ok := originValue(parts[0], originPositions, ctx.Negative, units.Px, units.Percent)
		if !ok {
			return ir.None, notMine(value)
		}
		out := []string{first}
		if len(parts) >= 2 {
			allowed := slices.DeleteFunc(slices.Clone(originPositions), func(p string) bool {
				return p != "center" && p == first
			})
			second, ok := originValue(parts[1], allowed, ctx.Negative, units.Px, units.Percent)
			if !ok {
				return ir.None, notMine(value)
			}
			out = append(out, second)
		}
		if len(parts) == 3 {
			third, ok := originValue(parts[2], nil, ctx.Negative, units.Px)
			if !ok {
				return ir.None, notMine(value)
			}
			out = append(out, third)
		}
		return ir.Prop("transformOrigin", style.String(strings.Join(out, " "))), nil
	}
}

func originValue(s string, positions []string, negative bool, allowed ...units.Unit) (string, bool) {
	if s == "" {
		return "", false
	}
	if slices.Contains(positions, s) {
		return s, true
	}
	n, u, err := units.Parse(s, false)
	if err != nil || !slices.Contains(allowed, u) {
		return "", false
	}
	if negative {
		n = -n
	}
	return units.Format(n) + u.String(), true
}
