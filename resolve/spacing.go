package resolve

import (
	"regexp"
	"strings"

	"twstyle/ir"
	"twstyle/style"
	"twstyle/theme"
	"twstyle/units"
)

// Direction selects which sides a box value applies to.
type Direction int

const (
	All Direction = iota
	Top
	Right
	Bottom
	Left
	Horizontal
	Vertical
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

var directionSuffix = map[Direction]string{
	Top:         "Top",
	Right:       "Right",
	Bottom:      "Bottom",
	Left:        "Left",
	TopLeft:     "TopLeft",
	TopRight:    "TopRight",
	BottomLeft:  "BottomLeft",
	BottomRight: "BottomRight",
}

var directionCodes = map[string]Direction{
	"t":  Top,
	"r":  Right,
	"b":  Bottom,
	"l":  Left,
	"x":  Horizontal,
	"y":  Vertical,
	"tl": TopLeft,
	"tr": TopRight,
	"bl": BottomLeft,
	"br": BottomRight,
}

// DirectionFromCode maps "t", "x", "br" and friends to a Direction; anything
// else is All.
func DirectionFromCode(code string) Direction {
	if d, ok := directionCodes[code]; ok {
		return d
	}
	return All
}

// Suffix returns the property name suffix ("Top") or "" for All.
func (d Direction) Suffix() string {
	return directionSuffix[d]
}

// Expand writes v to prop+side for every side d covers.
func Expand(d Direction, prop string, v style.Value) *style.Style {
	s := style.New()
	switch d {
	case All:
		s.Set(prop+"Top", v)
		s.Set(prop+"Right", v)
		s.Set(prop+"Bottom", v)
		s.Set(prop+"Left", v)
	case Horizontal:
		s.Set(prop+"Left", v)
		s.Set(prop+"Right", v)
	case Vertical:
		s.Set(prop+"Top", v)
		s.Set(prop+"Bottom", v)
	default:
		s.Set(prop+d.Suffix(), v)
	}
	return s
}

var borderDirection = regexp.MustCompile(`^-(t|b|r|l|tr|tl|br|bl)(-|$)`)

// consumeDirection strips a leading "-t", "-br" style direction marker.
func consumeDirection(value string) (string, Direction) {
	m := borderDirection.FindStringSubmatch(value)
	if m == nil {
		return value, All
	}
	return value[len(m[0]):], DirectionFromCode(m[1])
}

// Spacing resolves margin and padding values. prop is "margin" or "padding"
// and doubles as the theme category.
func Spacing(prop string, d Direction) Func {
	category := theme.Margin
	if prop == "padding" {
		category = theme.Padding
	}
	return func(ctx Context, value string) (ir.IR, error) {
		var raw string
		if units.IsArbitrary(value) {
			raw = units.Unbracket(value)
		} else if cfg, ok := ctx.Theme.Value(category, value); ok {
			raw = cfg
		} else {
			v, err := units.Unconfigged(value, ctx.units())
			if err != nil {
				return ir.None, classify(err)
			}
			if _, ok := v.Num(); !ok {
				return ir.None, notMine(value)
			}
			return ir.Of(Expand(d, prop, v)), nil
		}

		if strings.TrimSpace(raw) == "auto" {
			return ir.Of(Expand(d, prop, style.String("auto"))), nil
		}
		v, err := units.Value(raw, ctx.units())
		if err != nil {
			return ir.None, classify(err)
		}
		return ir.Of(Expand(d, prop, v)), nil
	}
}
