package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"twstyle/ir"
	"twstyle/style"
	"twstyle/theme"
	"twstyle/units"
)

// ColorTarget pairs the color property a utility writes with the private
// channel its legacy opacity utility communicates through.
type ColorTarget struct {
	Prop     string
	Channel  string
	Category string
}

var (
	BgColor           = ColorTarget{"backgroundColor", "__opacity_bg", theme.BackgroundColor}
	TextColor         = ColorTarget{"color", "__opacity_text", theme.TextColor}
	BorderColor       = ColorTarget{"borderColor", "__opacity_border", theme.BorderColor}
	BorderTopColor    = ColorTarget{"borderTopColor", "__opacity_border", theme.BorderColor}
	BorderRightColor  = ColorTarget{"borderRightColor", "__opacity_border", theme.BorderColor}
	BorderBottomColor = ColorTarget{"borderBottomColor", "__opacity_border", theme.BorderColor}
	BorderLeftColor   = ColorTarget{"borderLeftColor", "__opacity_border", theme.BorderColor}
	ShadowColor       = ColorTarget{"shadowColor", "__opacity_shadow", theme.Colors}
	TintColor         = ColorTarget{"tintColor", "__opacity_tint", theme.Colors}
)

func borderColorTarget(d Direction) ColorTarget {
	switch d {
	case Top:
		return BorderTopColor
	case Right:
		return BorderRightColor
	case Bottom:
		return BorderBottomColor
	case Left:
		return BorderLeftColor
	}
	return BorderColor
}

// Color resolves a color utility value: a palette name, a bracketed
// literal, either optionally followed by a "/NN" opacity shorthand.
//
// Both forms are Dependent. The legacy form reads the opacity channel
// accumulated from sibling tokens; the shorthand form bakes its opacity in
// and ignores the channel, yet still runs late so that the last color token
// in the list wins regardless of which form each one uses.
func Color(target ColorTarget) Func {
	return func(ctx Context, value string) (ir.IR, error) {
		name, shorthand, hasShorthand := strings.Cut(value, "/")

		color, ok := lookupColor(ctx.Theme.Palette(target.Category), name)
		if !ok {
			return ir.None, notMine(value)
		}

		if hasShorthand {
			if pct, err := strconv.ParseFloat(shorthand, 64); err == nil {
				baked := AddOpacity(color, pct/100)
				return ir.Defer(func(s *style.Style) error {
					s.Set(target.Prop, style.String(baked))
					return nil
				}), nil
			}
		}

		return ir.Defer(func(s *style.Style) error {
			out := color
			if v, ok := s.Get(target.Channel); ok {
				if a, ok := v.Num(); ok {
					out = AddOpacity(color, a)
				}
			}
			s.Set(target.Prop, style.String(out))
			return nil
		}), nil
	}
}

func lookupColor(p theme.Palette, name string) (string, bool) {
	if strings.HasPrefix(name, "[#") || strings.HasPrefix(name, "[rgb") || strings.HasPrefix(name, "[hsl") {
		if !units.IsArbitrary(name) {
			return "", false
		}
		return units.Unbracket(name), true
	}
	return p.Lookup(name)
}

// ColorOpacity resolves legacy "bg-opacity-50" style utilities into the
// private channel consumed by the matching color utility.
func ColorOpacity(target ColorTarget) Func {
	return func(_ Context, value string) (ir.IR, error) {
		pct, err := strconv.Atoi(value)
		if err != nil {
			return ir.None, notMine(value)
		}
		return ir.Prop(target.Channel, style.Number(float64(pct)/100)), nil
	}
}

// AddOpacity returns color with its alpha channel set to opacity. Hex colors
// (3 or 6 digits) become rgba(), rgb() and hsl() gain an alpha term, rgba()
// and hsla() have theirs replaced. Other colors are returned unchanged.
func AddOpacity(color string, opacity float64) string {
	alpha := units.Format(opacity)
	switch {
	case strings.HasPrefix(color, "#"):
		c, err := colorful.Hex(color)
		if err != nil {
			return "rgba(0, 0, 0, " + alpha + ")"
		}
		r, g, b := c.RGB255()
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, alpha)
	case strings.HasPrefix(color, "rgb(") && strings.HasSuffix(color, ")"):
		return "rgba(" + strings.TrimSuffix(strings.TrimPrefix(color, "rgb("), ")") + ", " + alpha + ")"
	case strings.HasPrefix(color, "hsl(") && strings.HasSuffix(color, ")"):
		return "hsla(" + strings.TrimSuffix(strings.TrimPrefix(color, "hsl("), ")") + ", " + alpha + ")"
	case (strings.HasPrefix(color, "rgba(") || strings.HasPrefix(color, "hsla(")) && strings.HasSuffix(color, ")"):
		i := strings.LastIndex(color, ",")
		if i < 0 {
			return color
		}
		return color[:i] + ", " + alpha + ")"
	}
	return color
}
