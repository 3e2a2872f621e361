// Package parser dispatches a prefix-free utility to the resolver family
// that owns it.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"twstyle/ir"
	"twstyle/resolve"
	"twstyle/theme"
	"twstyle/units"
)

var ErrUnrecognizedUtility = errors.New("unknown or invalid utility")

type entry struct {
	literal   string
	resolvers []resolve.Func
}

func on(literal string, resolvers ...resolve.Func) entry {
	return entry{literal: literal, resolvers: resolvers}
}

// table is scanned in order. A literal must precede every literal it is a
// prefix of.
func table() []entry {
	t := []entry{
		on("m-", resolve.Spacing("margin", resolve.All)),
		on("p-", resolve.Spacing("padding", resolve.All)),
	}
	for _, code := range []string{"t", "r", "b", "l", "x", "y"} {
		d := resolve.DirectionFromCode(code)
		t = append(t,
			on("m"+code+"-", resolve.Spacing("margin", d)),
			on("p"+code+"-", resolve.Spacing("padding", d)),
		)
	}

	return append(t,
		on("min-w-", resolve.MinMax("minWidth", theme.MinWidth)),
		on("min-h-", resolve.MinMax("minHeight", theme.MinHeight)),
		on("max-w-", resolve.MinMax("maxWidth", theme.MaxWidth)),
		on("max-h-", resolve.MinMax("maxHeight", theme.MaxHeight)),
		on("w-", resolve.Size("width", theme.Width)),
		on("h-", resolve.Size("height", theme.Height)),

		on("leading-", resolve.LineHeight()),
		on("text-opacity-", resolve.ColorOpacity(resolve.TextColor)),
		on("text-", resolve.FontSize(), resolve.Color(resolve.TextColor)),
		on("font-", resolve.FontFamily()),
		on("tracking-", resolve.LetterSpacing()),
		on("decoration-", resolve.Keyword("textDecorationStyle", "solid", "double", "dotted", "dashed")),

		on("aspect-ratio-", resolve.AspectRatio()),

		on("bg-opacity-", resolve.ColorOpacity(resolve.BgColor)),
		on("bg-", resolve.Color(resolve.BgColor)),
		on("border-opacity-", resolve.ColorOpacity(resolve.BorderColor)),
		on("border", resolve.Border()),
		on("rounded", resolve.Radius()),

		on("top-", resolve.Inset("top")),
		on("bottom-", resolve.Inset("bottom")),
		on("left-", resolve.Inset("left")),
		on("right-", resolve.Inset("right")),
		on("inset-", resolve.Inset("inset")),

		on("flex-grow", resolve.GrowShrink("flexGrow", theme.FlexGrow)),
		on("flex-shrink", resolve.GrowShrink("flexShrink", theme.FlexShrink)),
		on("flex-basis-", resolve.Basis()),
		on("flex-", resolve.Flex()),
		on("grow", resolve.GrowShrink("flexGrow", theme.FlexGrow)),
		on("shrink", resolve.GrowShrink("flexShrink", theme.FlexShrink)),
		on("basis-", resolve.Basis()),
		on("gap-", resolve.Gap()),

		on("shadow-color-opacity-", resolve.ColorOpacity(resolve.ShadowColor)),
		on("shadow-opacity-", resolve.ShadowOpacity()),
		on("shadow-offset-", resolve.ShadowOffset()),
		on("shadow-radius-", resolve.ShadowRadius()),
		on("shadow-", resolve.Color(resolve.ShadowColor)),
		on("tint-opacity-", resolve.ColorOpacity(resolve.TintColor)),
		on("tint-", resolve.Color(resolve.TintColor)),
		on("elevation-", resolve.Elevation()),
		on("opacity-", resolve.Opacity()),
		on("z-", resolve.ZIndex()),

		on("scale-", resolve.Scale()),
		on("rotate-", resolve.Rotate()),
		on("skew-", resolve.Skew()),
		on("translate-", resolve.Translate()),
		on("origin-", resolve.Origin()),

		on("brightness-", resolve.Filter("brightness", theme.Brightness)),
		on("contrast-", resolve.Filter("contrast", theme.Contrast)),
		on("saturate-", resolve.Filter("saturate", theme.Saturate)),
		on("grayscale", resolve.Amount("grayscale", theme.Grayscale)),
		on("invert", resolve.Amount("invert", theme.Invert)),
		on("sepia", resolve.Amount("sepia", theme.Sepia)),
		on("hue-rotate-", resolve.HueRotate()),

		on("outline-offset-", resolve.OutlineOffset()),
		on("outline-", resolve.Keyword("outlineStyle", "dotted", "dashed"), resolve.OutlineWidth()),
		on("pointer-events-", resolve.Keyword("pointerEvents", "auto", "none", "box-only", "box-none")),
		on("select-", resolve.Keyword("userSelect", "auto", "text", "none", "contain", "all")),
	)
}

// Parser resolves utilities that are neither static nor cached.
type Parser struct {
	theme *theme.Theme
	table []entry
}

// New returns a parser bound to th.
func New(th *theme.Theme) *Parser {
	return &Parser{theme: th, table: table()}
}

// Parse resolves utility, which must not carry prefixes. A leading "-"
// negates the value. On failure the returned IR is Null and the error is
// either ErrUnrecognizedUtility or the reason a resolver rejected the
// value.
func (p *Parser) Parse(utility string, vp *units.Viewport) (ir.IR, error) {
	ctx := resolve.Context{Theme: p.theme, Viewport: vp}
	rest := utility
	if r, ok := strings.CutPrefix(rest, "-"); ok && r != "" {
		rest, ctx.Negative = r, true
	}

	for _, e := range p.table {
		value, ok := strings.CutPrefix(rest, e.literal)
		if !ok {
			continue
		}
		for _, fn := range e.resolvers {
			res, err := fn(ctx, value)
			switch {
			case err == nil:
				return res, nil
			case errors.Is(err, resolve.ErrNotMine):
				continue
			default:
				return ir.None, fmt.Errorf("utility %q: %w", utility, err)
			}
		}
	}
	return ir.None, fmt.Errorf("%w: %q", ErrUnrecognizedUtility, utility)
}

// Literals returns the dispatch literals in scan order.
func (p *Parser) Literals() []string {
	out := make([]string, len(p.table))
	for i, e := range p.table {
		out[i] = e.literal
	}
	return out
}
