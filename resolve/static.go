package resolve

import (
	"twstyle/ir"
	"twstyle/style"
)

// Named is a utility resolved without consulting the theme.
type Named struct {
	Name string
	IR   ir.IR
}

func prop(name, key string, v any) Named {
	return Named{Name: name, IR: ir.Of(style.Of(key, v))}
}

func fontVariant(variant string) ir.IR {
	return ir.Defer(func(s *style.Style) error {
		var list []string
		if cur, ok := s.Get("fontVariant"); ok {
			list, _ = cur.StringList()
		}
		s.Set("fontVariant", style.Strings(append(list[:len(list):len(list)], variant)...))
		return nil
	})
}

func shadow(opacity, radius, elevation float64) ir.IR {
	return ir.Of(style.Of(
		"shadowOffset", style.Of("width", 1, "height", 1),
		"shadowColor", "#000",
		"shadowRadius", radius,
		"shadowOpacity", opacity,
		"elevation", elevation,
	))
}

// Static returns the utilities every cache partition is seeded with, in a
// stable order. The slice is freshly built on each call.
func Static() []Named {
	return []Named{
		prop("aspect-square", "aspectRatio", 1),
		prop("aspect-video", "aspectRatio", 16.0/9.0),

		prop("items-center", "alignItems", "center"),
		prop("items-start", "alignItems", "flex-start"),
		prop("items-end", "alignItems", "flex-end"),
		prop("items-baseline", "alignItems", "baseline"),
		prop("items-stretch", "alignItems", "stretch"),

		prop("justify-start", "justifyContent", "flex-start"),
		prop("justify-end", "justifyContent", "flex-end"),
		prop("justify-center", "justifyContent", "center"),
		prop("justify-between", "justifyContent", "space-between"),
		prop("justify-around", "justifyContent", "space-around"),
		prop("justify-evenly", "justifyContent", "space-evenly"),

		prop("content-start", "alignContent", "flex-start"),
		prop("content-end", "alignContent", "flex-end"),
		prop("content-between", "alignContent", "space-between"),
		prop("content-around", "alignContent", "space-around"),
		prop("content-stretch", "alignContent", "stretch"),
		prop("content-center", "alignContent", "center"),

		prop("self-auto", "alignSelf", "auto"),
		prop("self-start", "alignSelf", "flex-start"),
		prop("self-end", "alignSelf", "flex-end"),
		prop("self-center", "alignSelf", "center"),
		prop("self-stretch", "alignSelf", "stretch"),
		prop("self-baseline", "alignSelf", "baseline"),

		prop("direction-inherit", "direction", "inherit"),
		prop("direction-ltr", "direction", "ltr"),
		prop("direction-rtl", "direction", "rtl"),

		prop("hidden", "display", "none"),
		prop("flex", "display", "flex"),

		prop("flex-row", "flexDirection", "row"),
		prop("flex-row-reverse", "flexDirection", "row-reverse"),
		prop("flex-col", "flexDirection", "column"),
		prop("flex-col-reverse", "flexDirection", "column-reverse"),
		prop("flex-wrap", "flexWrap", "wrap"),
		prop("flex-wrap-reverse", "flexWrap", "wrap-reverse"),
		prop("flex-nowrap", "flexWrap", "nowrap"),

		{"flex-auto", ir.Of(style.Of("flexGrow", 1, "flexShrink", 1, "flexBasis", "auto"))},
		{"flex-initial", ir.Of(style.Of("flexGrow", 0, "flexShrink", 1, "flexBasis", "auto"))},
		{"flex-none", ir.Of(style.Of("flexGrow", 0, "flexShrink", 0, "flexBasis", "auto"))},

		prop("overflow-hidden", "overflow", "hidden"),
		prop("overflow-visible", "overflow", "visible"),
		prop("overflow-scroll", "overflow", "scroll"),

		prop("absolute", "position", "absolute"),
		prop("relative", "position", "relative"),

		prop("italic", "fontStyle", "italic"),
		prop("not-italic", "fontStyle", "normal"),

		{"oldstyle-nums", fontVariant("oldstyle-nums")},
		{"small-caps", fontVariant("small-caps")},
		{"lining-nums", fontVariant("lining-nums")},
		{"tabular-nums", fontVariant("tabular-nums")},
		{"proportional-nums", fontVariant("proportional-nums")},

		prop("font-thin", "fontWeight", "100"),
		prop("font-100", "fontWeight", "100"),
		prop("font-extralight", "fontWeight", "200"),
		prop("font-200", "fontWeight", "200"),
		prop("font-light", "fontWeight", "300"),
		prop("font-300", "fontWeight", "300"),
		prop("font-normal", "fontWeight", "normal"),
		prop("font-400", "fontWeight", "400"),
		prop("font-medium", "fontWeight", "500"),
		prop("font-500", "fontWeight", "500"),
		prop("font-semibold", "fontWeight", "600"),
		prop("font-600", "fontWeight", "600"),
		prop("font-bold", "fontWeight", "bold"),
		prop("font-700", "fontWeight", "700"),
		prop("font-extrabold", "fontWeight", "800"),
		prop("font-800", "fontWeight", "800"),
		prop("font-black", "fontWeight", "900"),
		prop("font-900", "fontWeight", "900"),

		prop("include-font-padding", "includeFontPadding", true),
		prop("remove-font-padding", "includeFontPadding", false),

		prop("max-w-none", "maxWidth", "99999%"),

		prop("text-left", "textAlign", "left"),
		prop("text-center", "textAlign", "center"),
		prop("text-right", "textAlign", "right"),
		prop("text-justify", "textAlign", "justify"),
		prop("text-auto", "textAlign", "auto"),

		prop("underline", "textDecorationLine", "underline"),
		prop("line-through", "textDecorationLine", "line-through"),
		prop("no-underline", "textDecorationLine", "none"),

		prop("uppercase", "textTransform", "uppercase"),
		prop("lowercase", "textTransform", "lowercase"),
		prop("capitalize", "textTransform", "capitalize"),
		prop("normal-case", "textTransform", "none"),

		prop("w-auto", "width", "auto"),
		prop("h-auto", "height", "auto"),

		prop("basis-auto", "flexBasis", "auto"),
		prop("flex-basis-auto", "flexBasis", "auto"),

		prop("align-auto", "verticalAlign", "auto"),
		prop("align-top", "verticalAlign", "top"),
		prop("align-bottom", "verticalAlign", "bottom"),
		prop("align-middle", "verticalAlign", "middle"),

		{"transform-none", TransformNone()},

		{"shadow-sm", shadow(0.025, 1, 1)},
		{"shadow", shadow(0.075, 1, 2)},
		{"shadow-md", shadow(0.125, 3, 3)},
		{"shadow-lg", shadow(0.15, 8, 8)},
		{"shadow-xl", shadow(0.19, 20, 12)},
		{"shadow-2xl", shadow(0.25, 30, 16)},
		{"shadow-none", ir.Of(style.Of(
			"shadowOffset", style.Of("width", 0, "height", 0),
			"shadowColor", "#000",
			"shadowRadius", 0,
			"shadowOpacity", 0,
			"elevation", 0,
		))},
	}
}
