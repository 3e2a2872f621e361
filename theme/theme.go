// Package theme holds the normalized design-token dictionary consulted by the
// utility resolvers.
package theme

import (
	"cmp"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"twstyle/units"
)

// Scale categories. Every category maps a utility suffix to a CSS-like value.
const (
	Spacing         = "spacing"
	Margin          = "margin"
	Padding         = "padding"
	Inset           = "inset"
	Width           = "width"
	Height          = "height"
	MinWidth        = "minWidth"
	MinHeight       = "minHeight"
	MaxWidth        = "maxWidth"
	MaxHeight       = "maxHeight"
	LineHeight      = "lineHeight"
	LetterSpacing   = "letterSpacing"
	BorderWidth     = "borderWidth"
	BorderRadius    = "borderRadius"
	Opacity         = "opacity"
	Flex            = "flex"
	FlexBasis       = "flexBasis"
	FlexGrow        = "flexGrow"
	FlexShrink      = "flexShrink"
	Gap             = "gap"
	ZIndex          = "zIndex"
	Scale           = "scale"
	Rotate          = "rotate"
	Skew            = "skew"
	Translate       = "translate"
	TransformOrigin = "transformOrigin"
	Brightness      = "brightness"
	Contrast        = "contrast"
	Saturate        = "saturate"
	Grayscale       = "grayscale"
	Invert          = "invert"
	Sepia           = "sepia"
	HueRotate       = "hueRotate"
	OutlineWidth    = "outlineWidth"
	OutlineOffset   = "outlineOffset"
)

// Color categories.
const (
	Colors          = "colors"
	BackgroundColor = "backgroundColor"
	TextColor       = "textColor"
	BorderColor     = "borderColor"
)

const (
	screensKey    = "screens"
	fontSizeKey   = "fontSize"
	fontFamilyKey = "fontFamily"
	extendKey     = "extend"
)

// spacingDerived categories start from the spacing scale.
var spacingDerived = []string{Margin, Padding, Inset, Width, Height, MaxHeight, Gap, Translate, FlexBasis}

var colorDerived = []string{BackgroundColor, TextColor, BorderColor}

// Screen is a named width breakpoint. Order is the specificity index used as
// merge weight; Max is +Inf when unbounded.
type Screen struct {
	Name  string
	Min   float64
	Max   float64
	Order int
}

// Matches reports whether width falls into [Min, Max).
func (s Screen) Matches(width float64) bool {
	return width >= s.Min && width < s.Max
}

// FontSize is a font-size token with optional companion values.
type FontSize struct {
	Size          string
	LineHeight    string
	LetterSpacing string
}

// Theme is read-only after construction.
type Theme struct {
	screens    []Screen
	byName     map[string]int
	scales     map[string]map[string]string
	palettes   map[string]Palette
	fontSize   map[string]FontSize
	fontFamily map[string][]string

	// Warnings collects non-fatal normalization problems.
	Warnings []string
}

// Screens returns breakpoints sorted by specificity.
func (t *Theme) Screens() []Screen {
	return slices.Clone(t.screens)
}

// Screen looks up a breakpoint by name.
func (t *Theme) Screen(name string) (Screen, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Screen{}, false
	}
	return t.screens[i], true
}

// Value looks up key in a scale category.
func (t *Theme) Value(category, key string) (string, bool) {
	v, ok := t.scales[category][key]
	return v, ok
}

// ScaleKeys returns the keys of a scale category in sorted order.
func (t *Theme) ScaleKeys(category string) []string {
	return slices.Sorted(maps.Keys(t.scales[category]))
}

// Palette returns a color category; unknown categories yield nil.
func (t *Theme) Palette(category string) Palette {
	return t.palettes[category]
}

// FontSize looks up a font-size token.
func (t *Theme) FontSize(key string) (FontSize, bool) {
	fs, ok := t.fontSize[key]
	return fs, ok
}

// FontFamily looks up a font-family token.
func (t *Theme) FontFamily(key string) ([]string, bool) {
	ff, ok := t.fontFamily[key]
	return ff, ok
}

// build normalizes a raw theme dictionary. screenOrder optionally carries the
// declaration order of screens for tie breaking.
func build(raw map[string]any, screenOrder []string) (*Theme, error) {
	t := &Theme{
		byName:     make(map[string]int),
		scales:     make(map[string]map[string]string),
		palettes:   make(map[string]Palette),
		fontSize:   make(map[string]FontSize),
		fontFamily: make(map[string][]string),
	}

	for key, val := range raw {
		switch key {
		case screensKey, fontSizeKey, fontFamilyKey, extendKey, Colors, BackgroundColor, TextColor, BorderColor:
			continue
		}
		m, err := cast.ToStringMapE(val)
		if err != nil {
			return nil, fmt.Errorf("theme category %q: %w", key, err)
		}
		scale := make(map[string]string, len(m))
		for k, v := range m {
			s, err := cast.ToStringE(v)
			if err != nil {
				return nil, fmt.Errorf("theme value %s.%s: %w", key, k, err)
			}
			scale[k] = s
		}
		t.scales[key] = scale
	}

	for _, cat := range spacingDerived {
		merged := maps.Clone(t.scales[Spacing])
		if merged == nil {
			merged = make(map[string]string)
		}
		maps.Copy(merged, t.scales[cat])
		t.scales[cat] = merged
	}

	base, err := toPalette(raw[Colors])
	if err != nil {
		return nil, fmt.Errorf("theme colors: %w", err)
	}
	t.palettes[Colors] = base
	for _, cat := range colorDerived {
		own, err := toPalette(raw[cat])
		if err != nil {
			return nil, fmt.Errorf("theme %s: %w", cat, err)
		}
		t.palettes[cat] = base.overlay(own)
	}

	if err := t.buildFontSizes(raw[fontSizeKey]); err != nil {
		return nil, err
	}
	if err := t.buildFontFamilies(raw[fontFamilyKey]); err != nil {
		return nil, err
	}
	if err := t.buildScreens(raw[screensKey], screenOrder); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Theme) buildFontSizes(raw any) error {
	if raw == nil {
		return nil
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return fmt.Errorf("theme fontSize: %w", err)
	}
	for k, v := range m {
		fs, err := toFontSize(v)
		if err != nil {
			return fmt.Errorf("theme fontSize.%s: %w", k, err)
		}
		t.fontSize[k] = fs
	}
	return nil
}

// toFontSize accepts "1rem", ["1rem", "1.5rem"] and
// ["1rem", {lineHeight: "1.5rem", letterSpacing: "0.01em"}].
func toFontSize(v any) (FontSize, error) {
	if s, ok := v.(string); ok {
		return FontSize{Size: s}, nil
	}
	list, err := cast.ToSliceE(v)
	if err != nil {
		return FontSize{}, err
	}
	if len(list) == 0 {
		return FontSize{}, fmt.Errorf("empty font size")
	}
	fs := FontSize{Size: cast.ToString(list[0])}
	if len(list) < 2 {
		return fs, nil
	}
	if opts, err := cast.ToStringMapStringE(list[1]); err == nil {
		fs.LineHeight = opts["lineHeight"]
		fs.LetterSpacing = opts["letterSpacing"]
		return fs, nil
	}
	fs.LineHeight = cast.ToString(list[1])
	return fs, nil
}

func (t *Theme) buildFontFamilies(raw any) error {
	if raw == nil {
		return nil
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return fmt.Errorf("theme fontFamily: %w", err)
	}
	for k, v := range m {
		if s, ok := v.(string); ok {
			t.fontFamily[k] = []string{s}
			continue
		}
		list, err := cast.ToStringSliceE(v)
		if err != nil {
			return fmt.Errorf("theme fontFamily.%s: %w", k, err)
		}
		t.fontFamily[k] = list
	}
	return nil
}

// buildScreens converts breakpoints to pixels and assigns the specificity
// index. Bounded screens sort by max, otherwise by min.
func (t *Theme) buildScreens(raw any, order []string) error {
	if raw == nil {
		return nil
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return fmt.Errorf("theme screens: %w", err)
	}

	names := declarationOrder(m, order)
	screens := make([]Screen, 0, len(names))
	for _, name := range names {
		sc := Screen{Name: name, Min: 0, Max: math.Inf(1)}
		var minVal, maxVal string
		switch v := m[name].(type) {
		case string:
			minVal = v
		default:
			bounds, err := cast.ToStringMapStringE(v)
			if err != nil {
				return fmt.Errorf("theme screens.%s: %w", name, err)
			}
			minVal, maxVal = bounds["min"], bounds["max"]
		}
		if minVal != "" {
			if px, ok := units.ToPx(minVal); ok {
				sc.Min = px
			} else {
				t.Warnings = append(t.Warnings, "invalid screen min value: "+name+"->"+minVal)
			}
		}
		if maxVal != "" {
			if px, ok := units.ToPx(maxVal); ok {
				sc.Max = px
			} else {
				t.Warnings = append(t.Warnings, "invalid screen max value: "+name+"->"+maxVal)
			}
		}
		screens = append(screens, sc)
	}

	slices.SortStableFunc(screens, func(a, b Screen) int {
		if math.IsInf(a.Max, 1) || math.IsInf(b.Max, 1) {
			return cmp.Compare(a.Min, b.Min)
		}
		return cmp.Compare(a.Max, b.Max)
	})
	for i := range screens {
		screens[i].Order = i
		t.byName[screens[i].Name] = i
	}
	t.screens = screens
	return nil
}

// declarationOrder lists the keys of m following order first and sorted
// names for anything order does not mention.
func declarationOrder(m map[string]any, order []string) []string {
	names := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, name := range order {
		if _, ok := m[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	rest := make([]string, 0, len(m))
	for name := range m {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

// IsKnownCategory reports whether name is a category the resolvers consult.
func IsKnownCategory(name string) bool {
	switch name {
	case screensKey, fontSizeKey, fontFamilyKey, Colors, BackgroundColor, TextColor, BorderColor:
		return true
	}
	return slices.Contains(knownScales, name)
}

var knownScales = []string{
	Spacing, Margin, Padding, Inset, Width, Height, MinWidth, MinHeight, MaxWidth, MaxHeight,
	LineHeight, LetterSpacing, BorderWidth, BorderRadius, Opacity, Flex, FlexBasis, FlexGrow,
	FlexShrink, Gap, ZIndex, Scale, Rotate, Skew, Translate, TransformOrigin, Brightness,
	Contrast, Saturate, Grayscale, Invert, Sepia, HueRotate, OutlineWidth, OutlineOffset,
}

func (fs FontSize) String() string {
	parts := []string{fs.Size}
	if fs.LineHeight != "" {
		parts = append(parts, "lineHeight="+fs.LineHeight)
	}
	if fs.LetterSpacing != "" {
		parts = append(parts, "letterSpacing="+fs.LetterSpacing)
	}
	return strings.Join(parts, " ")
}
