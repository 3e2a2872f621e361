// Package device describes the rendering context utilities are resolved for.
package device

import (
	"fmt"
	"strings"

	"twstyle/units"
)

// ColorScheme of the host.
type ColorScheme int

const (
	SchemeNone ColorScheme = iota
	SchemeLight
	SchemeDark
)

func (c ColorScheme) String() string {
	switch c {
	case SchemeLight:
		return "light"
	case SchemeDark:
		return "dark"
	}
	return ""
}

// ParseColorScheme accepts "light", "dark" and "" (unknown).
func ParseColorScheme(s string) (ColorScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SchemeNone, nil
	case "light":
		return SchemeLight, nil
	case "dark":
		return SchemeDark, nil
	}
	return SchemeNone, fmt.Errorf("unknown color scheme %q", s)
}

// Platforms recognized as prefixes.
var Platforms = []string{"ios", "android", "windows", "macos", "web"}

// Device is the set of facets resolution depends on. Zero values mean
// unknown.
type Device struct {
	Width        *float64
	Height       *float64
	ColorScheme  ColorScheme
	Platform     string
	PixelDensity int
	FontScale    float64
}

// Viewport returns the window dimensions or nil when either is unknown.
func (d Device) Viewport() *units.Viewport {
	if d.Width == nil || d.Height == nil {
		return nil
	}
	return &units.Viewport{Width: *d.Width, Height: *d.Height}
}

// WithDimensions returns a copy of d with the window size set.
func (d Device) WithDimensions(width, height float64) Device {
	d.Width, d.Height = &width, &height
	return d
}
