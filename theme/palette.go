package theme

import (
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cast"
)

// DefaultKey names the color used when a palette level is referenced
// without a shade.
const DefaultKey = "DEFAULT"

// Palette is a nested color dictionary. Values are either string colors or
// nested Palettes.
type Palette map[string]any

func toPalette(raw any) (Palette, error) {
	if raw == nil {
		return Palette{}, nil
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return nil, err
	}
	p := make(Palette, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case string:
			p[k] = t
		case Palette:
			p[k] = t
		default:
			if nested, err := cast.ToStringMapE(v); err == nil && nested != nil {
				sub, err := toPalette(nested)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", k, err)
				}
				p[k] = sub
				continue
			}
			s, err := cast.ToStringE(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			p[k] = s
		}
	}
	return p, nil
}

// overlay returns a copy of p with o merged on top, nested palettes merged
// recursively.
func (p Palette) overlay(o Palette) Palette {
	out := maps.Clone(p)
	if out == nil {
		out = Palette{}
	}
	for k, v := range o {
		sub, isSub := v.(Palette)
		cur, curSub := out[k].(Palette)
		if isSub && curSub {
			out[k] = cur.overlay(sub)
			continue
		}
		out[k] = v
	}
	return out
}

// Lookup resolves a color name such as "red-500", "brand" (via DEFAULT) or
// "light-blue-100" where a palette key itself contains hyphens. The first
// nested palette matching a leading run of segments wins.
func (p Palette) Lookup(name string) (string, bool) {
	switch v := p[name].(type) {
	case string:
		return v, true
	case Palette:
		if d, ok := v[DefaultKey].(string); ok {
			return d, true
		}
	}

	parts := strings.Split(name, "-")
	for i := 1; i < len(parts); i++ {
		head := strings.Join(parts[:i], "-")
		if sub, ok := p[head].(Palette); ok {
			return sub.Lookup(strings.Join(parts[i:], "-"))
		}
	}
	return "", false
}

// Flatten lists every addressable color name with its value.
func (p Palette) Flatten() map[string]string {
	out := make(map[string]string)
	p.flatten("", out)
	return out
}

func (p Palette) flatten(prefix string, out map[string]string) {
	for k, v := range p {
		name := k
		if prefix != "" {
			name = prefix + "-" + k
			if k == DefaultKey {
				name = prefix
			}
		}
		switch t := v.(type) {
		case string:
			out[name] = t
		case Palette:
			t.flatten(name, out)
		}
	}
}
