package theme

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"dario.cat/mergo"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrUnsupportedFormat = errors.New("unsupported theme file format")

var defaultTheme = sync.OnceValues(func() (*Theme, error) {
	return merge(nil, nil)
})

// Default returns the built-in theme. The result is shared and read-only.
func Default() *Theme {
	t, err := defaultTheme()
	if err != nil {
		panic(fmt.Sprintf("embedded theme defaults are invalid: %v", err))
	}
	return t
}

// FromMap builds a theme from user overrides. Top-level categories replace
// the defaults, categories under "extend" are deep-merged into them.
func FromMap(user map[string]any) (*Theme, error) {
	return merge(user, nil)
}

// Load reads a YAML, JSON or TOML theme file. A single top-level "theme" key
// is unwrapped so tailwind-style config files can be used directly.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read theme file: %w", err)
	}
	return Parse(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Parse decodes theme data in the given format ("yaml", "yml", "json" or "toml").
func Parse(data []byte, format string) (*Theme, error) {
	var (
		user  map[string]any
		order []string
	)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &user); err != nil {
			return nil, fmt.Errorf("unable to decode toml theme: %w", err)
		}
	case "yaml", "yml", "json":
		if err := yaml.Unmarshal(data, &user); err != nil {
			return nil, fmt.Errorf("unable to decode yaml theme: %w", err)
		}
		order = screenOrder(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if inner, ok := user["theme"]; ok && len(user) == 1 {
		m, err := cast.ToStringMapE(inner)
		if err != nil {
			return nil, fmt.Errorf("theme section: %w", err)
		}
		user = m
	}
	return merge(user, order)
}

func merge(user map[string]any, userScreenOrder []string) (*Theme, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(defaultsYAML, &raw); err != nil {
		return nil, fmt.Errorf("unable to decode theme defaults: %w", err)
	}
	order := screenOrder(defaultsYAML)

	var unknown []string
	for k, v := range user {
		if k == extendKey {
			continue
		}
		if !IsKnownCategory(k) {
			unknown = append(unknown, k)
		}
		raw[k] = v
		if k == screensKey {
			order = userScreenOrder
		}
	}

	if ext, ok := user[extendKey]; ok {
		em, err := cast.ToStringMapE(ext)
		if err != nil {
			return nil, fmt.Errorf("theme extend: %w", err)
		}
		for cat, v := range em {
			src, err := cast.ToStringMapE(v)
			if err != nil {
				return nil, fmt.Errorf("theme extend.%s: %w", cat, err)
			}
			dst := map[string]any{}
			if cur, ok := raw[cat]; ok {
				if dst, err = cast.ToStringMapE(cur); err != nil {
					return nil, fmt.Errorf("theme %s: %w", cat, err)
				}
			}
			if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
				return nil, fmt.Errorf("unable to extend theme %s: %w", cat, err)
			}
			raw[cat] = dst
			if cat == screensKey {
				order = append(order, userScreenOrder...)
			}
		}
	}

	t, err := build(raw, order)
	if err != nil {
		return nil, err
	}
	for _, k := range unknown {
		t.Warnings = append(t.Warnings, "unknown theme category: "+k)
	}
	return t, nil
}

// screenOrder extracts the declaration order of the top-level screens
// mapping, or of theme.screens when wrapped.
func screenOrder(data []byte) []string {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if n := mappingValue(root, "theme"); n != nil {
		root = n
	}
	screens := mappingValue(root, screensKey)
	if screens == nil {
		return nil
	}
	var names []string
	for i := 0; i+1 < len(screens.Content); i += 2 {
		names = append(names, screens.Content[i].Value)
	}
	return names
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key && n.Content[i+1].Kind == yaml.MappingNode {
			return n.Content[i+1]
		}
	}
	return nil
}
