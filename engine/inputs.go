package engine

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"twstyle/style"
)

// Tokens splits every input on whitespace and drops repeated utilities,
// keeping the last occurrence of each.
func Tokens(inputs ...string) []string {
	var all []string
	for _, in := range inputs {
		all = append(all, strings.Fields(in)...)
	}
	last := make(map[string]int, len(all))
	for i, t := range all {
		last[t] = i
	}
	out := make([]string, 0, len(last))
	for i, t := range all {
		if last[t] == i {
			out = append(out, t)
		}
	}
	return out
}

// Style resolves a mix of inputs:
//
//   - string and []string hold utilities;
//   - map[string]bool toggles utilities, true keys are kept;
//   - *style.Style and map[string]any are raw styles merged over the result,
//     except that boolean entries of a map[string]any toggle utilities.
//
// Other input types are ignored with a warning.
func (e *Engine) Style(inputs ...any) *style.Style {
	var (
		utilities []string
		raw       *style.Style
	)
	addRaw := func(key string, v style.Value) {
		if raw == nil {
			raw = style.New()
		}
		raw.Set(key, v)
	}

	for _, in := range inputs {
		switch v := in.(type) {
		case nil:
		case string:
			utilities = append(utilities, v)
		case []string:
			utilities = append(utilities, v...)
		case map[string]bool:
			for _, k := range slices.Sorted(maps.Keys(v)) {
				if v[k] {
					utilities = append(utilities, k)
				}
			}
		case *style.Style:
			for k, val := range v.All() {
				addRaw(k, val)
			}
		case map[string]any:
			for _, k := range slices.Sorted(maps.Keys(v)) {
				if on, ok := v[k].(bool); ok {
					if on {
						utilities = append(utilities, k)
					}
					continue
				}
				val, err := style.FromAny(v[k])
				if err != nil {
					e.log.Warn("Ignoring raw style property", zap.String("property", k), zap.Error(err))
					continue
				}
				addRaw(k, val)
			}
		default:
			e.log.Warn("Ignoring style input", zap.String("type", fmt.Sprintf("%T", in)))
		}
	}
	return e.Resolve(utilities, raw)
}
