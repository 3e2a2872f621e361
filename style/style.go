// Package style holds the native style map produced by utility resolution.
package style

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
	"gopkg.in/yaml.v3"
)

// PrivatePrefix marks bookkeeping keys that must never reach the caller.
const PrivatePrefix = "__"

// IsPrivate reports whether key is a bookkeeping key.
func IsPrivate(key string) bool {
	return strings.HasPrefix(key, PrivatePrefix)
}

// Style is an insertion-ordered map from native property name to value.
// Overwriting an existing key keeps its original position.
// A nil *Style behaves as an empty read-only map.
type Style struct {
	props *orderedmap.OrderedMap[string, Value]
}

// New returns an empty style.
func New() *Style {
	return &Style{props: orderedmap.NewOrderedMap[string, Value]()}
}

// Of builds a style from alternating key/value pairs, converting values
// with FromAny. It panics on malformed input and is meant for literals.
func Of(pairs ...any) *Style {
	if len(pairs)%2 != 0 {
		panic("style.Of: odd number of arguments")
	}
	s := New()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("style.Of: key %v is not a string", pairs[i]))
		}
		v, err := FromAny(pairs[i+1])
		if err != nil {
			panic(fmt.Sprintf("style.Of: key %q: %v", key, err))
		}
		s.Set(key, v)
	}
	return s
}

// FromMap converts a plain map into a style. Go maps carry no order, so keys
// are inserted sorted.
func FromMap(m map[string]any) (*Style, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	s := New()
	for _, k := range keys {
		v, err := FromAny(m[k])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		s.Set(k, v)
	}
	return s, nil
}

// Set stores v under key.
func (s *Style) Set(key string, v Value) {
	s.props.Set(key, v)
}

// Get returns the value stored under key.
func (s *Style) Get(key string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	return s.props.Get(key)
}

// Has reports whether key is present.
func (s *Style) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Delete removes key, reporting whether it was present.
func (s *Style) Delete(key string) bool {
	if s == nil {
		return false
	}
	return s.props.Delete(key)
}

// Len returns the number of properties.
func (s *Style) Len() int {
	if s == nil {
		return 0
	}
	return s.props.Len()
}

// All iterates properties in insertion order.
func (s *Style) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if s == nil {
			return
		}
		for k, v := range s.props.AllFromFront() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Keys returns property names in insertion order.
func (s *Style) Keys() []string {
	keys := make([]string, 0, s.Len())
	for k := range s.All() {
		keys = append(keys, k)
	}
	return keys
}

// Merge copies every property of other into s, other winning on conflicts.
func (s *Style) Merge(other *Style) {
	for k, v := range other.All() {
		s.Set(k, v)
	}
}

// DropPrivate removes every bookkeeping key.
func (s *Style) DropPrivate() {
	for _, k := range s.Keys() {
		if IsPrivate(k) {
			s.Delete(k)
		}
	}
}

// Clone returns a deep copy. Cloning nil yields an empty style.
func (s *Style) Clone() *Style {
	out := New()
	for k, v := range s.All() {
		out.Set(k, v.Clone())
	}
	return out
}

// Equal compares two styles including property order.
func (s *Style) Equal(o *Style) bool {
	if s.Len() != o.Len() {
		return false
	}
	ka, kb := s.Keys(), o.Keys()
	for i := range ka {
		if ka[i] != kb[i] {
			return false
		}
		va, _ := s.Get(ka[i])
		vb, _ := o.Get(kb[i])
		if !va.Equal(vb) {
			return false
		}
	}
	return true
}

// Map converts s into a plain map.
func (s *Style) Map() map[string]any {
	out := make(map[string]any, s.Len())
	for k, v := range s.All() {
		out[k] = v.Any()
	}
	return out
}

func (s *Style) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	i := 0
	for k, v := range s.All() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(v.GoString())
		i++
	}
	sb.WriteByte('}')
	return sb.String()
}

// MarshalJSON implements json.Marshaler preserving property order.
func (s *Style) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	i := 0
	for k, v := range s.All() {
		if i > 0 {
			sb.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := v.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		sb.Write(key)
		sb.WriteByte(':')
		sb.Write(val)
		i++
	}
	sb.WriteByte('}')
	return []byte(sb.String()), nil
}

// MarshalYAML implements yaml.Marshaler preserving property order.
func (s *Style) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for k, v := range s.All() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: k}
		var val *yaml.Node
		switch v.Kind() {
		case KindStyle:
			nested, _ := v.Style()
			n, err := nested.MarshalYAML()
			if err != nil {
				return nil, err
			}
			val = n.(*yaml.Node)
		case KindList:
			val = &yaml.Node{Kind: yaml.SequenceNode}
			items, _ := v.Items()
			for _, item := range items {
				n, err := item.MarshalYAML()
				if err != nil {
					return nil, err
				}
				val.Content = append(val.Content, n.(*yaml.Node))
			}
		default:
			val = &yaml.Node{}
			if err := val.Encode(v.Any()); err != nil {
				return nil, fmt.Errorf("property %q: %w", k, err)
			}
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

// UnmarshalYAML implements yaml.Unmarshaler preserving property order. JSON
// objects decode too since yaml.v3 accepts JSON documents.
func (s *Style) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: style must be a mapping", node.Line)
	}
	if s.props == nil {
		s.props = orderedmap.NewOrderedMap[string, Value]()
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		v, err := decodeNode(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		s.Set(key, v)
	}
	return nil
}

func decodeNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.MappingNode:
		nested := New()
		if err := nested.UnmarshalYAML(n); err != nil {
			return Value{}, err
		}
		return Nested(nested), nil
	case yaml.SequenceNode:
		if len(n.Content) > 0 && n.Content[0].Kind == yaml.MappingNode {
			items := make([]*Style, 0, len(n.Content))
			for _, c := range n.Content {
				item := New()
				if err := item.UnmarshalYAML(c); err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			return List(items...), nil
		}
		var strs []string
		if err := n.Decode(&strs); err != nil {
			return Value{}, err
		}
		return Strings(strs...), nil
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!int", "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return Value{}, err
			}
			return Number(f), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return Value{}, err
			}
			return Bool(b), nil
		default:
			return String(n.Value), nil
		}
	}
	return Value{}, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}
