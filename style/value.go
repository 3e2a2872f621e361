package style

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindStrings
	KindStyle
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindStrings:
		return "strings"
	case KindStyle:
		return "style"
	case KindList:
		return "list"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single style property value. The zero Value is the empty string.
type Value struct {
	kind   Kind
	str    string
	num    float64
	flag   bool
	strs   []string
	nested *Style
	list   []*Style
}

// String creates a string value ("12%", "center", "rgba(0, 0, 0, 0.5)").
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric value in native density-independent units.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Strings creates an ordered list of strings (fontVariant).
func Strings(s ...string) Value { return Value{kind: KindStrings, strs: slices.Clone(s)} }

// Nested creates a value holding a nested style map (shadowOffset).
func Nested(s *Style) Value { return Value{kind: KindStyle, nested: s} }

// List creates a value holding an ordered list of style maps (transform, filter).
func List(items ...*Style) Value { return Value{kind: KindList, list: slices.Clone(items)} }

func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the numeric payload and whether v is a number.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Flag returns the boolean payload and whether v is a bool.
func (v Value) Flag() (bool, bool) { return v.flag, v.kind == KindBool }

// StringList returns the string list payload and whether v is a string list.
func (v Value) StringList() ([]string, bool) { return v.strs, v.kind == KindStrings }

// Style returns the nested map and whether v is a nested map.
func (v Value) Style() (*Style, bool) { return v.nested, v.kind == KindStyle }

// Items returns the map list payload and whether v is a list.
func (v Value) Items() ([]*Style, bool) { return v.list, v.kind == KindList }

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindStrings:
		return Strings(v.strs...)
	case KindStyle:
		return Nested(v.nested.Clone())
	case KindList:
		items := make([]*Style, len(v.list))
		for i, s := range v.list {
			items[i] = s.Clone()
		}
		return Value{kind: KindList, list: items}
	default:
		return v
	}
}

// Equal reports whether v and o hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.flag == o.flag
	case KindStrings:
		return slices.Equal(v.strs, o.strs)
	case KindStyle:
		return v.nested.Equal(o.nested)
	case KindList:
		return slices.EqualFunc(v.list, o.list, func(a, b *Style) bool { return a.Equal(b) })
	}
	return false
}

// Any converts v into plain Go values (string, float64, bool, []string,
// map[string]any, []any).
func (v Value) Any() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBool:
		return v.flag
	case KindStrings:
		return slices.Clone(v.strs)
	case KindStyle:
		return v.nested.Map()
	case KindList:
		out := make([]any, len(v.list))
		for i, s := range v.list {
			out[i] = s.Map()
		}
		return out
	default:
		return v.str
	}
}

// GoString renders v in a compact debug form.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindStrings:
		return fmt.Sprintf("%q", v.strs)
	case KindStyle:
		return v.nested.String()
	case KindList:
		parts := make([]string, len(v.list))
		for i, s := range v.list {
			parts[i] = s.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	return "?"
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindStyle:
		return v.nested.MarshalJSON()
	case KindList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, s := range v.list {
			if i > 0 {
				sb.WriteByte(',')
			}
			data, err := s.MarshalJSON()
			if err != nil {
				return nil, err
			}
			sb.Write(data)
		}
		sb.WriteByte(']')
		return []byte(sb.String()), nil
	default:
		return json.Marshal(v.Any())
	}
}

// FromAny converts plain Go values into a Value. Supported inputs are
// strings, all integer and float kinds, bools, []string, []any of maps,
// map[string]any, *Style and Value itself.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case []string:
		return Strings(t...), nil
	case *Style:
		return Nested(t), nil
	case map[string]any:
		s, err := FromMap(t)
		if err != nil {
			return Value{}, err
		}
		return Nested(s), nil
	case []*Style:
		return List(t...), nil
	case []any:
		if len(t) == 0 {
			return Strings(), nil
		}
		if _, ok := t[0].(string); ok {
			strs := make([]string, 0, len(t))
			for _, e := range t {
				s, ok := e.(string)
				if !ok {
					return Value{}, fmt.Errorf("mixed list element %T", e)
				}
				strs = append(strs, s)
			}
			return Strings(strs...), nil
		}
		items := make([]*Style, 0, len(t))
		for _, e := range t {
			nv, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			ns, ok := nv.Style()
			if !ok {
				return Value{}, fmt.Errorf("list element %T is not a map", e)
			}
			items = append(items, ns)
		}
		return List(items...), nil
	}
	return Value{}, fmt.Errorf("unsupported style value type %T", x)
}
