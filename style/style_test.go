package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"twstyle/style"
)

func TestStyle_OverwriteKeepsPosition(t *testing.T) {
	s := style.New()
	s.Set("marginTop", style.Number(4))
	s.Set("color", style.String("red"))
	s.Set("marginTop", style.Number(8))

	assert.Equal(t, []string{"marginTop", "color"}, s.Keys())
	v, ok := s.Get("marginTop")
	require.True(t, ok)
	n, _ := v.Num()
	assert.Equal(t, 8.0, n)
}

func TestStyle_MergeAndClone(t *testing.T) {
	base := style.Of("paddingTop", 4, "color", "red")
	over := style.Of("color", "blue", "opacity", 0.5)

	merged := base.Clone()
	merged.Merge(over)

	assert.True(t, merged.Equal(style.Of("paddingTop", 4, "color", "blue", "opacity", 0.5)))
	assert.True(t, base.Equal(style.Of("paddingTop", 4, "color", "red")), "clone must not alias source")
}

func TestStyle_DropPrivate(t *testing.T) {
	s := style.Of("__opacity_bg", "0.5", "backgroundColor", "#fff")
	s.DropPrivate()
	assert.Equal(t, []string{"backgroundColor"}, s.Keys())
}

func TestStyle_NilIsEmpty(t *testing.T) {
	var s *style.Style
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("x"))
	assert.Equal(t, 0, s.Clone().Len())
	assert.True(t, s.Equal(style.New()))
}

func TestStyle_MarshalJSONKeepsOrder(t *testing.T) {
	s := style.Of(
		"zIndex", 10,
		"transform", []*style.Style{style.Of("scaleX", 0.5), style.Of("rotate", "45deg")},
		"shadowOffset", style.Of("width", 0, "height", 1),
		"fontVariant", []string{"small-caps"},
		"includeFontPadding", false,
	)
	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"zIndex":10,"transform":[{"scaleX":0.5},{"rotate":"45deg"}],"shadowOffset":{"width":0,"height":1},"fontVariant":["small-caps"],"includeFontPadding":false}`,
		string(data))
}

func TestStyle_YAMLRoundTripKeepsOrder(t *testing.T) {
	in := []byte(`{"marginTop": 4, "color": "red", "transform": [{"scale": 2}], "hidden": true}`)
	s := style.New()
	require.NoError(t, yaml.Unmarshal(in, s))

	want := style.Of("marginTop", 4, "color", "red", "transform", []*style.Style{style.Of("scale", 2)}, "hidden", true)
	assert.True(t, s.Equal(want), "got %s", s)

	out, err := yaml.Marshal(s)
	require.NoError(t, err)
	back := style.New()
	require.NoError(t, yaml.Unmarshal(out, back))
	assert.True(t, back.Equal(want), "got %s", back)
}

func TestFromMap_SortsKeys(t *testing.T) {
	s, err := style.FromMap(map[string]any{"b": 1, "a": "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	_, err = style.FromMap(map[string]any{"bad": struct{}{}})
	assert.Error(t, err)
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b style.Value
		want bool
	}{
		{"same number", style.Number(1), style.Number(1), true},
		{"number vs string", style.Number(1), style.String("1"), false},
		{"strings", style.Strings("a", "b"), style.Strings("a", "b"), true},
		{"strings order", style.Strings("a", "b"), style.Strings("b", "a"), false},
		{"list", style.List(style.Of("x", 1)), style.List(style.Of("x", 1)), true},
		{"list differs", style.List(style.Of("x", 1)), style.List(style.Of("x", 2)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
