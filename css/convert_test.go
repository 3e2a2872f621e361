package css_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"twstyle/css"
	"twstyle/style"
)

func TestConverter_PropertyName(t *testing.T) {
	c := css.NewConverter(nil)
	tests := []struct {
		in, want string
	}{
		{"color", "color"},
		{"background-color", "backgroundColor"},
		{"border-top-left-radius", "borderTopLeftRadius"},
		{"Font-Size", "fontSize"},
		{"-webkit-appearance", "WebkitAppearance"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := c.PropertyName(tt.in); got != tt.want {
				t.Errorf("PropertyName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConverter_Utilities(t *testing.T) {
	log := zaptest.NewLogger(t)
	sheet := css.NewParser(log).Parse([]byte(`
.card { padding: 1rem 8px; background-color: #fff; font-weight: 700; width: 50%; line-height: 1.5; }
.pill { border-radius: 9999px; margin: 4px; }
.pill { color: red !important; }
.pill { color: blue; opacity: 0.5; }
.wide { margin: 1px 2px 3px 4px 5px; }
`))
	utilities := css.NewConverter(log).Utilities(sheet)
	require.Len(t, utilities, 3)

	want := style.Of(
		"paddingTop", 16.0,
		"paddingRight", 8.0,
		"paddingBottom", 16.0,
		"paddingLeft", 8.0,
		"backgroundColor", "#fff",
		"fontWeight", "700",
		"width", "50%",
		"lineHeight", 1.5,
	)
	assert.True(t, want.Equal(utilities["card"]), "card = %s, want %s", utilities["card"], want)

	pill := utilities["pill"]
	assert.False(t, pill.Has("borderTopLeftRadius"), "border-radius is not expanded")
	for key, v := range map[string]style.Value{
		"borderRadius": style.Number(9999),
		"marginTop":    style.Number(4),
		"marginLeft":   style.Number(4),
		"color":        style.String("red"),
		"opacity":      style.Number(0.5),
	} {
		got, ok := pill.Get(key)
		require.True(t, ok, "pill.%s missing", key)
		assert.True(t, v.Equal(got), "pill.%s = %#v, want %#v", key, got, v)
	}

	assert.Equal(t, 0, utilities["wide"].Len())
	assert.NotEmpty(t, sheet.Warnings)
}
