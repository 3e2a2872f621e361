package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"twstyle/device"
	"twstyle/style"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	return New(nil, zaptest.NewLogger(t))
}

func assertStyle(t *testing.T, want, got *style.Style) {
	t.Helper()
	assert.True(t, got.Equal(want), "got %s, want %s", got, want)
}

func TestResolve_Idempotent(t *testing.T) {
	e := newEngine(t)
	e.SetWindowDimensions(800, 600)

	tokens := []string{"p-4 md:bg-red-500 bg-opacity-50 rotate-45 text-lg leading-loose -mt-2"}
	cold := e.Resolve(tokens, nil)
	warm := e.Resolve(tokens, nil)
	assertStyle(t, cold, warm)

	fresh := newEngine(t)
	fresh.SetWindowDimensions(800, 600)
	assertStyle(t, cold, fresh.Resolve(tokens, nil))
	assert.Equal(t, 1, e.Stats().StyleHits)
}

func TestResolve_ReturnsOwnedCopy(t *testing.T) {
	e := newEngine(t)
	first := e.Resolve([]string{"p-4"}, nil)
	first.Set("paddingTop", style.Number(0))
	first.Delete("paddingLeft")

	assertStyle(t, style.Of("paddingTop", 16, "paddingRight", 16, "paddingBottom", 16, "paddingLeft", 16),
		e.Resolve([]string{"p-4"}, nil))
}

func TestResolve_Order(t *testing.T) {
	tests := []struct {
		name   string
		tokens string
		want   *style.Style
	}{
		{"disjoint a", "p-1 bg-black", style.Of("paddingTop", 4, "paddingRight", 4, "paddingBottom", 4, "paddingLeft", 4, "backgroundColor", "#000")},
		{"last color wins", "bg-white bg-black", style.Of("backgroundColor", "#000")},
		{"repeat keeps last position", "bg-white bg-black bg-white", style.Of("backgroundColor", "#fff")},
		{"complete last wins", "mt-1 mt-2", style.Of("marginTop", 8)},
		{"shorthand and legacy colors", "bg-white/50 bg-black", style.Of("backgroundColor", "#000")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertStyle(t, tt.want, newEngine(t).Resolve([]string{tt.tokens}, nil))
		})
	}
}

func TestResolve_DarkModeWeight(t *testing.T) {
	for _, tokens := range []string{"dark:mt-2 mt-1", "mt-1 dark:mt-2"} {
		t.Run(tokens, func(t *testing.T) {
			e := newEngine(t)
			assertStyle(t, style.Of("marginTop", 4), e.Resolve([]string{tokens}, nil))

			e.SetColorScheme(device.SchemeDark)
			assertStyle(t, style.Of("marginTop", 8), e.Resolve([]string{tokens}, nil))
		})
	}
}

func TestResolve_BreakpointsStack(t *testing.T) {
	e := newEngine(t)
	e.SetWindowDimensions(1300, 900)
	assertStyle(t, style.Of("width", 16), e.Resolve([]string{"xl:w-4 w-1 md:w-2 lg:w-3"}, nil))
}

func TestResolve_OpacityPrecedence(t *testing.T) {
	half := style.Of("backgroundColor", "rgba(255, 255, 255, 0.5)")
	for _, tokens := range []string{"bg-white bg-opacity-50", "bg-opacity-50 bg-white", "bg-white/50", "bg-white/50 bg-opacity-75"} {
		t.Run(tokens, func(t *testing.T) {
			assertStyle(t, half, newEngine(t).Resolve([]string{tokens}, nil))
		})
	}
}

func TestResolve_BorderColorsShareChannel(t *testing.T) {
	got := newEngine(t).Resolve([]string{"border-t-black border-b-white border-opacity-25"}, nil)
	assertStyle(t, style.Of(
		"borderTopColor", "rgba(0, 0, 0, 0.25)",
		"borderBottomColor", "rgba(255, 255, 255, 0.25)",
	), got)
}

func TestResolve_Units(t *testing.T) {
	e := newEngine(t)
	assertStyle(t, style.Of("width", 16), e.Resolve([]string{"w-[1rem]"}, nil))
	assertStyle(t, style.Of("width", "50%"), e.Resolve([]string{"w-[50%]"}, nil))
	assert.Equal(t, 0, e.Resolve([]string{"w-[50vw]"}, nil).Len(), "vw without viewport")

	e.SetWindowDimensions(800, 600)
	assertStyle(t, style.Of("width", 400, "height", 300), e.Resolve([]string{"w-[50vw] h-[50vh]"}, nil))
}

func TestResolve_Negative(t *testing.T) {
	e := newEngine(t)
	assertStyle(t, e.Resolve([]string{"-mt-1"}, nil), e.Resolve([]string{"mt-[-4px]"}, nil))
	assertStyle(t, style.Of("marginTop", -4), e.Resolve([]string{"-mt-1"}, nil))
}

func TestResolve_TransformDeduplication(t *testing.T) {
	e := newEngine(t)
	assertStyle(t, style.Of("transform", []*style.Style{style.Of("scale", 1)}),
		e.Resolve([]string{"scale-50 scale-100"}, nil))
	assertStyle(t, style.Of("transform", []*style.Style{style.Of("scale", 0.5), style.Of("rotate", "90deg")}),
		e.Resolve([]string{"scale-50 rotate-90"}, nil))
	assertStyle(t, style.Of("transform", []*style.Style{}),
		e.Resolve([]string{"rotate-90 transform-none scale-50"}, nil))
}

func TestResolve_PartitionsByContext(t *testing.T) {
	e := newEngine(t)
	tokens := []string{"w-1 md:w-2"}

	e.SetWindowDimensions(500, 900)
	assertStyle(t, style.Of("width", 4), e.Resolve(tokens, nil))
	narrow := e.PartitionKey()

	e.SetWindowDimensions(800, 900)
	assertStyle(t, style.Of("width", 8), e.Resolve(tokens, nil))
	assert.NotEqual(t, narrow, e.PartitionKey())

	e.SetWindowDimensions(500, 900)
	before := e.Stats()
	assertStyle(t, style.Of("width", 4), e.Resolve(tokens, nil))
	after := e.Stats()
	assert.Equal(t, before.StyleHits+1, after.StyleHits)
	assert.Equal(t, before.IRMisses, after.IRMisses)
	assert.Len(t, e.Partitions(), 2)
}

func TestResolve_Tolerance(t *testing.T) {
	e := newEngine(t)
	for _, tokens := range []string{"totally-bogus-utility", "lol:hidden", "md:", ":", "-", "w-[12furlongs]"} {
		assert.Equal(t, 0, e.Resolve([]string{tokens}, nil).Len(), tokens)
	}
}

func TestResolve_DependentFailureIsNonFatal(t *testing.T) {
	got := newEngine(t).Resolve([]string{"leading-loose p-1"}, nil)
	assertStyle(t, style.Of("paddingTop", 4, "paddingRight", 4, "paddingBottom", 4, "paddingLeft", 4), got)
}

func TestResolve_RawStyleWinsAndIsNotCached(t *testing.T) {
	e := newEngine(t)
	got := e.Resolve([]string{"bg-black"}, style.Of("backgroundColor", "papayawhip", "zIndex", 3))
	assertStyle(t, style.Of("backgroundColor", "papayawhip", "zIndex", 3), got)
	assertStyle(t, style.Of("backgroundColor", "#000"), e.Resolve([]string{"bg-black"}, nil))
}

func TestResolve_Platform(t *testing.T) {
	e := newEngine(t)
	e.SetPlatform("android")
	assertStyle(t, style.Of("display", "flex"), e.Resolve([]string{"ios:hidden android:flex"}, nil))
	e.SetPlatform("ios")
	assertStyle(t, style.Of("display", "none"), e.Resolve([]string{"ios:hidden android:flex"}, nil))
}

func TestResolve_FontSizeCompanions(t *testing.T) {
	e := newEngine(t)
	assertStyle(t, style.Of("fontSize", 18, "lineHeight", 36),
		e.Resolve([]string{"leading-loose text-lg"}, nil))
	assertStyle(t, style.Of("fontSize", 20, "lineHeight", 28, "letterSpacing", 2),
		e.Resolve([]string{"tracking-widest text-xl"}, nil))
}

func TestStyle_Inputs(t *testing.T) {
	e := newEngine(t)
	got := e.Style(
		"p-1 bg-black",
		[]string{"flex", "p-1"},
		map[string]bool{"hidden": false, "italic": true},
		map[string]any{"opacity": 0.5, "uppercase": true},
		style.Of("zIndex", 2),
		42,
	)
	assertStyle(t, style.Of(
		"display", "flex",
		"paddingTop", 4, "paddingRight", 4, "paddingBottom", 4, "paddingLeft", 4,
		"fontStyle", "italic",
		"textTransform", "uppercase",
		"backgroundColor", "#000",
		"opacity", 0.5,
		"zIndex", 2,
	), got)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Tokens(" a  b", "a\tc "))
	assert.Empty(t, Tokens("", "  "))
}

func TestColor(t *testing.T) {
	e := newEngine(t)
	tests := []struct {
		utilities string
		want      string
		ok        bool
	}{
		{"red-500", "#ef4444", true},
		{"text-blue-500", "#3b82f6", true},
		{"bg-white opacity-50", "rgba(255, 255, 255, 0.5)", true},
		{"black opacity-50", "rgba(0, 0, 0, 0.5)", true},
		{"nope", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.utilities, func(t *testing.T) {
			got, ok := e.Color(tt.utilities)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesPrefixes(t *testing.T) {
	e := newEngine(t)
	e.SetDevice(device.Device{ColorScheme: device.SchemeDark, Platform: "ios"}.WithDimensions(800, 600))

	assert.True(t, e.MatchesPrefixes("dark"))
	assert.True(t, e.MatchesPrefixes("ios", "md", "dark"))
	assert.True(t, e.MatchesPrefixes("dark", "md", "ios"))
	assert.False(t, e.MatchesPrefixes("android"))
	assert.False(t, e.MatchesPrefixes("portrait"))
	assert.False(t, e.MatchesPrefixes("lg"))
	assert.False(t, e.MatchesPrefixes())
	assert.Equal(t, 1, e.Stats().PrefixHits)
}

func TestRegisterUtilities(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.RegisterUtilities(map[string]any{
		"btn":     "px-2 py-1 bg-blue-500 rounded",
		"btn-lg":  "btn text-lg",
		"card":    style.Of("elevation", 4, "backgroundColor", "white"),
		"divider": map[string]any{"height": 1},
	}))

	assertStyle(t, style.Of(
		"paddingLeft", 8, "paddingRight", 8,
		"paddingTop", 4, "paddingBottom", 4,
		"borderRadius", 4,
		"backgroundColor", "#3b82f6",
		"fontSize", 18, "lineHeight", 28,
	), e.Resolve([]string{"btn-lg"}, nil))
	assertStyle(t, style.Of("elevation", 4, "backgroundColor", "white", "height", 1),
		e.Resolve([]string{"card divider"}, nil))

	e.SetWindowDimensions(800, 600)
	assertStyle(t, style.Of("elevation", 4, "backgroundColor", "#000"),
		e.Resolve([]string{"md:bg-black card"}, nil))

	assert.Contains(t, e.Utilities(), "btn-lg")
	assert.Contains(t, e.Utilities(), "shadow-md")
	assert.ErrorIs(t, e.RegisterUtilities(map[string]any{"late": "flex"}), ErrRegistrationClosed)
}

func TestRegisterUtilities_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		utilities map[string]any
		cycle     bool
	}{
		{"self reference", map[string]any{"a": "flex a"}, true},
		{"transitive", map[string]any{"a": "b", "b": "md:c", "c": "p-1 a"}, true},
		{"unsupported", map[string]any{"a": 12}, false},
		{"bad name", map[string]any{"a b": "flex"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			err := e.RegisterUtilities(tt.utilities)
			require.Error(t, err)
			assert.Equal(t, tt.cycle, errors.Is(err, ErrUtilityCycle), "err: %v", err)
			assert.NotContains(t, e.Utilities(), "a")
		})
	}
}
