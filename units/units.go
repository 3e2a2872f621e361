// Package units parses CSS-like numeric values and converts them into native
// style values.
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"twstyle/style"
)

// Unit of a parsed magnitude.
type Unit int

const (
	None Unit = iota
	Rem
	Em
	Px
	Percent
	Vw
	Vh
	Deg
)

var unitNames = map[string]Unit{
	"rem": Rem,
	"em":  Em,
	"px":  Px,
	"%":   Percent,
	"vw":  Vw,
	"vh":  Vh,
	"deg": Deg,
}

func (u Unit) String() string {
	for name, v := range unitNames {
		if v == u {
			return name
		}
	}
	return ""
}

// RemBase is the number of density-independent pixels in one rem or em.
const RemBase = 16

var (
	ErrInvalidNumber    = errors.New("invalid numeric value")
	ErrUnsupportedUnit  = errors.New("unsupported unit")
	ErrViewportRequired = errors.New("viewport dimensions required")
)

// Viewport holds window dimensions needed by vw and vh.
type Viewport struct {
	Width  float64
	Height float64
}

// Context carries per-token conversion state.
type Context struct {
	// Negative negates the converted value.
	Negative bool
	// Fractions enables the a/b form.
	Fractions bool
	// Viewport is nil when window dimensions are unknown.
	Viewport *Viewport
}

// Parse splits s into magnitude and unit. With fractions set, "a/b" divides
// the two magnitudes and keeps the unit of the denominator.
func Parse(s string, fractions bool) (float64, Unit, error) {
	if fractions {
		if num, den, ok := strings.Cut(s, "/"); ok {
			n, _, err := Parse(num, false)
			if err != nil {
				return 0, None, err
			}
			d, u, err := Parse(den, false)
			if err != nil {
				return 0, None, err
			}
			return n / d, u, nil
		}
	}

	end := numberPrefix(s)
	if end == 0 {
		return 0, None, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, None, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	rest := s[end:]
	if rest == "" {
		return n, None, nil
	}
	u, ok := unitNames[rest]
	if !ok {
		return 0, None, fmt.Errorf("%w: %q", ErrUnsupportedUnit, s)
	}
	return n, u, nil
}

// numberPrefix returns the length of the leading decimal number in s.
func numberPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	return i
}

// Convert turns a magnitude and unit into a native value.
func Convert(n float64, u Unit, ctx Context) (style.Value, error) {
	sign := 1.0
	if ctx.Negative {
		sign = -1
	}
	switch u {
	case Rem, Em:
		return style.Number(n * RemBase * sign), nil
	case Px, None:
		return style.Number(n * sign), nil
	case Percent:
		return style.String(signed(ctx.Negative, Format(n)+"%")), nil
	case Deg:
		return style.String(signed(ctx.Negative, Format(n)+"deg")), nil
	case Vw, Vh:
		if ctx.Viewport == nil {
			return style.Value{}, fmt.Errorf("%w: %s", ErrViewportRequired, u)
		}
		dim := ctx.Viewport.Width
		if u == Vh {
			dim = ctx.Viewport.Height
		}
		return style.Number(dim * (n / 100) * sign), nil
	}
	return style.Value{}, fmt.Errorf("%w: %d", ErrUnsupportedUnit, int(u))
}

// Value parses and converts a configured value such as "1.5rem".
func Value(s string, ctx Context) (style.Value, error) {
	n, u, err := Parse(s, ctx.Fractions)
	if err != nil {
		return style.Value{}, err
	}
	return Convert(n, u, ctx)
}

// Unconfigged converts a value that has no theme entry: bracketed arbitrary
// values, the "px" keyword, fractions as percentages and bare numbers on the
// spacing scale where 1 is a quarter rem.
func Unconfigged(s string, ctx Context) (style.Value, error) {
	if strings.Contains(s, "/") {
		fctx := ctx
		fctx.Fractions = true
		if v, err := unconfigged(s, fctx); err == nil {
			return v, nil
		}
	}
	if IsArbitrary(s) {
		s = Unbracket(s)
	}
	return unconfigged(s, ctx)
}

func unconfigged(s string, ctx Context) (style.Value, error) {
	if s == "px" {
		if ctx.Negative {
			return style.Number(-1), nil
		}
		return style.Number(1), nil
	}
	n, u, err := Parse(s, ctx.Fractions)
	if err != nil {
		return style.Value{}, err
	}
	if ctx.Fractions {
		u = Percent
		n *= 100
	}
	if u == None {
		n /= 4
		u = Rem
	}
	return Convert(n, u, ctx)
}

// ToPx converts rem and px values to pixels.
func ToPx(s string) (float64, bool) {
	n, u, err := Parse(s, false)
	if err != nil {
		return 0, false
	}
	switch u {
	case Rem:
		return n * RemBase, true
	case Px:
		return n, true
	}
	return 0, false
}

// IsArbitrary reports whether s is a bracketed value like "[12px]".
func IsArbitrary(s string) bool {
	return len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']'
}

// Unbracket strips the brackets of an arbitrary value.
func Unbracket(s string) string {
	if IsArbitrary(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// Format renders n in its shortest decimal form.
func Format(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func signed(neg bool, s string) string {
	if neg {
		return "-" + s
	}
	return s
}
