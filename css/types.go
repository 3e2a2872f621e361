package css

import (
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.25rem", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "rem", "px", "%", "deg", etc.
	Keyword string  // Keyword if applicable: "bold", "center", "#fff", multi-value text
	Parts   []Value // Space separated components of a multi-value declaration
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	if v.Raw != "" && v.Keyword == "" {
		first := rune(v.Raw[0])
		if unicode.IsDigit(first) || first == '.' || first == '-' || first == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property  string
	Value     Value
	Important bool
}

// Selector represents a parsed CSS selector.
type Selector struct {
	Raw   string // Original selector string
	Class string // Class name without dot and escapes, empty unless the selector is a lone class
}

// IsUtility returns true if the selector names exactly one class.
func (s Selector) IsUtility() bool {
	return s.Class != ""
}

// Rule represents a single CSS rule (selector + declarations in source order).
type Rule struct {
	Selector     Selector
	Declarations []Declaration
}

// GetProperty returns the last value declared for a property.
func (r Rule) GetProperty(name string) (Value, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == name {
			return r.Declarations[i].Value, true
		}
	}
	return Value{}, false
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Rules    []Rule   // Top-level rules in source order
	Warnings []string // Warnings for unsupported features
}

// RulesBySelector returns all rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		if r.Selector.Raw == selector {
			matches = append(matches, r)
		}
	}
	return matches
}

// unescape removes CSS escapes from an identifier: "hover\:flex" -> "hover:flex".
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
