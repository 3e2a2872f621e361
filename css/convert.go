package css

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"twstyle/style"
)

// Base font size used to convert rem and em lengths to points.
const remBase = 16

// Properties which keep numeric values as strings in native style maps.
var stringValued = map[string]bool{
	"fontWeight": true,
}

// Shorthands with up to four box sides.
var boxShorthands = map[string]bool{
	"margin":  true,
	"padding": true,
}

// Converter turns parsed utility rules into native style maps.
type Converter struct {
	log   *zap.Logger
	title cases.Caser
}

// NewConverter creates a converter. Converters are not safe for concurrent use.
func NewConverter(log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{
		log:   log.Named("css-converter"),
		title: cases.Title(language.Und),
	}
}

// Utilities converts every class rule of the stylesheet. Rules for the same
// class merge in source order and !important declarations are only
// overridden by other !important ones. Problems are appended to sheet.Warnings.
func (c *Converter) Utilities(sheet *Stylesheet) map[string]*style.Style {
	out := make(map[string]*style.Style)
	if sheet == nil {
		return out
	}
	important := make(map[string]map[string]bool)
	for _, rule := range sheet.Rules {
		if !rule.Selector.IsUtility() {
			continue
		}
		class := rule.Selector.Class
		if _, ok := out[class]; !ok {
			out[class] = style.New()
			important[class] = make(map[string]bool)
		}
		c.convertRule(rule, out[class], important[class], sheet)
	}
	c.log.Debug("Converted stylesheet", zap.Int("utilities", len(out)), zap.Int("warnings", len(sheet.Warnings)))
	return out
}

// convertRule writes the rule's declarations into s. Keys in important are
// only replaced by other important declarations.
func (c *Converter) convertRule(rule Rule, s *style.Style, important map[string]bool, sheet *Stylesheet) {
	set := func(key string, v style.Value, imp bool) {
		if important[key] && !imp {
			return
		}
		s.Set(key, v)
		if imp {
			important[key] = true
		}
	}

	for _, d := range rule.Declarations {
		name := c.PropertyName(d.Property)
		if boxShorthands[name] {
			parts := d.Value.Parts
			if len(parts) == 0 {
				parts = []Value{d.Value}
			}
			sides, err := expandBox(parts)
			if err != nil {
				sheet.Warnings = append(sheet.Warnings, fmt.Sprintf(".%s: %s: %v", rule.Selector.Class, d.Property, err))
				continue
			}
			for i, side := range []string{"Top", "Right", "Bottom", "Left"} {
				set(name+side, c.value(name+side, sides[i]), d.Important)
			}
			continue
		}
		set(name, c.value(name, d.Value), d.Important)
	}
}

// PropertyName converts a CSS property name to its native camelCase form:
// "border-top-width" -> "borderTopWidth", "-webkit-appearance" -> "WebkitAppearance".
func (c *Converter) PropertyName(prop string) string {
	prop = strings.ToLower(strings.TrimSpace(prop))
	vendor := strings.HasPrefix(prop, "-")
	parts := strings.Split(strings.TrimLeft(prop, "-"), "-")

	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 && !vendor {
			b.WriteString(part)
			continue
		}
		b.WriteString(c.title.String(part))
	}
	return b.String()
}

func (c *Converter) value(prop string, v Value) style.Value {
	if stringValued[prop] {
		return style.String(v.Raw)
	}
	if len(v.Parts) > 0 || !v.IsNumeric() {
		return style.String(v.Raw)
	}
	switch v.Unit {
	case "rem", "em":
		return style.Number(v.Value * remBase)
	case "px", "":
		return style.Number(v.Value)
	default:
		// %, deg and viewport units stay strings
		return style.String(v.Raw)
	}
}

// expandBox spreads 1 to 4 shorthand values over top, right, bottom and left.
func expandBox(parts []Value) ([4]Value, error) {
	switch len(parts) {
	case 1:
		return [4]Value{parts[0], parts[0], parts[0], parts[0]}, nil
	case 2:
		return [4]Value{parts[0], parts[1], parts[0], parts[1]}, nil
	case 3:
		return [4]Value{parts[0], parts[1], parts[2], parts[1]}, nil
	case 4:
		return [4]Value{parts[0], parts[1], parts[2], parts[3]}, nil
	}
	return [4]Value{}, fmt.Errorf("expected 1 to 4 values, got %d", len(parts))
}
