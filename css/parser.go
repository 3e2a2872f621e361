// Package css imports utility classes from CSS stylesheets.
package css

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Rules:    make([]Rule, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			// Rules nested in @media and friends are conditional and have no
			// utility equivalent
			atRule := string(data)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule block: "+atRule)
			p.skipAtRuleBlock(parser)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			selectors := p.parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser)

			// Create rules for each selector
			for _, selStr := range selectors {
				sel := p.parseSelector(selStr, sheet)
				if !sel.IsUtility() {
					continue
				}
				sheet.Rules = append(sheet.Rules, Rule{
					Selector:     sel,
					Declarations: append([]Declaration(nil), decls...),
				})
			}
		}
	}
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var decls []Declaration

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			values, important := stripImportant(parser.Values())
			if len(values) > 0 {
				decls = append(decls, Declaration{
					Property:  string(data),
					Value:     p.parsePropertyValue(values),
					Important: important,
				})
			}

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) have no native counterpart
			continue
		}
	}
}

// stripImportant trims surrounding whitespace and drops a trailing "!important".
func stripImportant(tokens []css.Token) ([]css.Token, bool) {
	tokens = trimWhitespace(tokens)
	end := len(tokens)
	if end >= 2 && tokens[end-1].TokenType == css.IdentToken &&
		strings.EqualFold(string(tokens[end-1].Data), "important") &&
		tokens[end-2].TokenType == css.DelimToken && string(tokens[end-2].Data) == "!" {
		return trimWhitespace(tokens[:end-2]), true
	}
	return tokens, false
}

func trimWhitespace(tokens []css.Token) []css.Token {
	for len(tokens) > 0 && tokens[0].TokenType == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// parsePropertyValue converts CSS tokens to a Value.
func (p *Parser) parsePropertyValue(tokens []css.Token) Value {
	if len(tokens) == 0 {
		return Value{}
	}

	// Build raw value string
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(rawParts, ""))

	// Handle single token cases
	if len(tokens) == 1 {
		return singleValue(tokens[0], raw)
	}

	val := Value{Raw: raw, Keyword: raw}

	// Function tokens (rgb(), calc(), etc.) stay a single keyword
	if tokens[0].TokenType == css.FunctionToken {
		return val
	}

	// Multi-value properties keep their components for shorthand expansion
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
		case css.DimensionToken, css.PercentageToken, css.NumberToken, css.IdentToken, css.HashToken:
			val.Parts = append(val.Parts, singleValue(t, string(t.Data)))
		default:
			// Anything else makes the components meaningless
			val.Parts = nil
			return val
		}
	}
	return val
}

func singleValue(t css.Token, raw string) Value {
	val := Value{Raw: raw}
	switch t.TokenType {
	case css.DimensionToken:
		val.Value, val.Unit = parseDimension(string(t.Data))
	case css.PercentageToken:
		val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
		val.Unit = "%"
	case css.NumberToken:
		val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
	case css.IdentToken:
		val.Keyword = strings.ToLower(string(t.Data))
	case css.StringToken:
		val.Keyword = unquote(string(t.Data))
	default:
		// Hash colors and anything else are kept verbatim
		val.Keyword = string(t.Data)
	}
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// parseSelector recognizes lone class selectors. Everything else is recorded
// as a warning and returned without a class.
func (p *Parser) parseSelector(selStr string, sheet *Stylesheet) Selector {
	selStr = strings.TrimSpace(selStr)
	sel := Selector{Raw: selStr}

	class, ok := strings.CutPrefix(selStr, ".")
	if !ok {
		sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+selStr)
		p.log.Debug("Skipping non-class selector", zap.String("selector", selStr))
		return sel
	}
	if i := unescapedIndex(class, " \t\n+~>.[:#"); i >= 0 {
		sheet.Warnings = append(sheet.Warnings, "unsupported compound selector: "+selStr)
		p.log.Debug("Skipping compound selector", zap.String("selector", selStr))
		return sel
	}
	sel.Class = unescape(class)
	return sel
}

// unescapedIndex returns the index of the first character of chars in s that
// is not preceded by a backslash, or -1.
func unescapedIndex(s, chars string) int {
	escaped := false
	for i, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case strings.ContainsRune(chars, r):
			return i
		}
	}
	return -1
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
