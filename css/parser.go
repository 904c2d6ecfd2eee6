package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

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

// Parse parses CSS text into a Stylesheet. Comments are dropped. Parsing
// stops on first syntax error reported by the tokenizer, returned error
// carries its position.
func (p *Parser) Parse(data []byte) (*Stylesheet, error) {
	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	items, decls, err := p.parseBlock(parser, false)
	if err != nil {
		return nil, err
	}
	if len(decls) > 0 {
		// stray declarations outside of any block, keep them visible in debug log
		p.log.Debug("Ignoring top level declarations", zap.Int("count", len(decls)))
	}

	p.log.Debug("Parsed stylesheet", zap.Int("bytes", len(data)), zap.Int("items", len(items)))
	return &Stylesheet{Items: items}, nil
}

// parseBlock collects items and declarations until end of current at-rule
// block (nested) or end of input.
func (p *Parser) parseBlock(parser *css.Parser, nested bool) ([]Item, []Declaration, error) {
	var (
		items     []Item
		decls     []Declaration
		selectors strings.Builder
	)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, nil, err
			}
			// unterminated blocks are closed by end of input
			return items, decls, nil

		case css.EndAtRuleGrammar:
			if nested {
				return items, decls, nil
			}

		case css.QualifiedRuleGrammar:
			// selector list is reported piecewise, one selector before each comma
			writeSelectorTokens(&selectors, data, parser.Values())
			selectors.WriteByte(',')

		case css.BeginRulesetGrammar:
			writeSelectorTokens(&selectors, data, parser.Values())
			rule := &Rule{Selectors: SplitSelectors(selectors.String())}
			selectors.Reset()

			var err error
			if rule.Declarations, err = p.parseDeclarations(parser); err != nil {
				return nil, nil, err
			}
			items = append(items, Item{Rule: rule})

		case css.BeginAtRuleGrammar:
			at := &AtRule{
				Name:    strings.ToLower(string(data)),
				Prelude: joinTokens(parser.Values()),
				Block:   true,
			}
			var err error
			if at.Items, at.Declarations, err = p.parseBlock(parser, true); err != nil {
				return nil, nil, err
			}
			items = append(items, Item{AtRule: at})

		case css.AtRuleGrammar:
			items = append(items, Item{AtRule: &AtRule{
				Name:    strings.ToLower(string(data)),
				Prelude: joinTokens(parser.Values()),
			}})

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decls = append(decls, declaration(data, parser.Values()))

		case css.CommentGrammar, css.EndRulesetGrammar:
			// nothing to do
		}
	}
}

func (p *Parser) parseDeclarations(parser *css.Parser) ([]Declaration, error) {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return decls, nil

		case css.EndRulesetGrammar:
			return decls, nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decls = append(decls, declaration(data, parser.Values()))
		}
	}
}

func declaration(name []byte, values []css.Token) Declaration {
	return Declaration{
		Property: string(name),
		Value:    joinTokens(values),
	}
}

func writeSelectorTokens(sb *strings.Builder, data []byte, values []css.Token) {
	if s := string(data); s != "{" && s != "," {
		sb.WriteString(s)
	}
	for _, v := range values {
		if v.TokenType == css.WhitespaceToken {
			sb.WriteByte(' ')
			continue
		}
		sb.Write(v.Data)
	}
}

// joinTokens builds text out of tokens. Tokenizer reports whitespace only
// between non-delimiter tokens ("0 auto" but "div>p", "(min-width:640px)"),
// every reported run becomes a single space.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// SplitSelectors splits selector list on top level commas, commas inside
// parentheses, brackets or strings are kept. Empty entries are dropped.
func SplitSelectors(list string) []string {
	var (
		out   []string
		depth int
		quote byte
		start int
	)

	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	for i := 0; i < len(list); i++ {
		c := list[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			add(list[start:i])
			start = i + 1
		}
	}
	add(list[start:])
	return out
}
