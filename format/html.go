package format

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const indentUnit = "  "

var spaceRegex = regexp.MustCompile(`\s+`)

// blocks start on their own line and indent their content.
var blocks = map[atom.Atom]bool{
	atom.Html: true, atom.Head: true, atom.Body: true,
	atom.Meta: true, atom.Link: true, atom.Base: true, atom.Style: true, atom.Script: true, atom.Noscript: true,
	atom.Header: true, atom.Footer: true, atom.Main: true, atom.Nav: true, atom.Section: true, atom.Article: true, atom.Aside: true,
	atom.Div: true, atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Table: true, atom.Caption: true, atom.Colgroup: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true,
	atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.Form: true, atom.Fieldset: true, atom.Legend: true, atom.Select: true, atom.Optgroup: true, atom.Option: true,
	atom.Figure: true, atom.Figcaption: true, atom.Blockquote: true, atom.Address: true, atom.Details: true, atom.Summary: true,
	atom.Hr: true, atom.Pre: true, atom.Textarea: true, atom.Template: true, atom.Title: true,
}

var voids = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true, atom.Embed: true, atom.Hr: true, atom.Img: true,
	atom.Input: true, atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true, atom.Wbr: true,
}

type frame struct {
	tag atom.Atom
	// start tag was written out on a line of its own
	flushed bool
}

// printer indents block elements and keeps inline content on a single line.
// Content of pre and textarea is copied verbatim, content of style and
// script is reindented line by line.
type printer struct {
	out       strings.Builder
	line      strings.Builder
	lineDepth int
	stack     []frame
	raw       atom.Atom
	verbatim  atom.Atom
	// whitespace right after block start tag is insignificant
	trim bool
}

func (p *printer) depth() int {
	return len(p.stack)
}

func (p *printer) write(s string) {
	if p.line.Len() == 0 {
		p.lineDepth = p.depth()
	}
	p.line.WriteString(s)
}

func (p *printer) writeText(s string) {
	if p.verbatim != 0 {
		p.write(s)
		return
	}
	s = spaceRegex.ReplaceAllString(s, " ")
	if strings.HasPrefix(s, " ") && (p.trim || p.line.Len() == 0 || strings.HasSuffix(p.line.String(), " ")) {
		s = s[1:]
	}
	if len(s) > 0 {
		p.write(s)
		p.trim = false
	}
}

// trimLine drops trailing whitespace of pending line.
func (p *printer) trimLine() {
	s := strings.TrimRight(p.line.String(), " ")
	p.line.Reset()
	p.line.WriteString(s)
}

func (p *printer) flush() {
	s := strings.TrimSpace(p.line.String())
	p.line.Reset()
	if len(s) == 0 {
		return
	}
	p.out.WriteString(strings.Repeat(indentUnit, p.lineDepth))
	p.out.WriteString(s)
	p.out.WriteByte('\n')
	for i := range p.stack {
		p.stack[i].flushed = true
	}
}

func (p *printer) writeRawBlock(text string) {
	if len(strings.TrimSpace(text)) == 0 {
		return
	}
	p.flush()
	indent := strings.Repeat(indentUnit, p.depth())
	for l := range strings.Lines(strings.Trim(text, "\r\n")) {
		l = strings.TrimRight(l, " \t\r\n")
		if len(l) == 0 {
			continue
		}
		p.out.WriteString(indent)
		p.out.WriteString(l)
		p.out.WriteByte('\n')
	}
	for i := range p.stack {
		p.stack[i].flushed = true
	}
}

func (p *printer) start(tag atom.Atom, raw string, selfClosing bool) {
	if !blocks[tag] {
		p.write(raw)
		p.trim = false
		return
	}
	p.flush()
	p.write(raw)
	if voids[tag] || selfClosing {
		p.flush()
		return
	}
	p.stack = append(p.stack, frame{tag: tag})
	p.trim = true
	switch tag {
	case atom.Style, atom.Script:
		p.raw = tag
	case atom.Pre, atom.Textarea:
		p.verbatim = tag
	}
}

func (p *printer) end(tag atom.Atom, raw string) {
	i := len(p.stack) - 1
	for i >= 0 && p.stack[i].tag != tag {
		i--
	}
	if !blocks[tag] || i < 0 {
		p.write(raw)
		p.trim = false
		return
	}
	f := p.stack[i]
	p.stack = p.stack[:i]
	verbatim := p.verbatim != 0
	p.raw, p.verbatim = 0, 0

	switch {
	case f.flushed:
		p.flush()
	case !verbatim:
		p.trimLine()
	}
	p.write(raw)
	p.flush()
}

func prettyHTML(text string) (string, error) {
	var p printer
	p.out.Grow(len(text))

	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			p.flush()
			return p.out.String(), nil
		}

		// TagName lowercases tag name inside tokenizer buffer, copy raw first
		raw := string(z.Raw())

		if p.verbatim != 0 {
			if tt == html.EndTagToken {
				if name, _ := z.TagName(); atom.Lookup(name) == p.verbatim {
					p.end(p.verbatim, raw)
					continue
				}
			}
			p.write(raw)
			continue
		}

		switch tt {
		case html.TextToken:
			if p.raw != 0 {
				p.writeRawBlock(raw)
				continue
			}
			p.writeText(raw)
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			p.start(atom.Lookup(name), raw, tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			name, _ := z.TagName()
			p.end(atom.Lookup(name), raw)
		case html.CommentToken, html.DoctypeToken:
			p.flush()
			p.write(raw)
			p.flush()
		}
	}
}

