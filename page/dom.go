package page

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Normalize re-serializes document through HTML5 parser: implied elements
// are added, unclosed elements closed and attributes quoted. Document type
// declaration is kept when present.
func Normalize(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("unable to parse document: %w", err)
	}
	var sb strings.Builder
	sb.Grow(len(markup))
	if err := html.Render(&sb, doc); err != nil {
		return "", fmt.Errorf("unable to render document: %w", err)
	}
	return sb.String(), nil
}

func load(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}
	return doc, nil
}

func render(doc *goquery.Document) (string, error) {
	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("unable to render document: %w", err)
	}
	return out, nil
}

// AddScript appends external script element to document head.
func AddScript(markup, src string) (string, error) {
	doc, err := load(markup)
	if err != nil {
		return "", err
	}
	head := doc.Find("head").First()
	if head.Length() == 0 {
		return "", errors.New("no <head> element in document")
	}
	head.AppendNodes(&html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr:     []html.Attribute{{Key: "src", Val: src}},
	})
	return render(doc)
}

// RemoveClasses drops from class attributes every class for which drop
// returns true, attributes left empty are removed. Returns number of
// removed classes.
func RemoveClasses(markup string, drop func(class string) bool) (string, int, error) {
	doc, err := load(markup)
	if err != nil {
		return "", 0, err
	}

	removed := 0
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		classes := strings.Fields(s.AttrOr("class", ""))
		kept := classes[:0]
		for _, c := range classes {
			if drop(c) {
				removed++
				continue
			}
			kept = append(kept, c)
		}
		if len(kept) == 0 {
			s.RemoveAttr("class")
			return
		}
		s.SetAttr("class", strings.Join(kept, " "))
	})

	out, err := render(doc)
	if err != nil {
		return "", 0, err
	}
	return out, removed, nil
}
