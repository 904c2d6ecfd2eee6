package page

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/PuerkitoBio/goquery"
	sprig "github.com/go-task/slim-sprig/v3"
)

// Image describes <img> element placeholder is generated for.
type Image struct {
	Src    string
	Alt    string
	Width  int
	Height int
}

// Placeholder produces image source replacing original one.
type Placeholder struct {
	tmpl          *template.Template
	defaultWidth  int
	defaultHeight int
}

// NewPlaceholder parses placeholder source template. Template has access to
// slim-sprig functions and Image fields. Dimensions are used when image
// element does not specify its own.
func NewPlaceholder(text string, defaultWidth, defaultHeight int) (*Placeholder, error) {
	tmpl, err := template.New("placeholder").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse placeholder template: %w", err)
	}
	return &Placeholder{tmpl: tmpl, defaultWidth: defaultWidth, defaultHeight: defaultHeight}, nil
}

// Source expands template for image.
func (p *Placeholder) Source(img Image) (string, error) {
	var sb strings.Builder
	if err := p.tmpl.Execute(&sb, img); err != nil {
		return "", fmt.Errorf("unable to expand placeholder template: %w", err)
	}
	return strings.TrimSpace(sb.String()), nil
}

// dimension reads numeric size attribute ("120" or "120px").
func dimension(s *goquery.Selection, name string, def int) int {
	v, ok := s.Attr(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// ReplaceImages points every <img> element to placeholder source and drops
// srcset. Returns number of replaced images.
func ReplaceImages(markup string, p *Placeholder) (string, int, error) {
	doc, err := load(markup)
	if err != nil {
		return "", 0, err
	}

	var (
		count   int
		execErr error
	)
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, err := p.Source(Image{
			Src:    s.AttrOr("src", ""),
			Alt:    s.AttrOr("alt", ""),
			Width:  dimension(s, "width", p.defaultWidth),
			Height: dimension(s, "height", p.defaultHeight),
		})
		if err != nil {
			execErr = err
			return false
		}
		s.SetAttr("src", src)
		s.RemoveAttr("srcset")
		count++
		return true
	})
	if execErr != nil {
		return "", 0, execErr
	}

	out, err := render(doc)
	if err != nil {
		return "", 0, err
	}
	return out, count, nil
}
