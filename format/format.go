// Package format produces final textual form of stylesheets and documents.
package format

import (
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	"go.uber.org/zap"

	"slimock/common"
	"slimock/css"
)

const (
	mediaCSS  = "text/css"
	mediaHTML = "text/html"
)

// Formatter pretty prints or minifies CSS and HTML text. Formatting never
// fails: on error a warning is logged and original text is returned.
type Formatter struct {
	log    *zap.Logger
	parser *css.Parser
	min    *minify.M
}

// New creates a new Formatter.
func New(log *zap.Logger) *Formatter {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("format")

	m := minify.New()
	m.AddFunc(mediaCSS, mincss.Minify)
	m.Add(mediaHTML, &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})

	return &Formatter{
		log:    log,
		parser: css.NewParser(log),
		min:    m,
	}
}

// CSS formats stylesheet text according to mode.
func (f *Formatter) CSS(text string, mode common.FormatMode) string {
	if !mode.Enabled() {
		return text
	}
	switch mode {
	case common.FormatModePretty:
		sheet, err := f.parser.Parse([]byte(text))
		if err != nil {
			f.log.Warn("Unable to format CSS, leaving as is", zap.Error(err))
			return text
		}
		return sheet.String()
	case common.FormatModeMinify:
		return f.minify(mediaCSS, text)
	default:
		return text
	}
}

// HTML formats document text according to mode.
func (f *Formatter) HTML(text string, mode common.FormatMode) string {
	if !mode.Enabled() {
		return text
	}
	switch mode {
	case common.FormatModePretty:
		out, err := prettyHTML(text)
		if err != nil {
			f.log.Warn("Unable to format HTML, leaving as is", zap.Error(err))
			return text
		}
		return out
	case common.FormatModeMinify:
		return f.minify(mediaHTML, text)
	default:
		return text
	}
}

func (f *Formatter) minify(mediatype, text string) string {
	out, err := f.min.String(mediatype, text)
	if err != nil {
		f.log.Warn("Unable to minify, leaving as is", zap.String("type", mediatype), zap.Error(err))
		return text
	}
	f.log.Debug("Minified", zap.String("type", mediatype), zap.Int("from", len(text)), zap.Int("to", len(out)))
	return out
}
