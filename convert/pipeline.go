package convert

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"slimock/config"
	"slimock/css"
	"slimock/cssvars"
	"slimock/format"
	"slimock/page"
	"slimock/purge"
	"slimock/tailwind"
)

// ErrNoStyles is returned when document does not have anything to slim.
var ErrNoStyles = errors.New("no <style> tags found")

// Pipeline slims single HTML document. Every stage could be switched off in
// configuration. It is not safe for concurrent use.
type Pipeline struct {
	cfg *config.DocumentConfig
	rpt *config.Report
	log *zap.Logger

	parser      *css.Parser
	purger      *purge.Purger
	pruner      *cssvars.Pruner
	formatter   *format.Formatter
	utilities   *tailwind.Validator
	placeholder *page.Placeholder
}

// NewPipeline prepares pipeline stages requested by cfg. Report could be nil.
func NewPipeline(cfg *config.DocumentConfig, rpt *config.Report, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}

	p := &Pipeline{
		cfg:       cfg,
		rpt:       rpt,
		log:       log,
		parser:    css.NewParser(log),
		purger:    purge.New(log),
		pruner:    cssvars.NewPruner(log),
		formatter: format.New(log),
	}

	var err error
	if cfg.Tailwind.StripClasses {
		if p.utilities, err = tailwind.New(log); err != nil {
			return nil, err
		}
	}
	if cfg.Images.Placeholder {
		if p.placeholder, err = page.NewPlaceholder(cfg.Images.PlaceholderTemplate, cfg.Images.DefaultWidth, cfg.Images.DefaultHeight); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func sizeKB(s string) int {
	return int(math.Round(float64(len(s)) / 1024))
}

// recoverable runs document rewrite which is allowed to fail, on failure
// document is left unchanged.
func (p *Pipeline) recoverable(stage, html string, fn func(string) (string, error)) string {
	out, err := fn(html)
	if err != nil {
		p.log.Warn("Unable to complete stage, leaving document as is", zap.String("stage", stage), zap.Error(err))
		return html
	}
	return out
}

func (p *Pipeline) snapshot(name, text string) {
	p.rpt.StoreData(name, []byte(text))
}

// Document runs complete document pipeline.
func (p *Pipeline) Document(ctx context.Context, html string) (string, error) {
	p.snapshot("stages/00-input.html", html)

	if p.cfg.Normalize {
		html = p.recoverable("normalize", html, page.Normalize)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	forPurge := html
	if p.utilities != nil {
		p.log.Info("Removing Tailwind classes for selector purge")
		forPurge = p.recoverable("tailwind", html, func(s string) (string, error) {
			out, removed, err := page.RemoveClasses(s, p.utilities.IsUtility)
			if err == nil {
				p.log.Debug("Tailwind classes removed", zap.Int("count", removed))
			}
			return out, err
		})
	}

	html, err := p.Stylesheet(ctx, html, forPurge)
	if err != nil {
		return "", err
	}

	if p.cfg.Images.RemoveInlineDataURLs {
		html = page.RemoveInlineStyleDataURLs(html)
	}
	if p.placeholder != nil {
		html = p.recoverable("placeholder", html, func(s string) (string, error) {
			out, count, err := page.ReplaceImages(s, p.placeholder)
			if err == nil {
				p.log.Debug("Images replaced with placeholders", zap.Int("count", count))
			}
			return out, err
		})
	}
	if p.cfg.Cleanup.RemoveUnnecessary {
		html = page.RemoveUnnecessaryElements(html)
	}
	if len(p.cfg.Tailwind.CDNURL) > 0 {
		html = p.recoverable("tailwind-cdn", html, func(s string) (string, error) {
			return page.AddScript(s, p.cfg.Tailwind.CDNURL)
		})
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	html = p.formatter.HTML(html, p.cfg.Format)
	p.snapshot("stages/99-output.html", html)
	return html, nil
}

// Stylesheet collects all <style> elements of html into a single slimmed
// stylesheet which replaces the first of them, the rest is removed.
// Selectors are matched against htmlForPurge.
func (p *Pipeline) Stylesheet(ctx context.Context, html, htmlForPurge string) (string, error) {
	styles := page.ExtractStyles(html)
	if len(styles) == 0 {
		return "", ErrNoStyles
	}
	cfg := &p.cfg.Styles

	text := strings.Join(styles, "\n")
	p.snapshot("stages/01-extracted.css", text)

	if cfg.RemoveDataURLs {
		var removed []css.DataURL
		if text, removed = css.RemoveDataURLs(text); len(removed) > 0 {
			for _, d := range removed {
				p.log.Debug("Removed data URL", zap.String("declared", d.Declared), zap.String("detected", d.Detected), zap.Int("size", d.Size))
			}
		}
	}
	if cfg.RemoveFontFaces {
		var count int
		if text, count = css.RemoveFontFaces(text); count > 0 {
			p.log.Debug("Removed @font-face rules", zap.Int("count", count))
		}
	}
	p.log.Info("CSS cleanup complete", zap.Int("sizeKB", sizeKB(text)))
	p.snapshot("stages/02-cleaned.css", text)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if cfg.PurgeSelectors {
		purged, err := p.purger.Purge(page.RemoveStyles(htmlForPurge), text)
		if err != nil {
			p.log.Warn("Unable to purge selectors, leaving stylesheet as is", zap.Error(err))
		} else {
			text = purged
			p.log.Info("Selector purge complete", zap.Int("sizeKB", sizeKB(text)))
			p.snapshot("stages/03-purged.css", text)
		}
	}

	if cfg.PruneVariables {
		var removed cssvars.Set
		if text, removed = p.pruner.UnreachableDeclarations(text); removed.Len() > 0 {
			p.snapshot("stages/04-variables.css", text)
			p.snapshot("removed/variables.txt", strings.Join(removed.Sorted(), "\n"))
		}
	}
	if cfg.PrunePropertyRules {
		var removed cssvars.Set
		if text, removed = p.pruner.UnusedPropertyRules(text); removed.Len() > 0 {
			p.snapshot("stages/05-properties.css", text)
			p.snapshot("removed/properties.txt", strings.Join(removed.Sorted(), "\n"))
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if cfg.RemoveVendorPrefixes {
		text = p.removeVendorPrefixes(text)
	}

	text = p.formatter.CSS(text, cfg.Format)
	p.snapshot("stages/07-final.css", text)

	return page.ReplaceStyles(html, text), nil
}

func (p *Pipeline) removeVendorPrefixes(text string) string {
	sheet, err := p.parser.Parse([]byte(text))
	if err != nil {
		p.log.Warn("Unable to remove vendor prefixes, leaving stylesheet as is", zap.Error(err))
		return text
	}
	stats := css.RemoveVendorPrefixes(sheet)
	p.log.Info("Vendor prefixes removed",
		zap.Int("declarations", stats.Declarations), zap.Int("rules", stats.Rules), zap.Int("at-rules", stats.AtRules))

	out := sheet.String()
	if stats.Total() > 0 {
		p.snapshot("stages/06-unprefixed.css", out)
	}
	return out
}
