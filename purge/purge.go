// Package purge removes style rules which do not apply to a given document.
package purge

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"

	"slimock/css"
)

// Purger matches stylesheet selectors against document markup.
type Purger struct {
	log    *zap.Logger
	parser *css.Parser
}

// New creates a new Purger.
func New(log *zap.Logger) *Purger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Purger{
		log:    log.Named("purge"),
		parser: css.NewParser(log),
	}
}

// Stats describes single purge run.
type Stats struct {
	Selectors int // selectors examined
	Removed   int // selectors removed
	Rules     int // rules removed entirely
	Groups    int // grouping at-rules removed after being emptied
}

type matcher struct {
	doc   *goquery.Document
	cache map[string]bool
	stats Stats
}

// used reports whether selector matches at least one element. Selectors which
// cannot be evaluated against static markup are considered used.
func (m *matcher) used(sel string) bool {
	if res, ok := m.cache[sel]; ok {
		return res
	}

	res := true
	if norm, ok := matchable(sel); ok && len(norm) > 0 {
		if compiled, err := cascadia.Compile(norm); err == nil {
			res = m.doc.FindMatcher(compiled).Length() > 0
		}
	}
	m.cache[sel] = res
	return res
}

func (m *matcher) filter(items []css.Item) []css.Item {
	out := items[:0]
	for _, it := range items {
		switch {
		case it.Rule != nil:
			kept := it.Rule.Selectors[:0]
			for _, sel := range it.Rule.Selectors {
				m.stats.Selectors++
				if m.used(sel) {
					kept = append(kept, sel)
					continue
				}
				m.stats.Removed++
			}
			it.Rule.Selectors = kept
			if len(kept) == 0 {
				m.stats.Rules++
				continue
			}
		case it.AtRule != nil && it.AtRule.IsGrouping():
			if it.AtRule.Empty() {
				break
			}
			it.AtRule.Items = m.filter(it.AtRule.Items)
			if it.AtRule.Empty() {
				m.stats.Groups++
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// Purge returns stylesheet with every selector not matching any element of
// markup removed. Rules left without selectors are dropped, so are grouping
// at-rules left empty. Other at-rules (@keyframes, @font-face, @property and
// such) are kept as is. Result is written one declaration per line.
func (p *Purger) Purge(markup, stylesheet string) (string, error) {
	res, _, err := p.PurgeStats(markup, stylesheet)
	return res, err
}

// PurgeStats is Purge which also reports what was removed.
func (p *Purger) PurgeStats(markup, stylesheet string) (string, Stats, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", Stats{}, fmt.Errorf("unable to parse markup: %w", err)
	}
	sheet, err := p.parser.Parse([]byte(stylesheet))
	if err != nil {
		return "", Stats{}, fmt.Errorf("unable to parse stylesheet: %w", err)
	}

	m := &matcher{doc: doc, cache: make(map[string]bool)}
	sheet.Items = m.filter(sheet.Items)

	p.log.Debug("Selectors purged",
		zap.Int("selectors", m.stats.Selectors),
		zap.Int("removed", m.stats.Removed),
		zap.Int("rules", m.stats.Rules),
		zap.Int("groups", m.stats.Groups))
	return sheet.String(), m.stats, nil
}
