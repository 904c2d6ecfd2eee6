package cssvars

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// PruneUnusedPropertyRules removes @property rules registering custom
// properties which are never mentioned elsewhere in css - neither referenced
// through var() nor declared. Returns resulting text and names of removed
// rules. When css has no @property rules it is returned unchanged.
func PruneUnusedPropertyRules(css string) (string, Set) {
	removed := make(Set)

	rules := ExtractPropertyRules(css)
	if len(rules) == 0 {
		return css, removed
	}

	used := AllUsages(css)
	for name := range rules {
		if !used.Has(name) {
			removed.Add(name)
		}
	}
	if removed.Len() == 0 {
		return css, removed
	}

	var b strings.Builder
	b.Grow(len(css))
	last := 0
	for _, m := range propertyRuleRegex.FindAllStringSubmatchIndex(css, -1) {
		if !removed.Has(css[m[2]:m[3]]) {
			continue
		}
		b.WriteString(css[last:m[0]])
		last = m[1]
	}
	b.WriteString(css[last:])
	return b.String(), removed
}

// Unreachable returns declared names which cannot be reached from any direct
// usage in css.
func Unreachable(css string) Set {
	unreachable := make(Set)

	decls := ExtractDeclarations(css)
	if len(decls) == 0 {
		return unreachable
	}

	reachable := Resolve(DirectUsages(css), BuildGraph(decls))
	for name := range decls {
		if !reachable.Has(name) {
			unreachable.Add(name)
		}
	}
	return unreachable
}

// PruneUnreachableDeclarations drops lines holding a single declaration of an
// unreachable custom property. Lines mixing a declaration with anything else
// are left alone. Returns resulting text and names for which at least one
// line was dropped.
func PruneUnreachableDeclarations(css string) (string, Set) {
	removed := make(Set)

	unreachable := Unreachable(css)
	if unreachable.Len() == 0 {
		return css, removed
	}

	re := lineMatcher(unreachable)

	var b strings.Builder
	b.Grow(len(css))
	for line := range strings.Lines(css) {
		if m := re.FindStringSubmatch(line); m != nil {
			removed.Add(m[1])
			continue
		}
		b.WriteString(line)
	}
	if removed.Len() == 0 {
		return css, removed
	}
	return b.String(), removed
}

// lineMatcher builds a single pattern matching a line which consists of
// exactly one declaration of any of names.
func lineMatcher(names Set) *regexp.Regexp {
	quoted := make([]string, 0, names.Len())
	for _, n := range names.Sorted() {
		quoted = append(quoted, regexp.QuoteMeta(n))
	}
	return regexp.MustCompile(`^\s*(` + strings.Join(quoted, "|") + `)\s*:[^;]+;\s*$`)
}

// Pruner runs pruning passes and reports what was removed.
type Pruner struct {
	log *zap.Logger
}

// NewPruner creates a new Pruner.
func NewPruner(log *zap.Logger) *Pruner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pruner{log: log.Named("cssvars")}
}

// UnusedPropertyRules is PruneUnusedPropertyRules with logging.
func (p *Pruner) UnusedPropertyRules(css string) (string, Set) {
	result, removed := PruneUnusedPropertyRules(css)
	if removed.Len() > 0 {
		p.log.Debug("Removed unused @property rules", zap.Int("count", removed.Len()), zap.Strings("names", removed.Sorted()))
	} else {
		p.log.Debug("All @property rules are in use")
	}
	return result, removed
}

// UnreachableDeclarations is PruneUnreachableDeclarations with logging.
func (p *Pruner) UnreachableDeclarations(css string) (string, Set) {
	result, removed := PruneUnreachableDeclarations(css)
	if removed.Len() > 0 {
		p.log.Debug("Removed unreachable custom properties", zap.Int("count", removed.Len()), zap.Strings("names", removed.Sorted()))
	} else {
		p.log.Debug("All custom properties are reachable")
	}
	return result, removed
}
