package cssvars

import (
	"regexp"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

var (
	// var(--name ... - fallback and closing paren do not matter
	usageRegex = regexp.MustCompile(`var\(\s*(--[\w-]+)`)

	// --name: anywhere, terminated or not
	definitionRegex = regexp.MustCompile(`(--[\w-]+)\s*:`)

	// line starting with a custom property declaration
	declarationLineRegex = regexp.MustCompile(`^\s*--[\w-]+\s*:`)
)

// Set is a set of custom property names.
type Set map[string]struct{}

// NewSet returns set holding names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s Set) Add(name string) {
	s[name] = struct{}{}
}

func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns names in natural order ("--gap-2" before "--gap-10").
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case natural.Less(a, b):
			return -1
		default:
			return 1
		}
	})
	return names
}

// DirectUsages returns names referenced through var() on lines which are not
// custom property declarations themselves.
//
// Classification is line grained: a line like "--a: var(--b); color: var(--a);"
// is a declaration line and none of its references count as direct.
func DirectUsages(css string) Set {
	used := make(Set)
	for line := range strings.Lines(css) {
		if declarationLineRegex.MatchString(line) {
			continue
		}
		for _, m := range usageRegex.FindAllStringSubmatch(line, -1) {
			used.Add(m[1])
		}
	}
	return used
}

// AllUsages returns every name referenced through var() anywhere in css
// together with every name declared outside of @property rules.
func AllUsages(css string) Set {
	used := make(Set)
	for _, m := range usageRegex.FindAllStringSubmatch(css, -1) {
		used.Add(m[1])
	}
	for _, m := range definitionRegex.FindAllStringSubmatch(propertyRuleRegex.ReplaceAllString(css, ""), -1) {
		used.Add(m[1])
	}
	return used
}

// references returns names referenced through var() in a declaration value.
func references(value string) []string {
	matches := usageRegex.FindAllStringSubmatch(value, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
