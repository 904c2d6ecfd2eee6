// Package tailwind recognizes Tailwind CSS utility class names.
package tailwind

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	loadOnce  sync.Once
	utilities *table
	loadErr   error

	numberRegex   = regexp.MustCompile(`^\d+(\.\d+)?$`)
	fractionRegex = regexp.MustCompile(`^\d+/\d+$`)

	palette = set("slate", "gray", "zinc", "neutral", "stone", "red", "orange", "amber", "yellow", "lime", "green",
		"emerald", "teal", "cyan", "sky", "blue", "indigo", "violet", "purple", "fuchsia", "pink", "rose")
	shades          = set("50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950")
	colorKeywords   = set("inherit", "current", "transparent", "black", "white")
	sizes           = set("xs", "sm", "base", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl", "7xl", "8xl", "9xl")
	spacingKeywords = set("px", "auto", "full", "screen", "min", "max", "fit", "none",
		"svh", "lvh", "dvh", "svw", "lvw", "dvw")
)

func set(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

// Validator decides whether class name is a Tailwind utility.
type Validator struct {
	log *zap.Logger
	tbl *table
}

// New returns validator. Utility table is loaded once per process, its
// loading errors are returned by every call.
func New(log *zap.Logger) (*Validator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("tailwind")

	loadOnce.Do(func() {
		utilities, loadErr = parseTable(utilitiesTable)
		if loadErr == nil {
			log.Debug("Utility table loaded", zap.Int("exact", len(utilities.exact)), zap.Int("roots", len(utilities.roots)))
		}
	})
	if loadErr != nil {
		return nil, fmt.Errorf("unable to load tailwind utility table: %w", loadErr)
	}
	return &Validator{log: log, tbl: utilities}, nil
}

// IsUtility reports whether class is a utility class, with optional variants
// (md:hover:...), important marker and negative sign.
func (v *Validator) IsUtility(class string) bool {
	utility, ok := stripVariants(strings.TrimSpace(class))
	if !ok {
		return false
	}
	utility = strings.TrimSuffix(strings.TrimPrefix(utility, "!"), "!")
	if len(utility) == 0 {
		return false
	}

	// arbitrary property: [mask-type:luminance]
	if isArbitrary(utility) {
		return strings.Contains(utility, ":")
	}

	negative := utility[0] == '-'
	if negative {
		utility = utility[1:]
	} else if v.tbl.exact[utility] {
		return true
	}

	for i := len(utility) - 1; i > 0; i-- {
		if utility[i] != '-' {
			continue
		}
		if spec, ok := v.tbl.roots[utility[:i]]; ok && spec.accepts(utility[i+1:], negative) {
			return true
		}
	}
	return false
}

// stripVariants returns utility part of the class, variants are separated by
// colons outside of brackets.
func stripVariants(class string) (string, bool) {
	depth, start := 0, 0
	for i := 0; i < len(class); i++ {
		switch class[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ':':
			if depth == 0 {
				if i == start {
					// empty variant
					return "", false
				}
				start = i + 1
			}
		}
	}
	if start >= len(class) || depth != 0 {
		return "", false
	}
	return class[start:], true
}

func isArbitrary(value string) bool {
	n := len(value)
	return n > 2 && (value[0] == '[' && value[n-1] == ']' || value[0] == '(' && value[n-1] == ')')
}

func (r *rootSpec) accepts(value string, negative bool) bool {
	if len(value) == 0 {
		return false
	}
	if isArbitrary(value) {
		return true
	}
	if negative {
		return (r.spacing || r.number) && numberRegex.MatchString(value) ||
			r.spacing && (fractionRegex.MatchString(value) || value == "px")
	}
	switch {
	case r.keywords[value]:
		return true
	case r.number && numberRegex.MatchString(value):
		return true
	case r.spacing && (numberRegex.MatchString(value) || fractionRegex.MatchString(value) || spacingKeywords[value]):
		return true
	case r.size && sizes[value]:
		return true
	case r.color && isColor(value):
		return true
	}
	return false
}

func isColor(value string) bool {
	if i := strings.LastIndexByte(value, '/'); i >= 0 {
		alpha := value[i+1:]
		if !numberRegex.MatchString(alpha) && !isArbitrary(alpha) {
			return false
		}
		value = value[:i]
	}
	if colorKeywords[value] {
		return true
	}
	name, shade, ok := strings.Cut(value, "-")
	return ok && palette[name] && shades[shade]
}
