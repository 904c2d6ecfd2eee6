// Package cssvars decides which CSS custom properties of a stylesheet are
// still needed and removes the rest.
//
// Stylesheets are treated as flat text: every table here is built with
// regular expressions over the source, never with a syntax tree. This keeps
// the rewrite exact - whatever is not removed stays byte for byte as it was.
package cssvars

import (
	"regexp"
	"strings"
)

var (
	// --name: value; (the last declaration of a block may end with '}')
	declarationRegex = regexp.MustCompile(`(--[\w-]+)\s*:([^;{}]*)[;}]`)

	// @property --name { ... } - body may not contain nested braces
	propertyRuleRegex = regexp.MustCompile(`@property\s+(--[\w-]+)\s*\{[^}]*\}`)
)

// Declaration is a custom property assignment found in a stylesheet.
type Declaration struct {
	Name  string // including leading "--"
	Value string // text between ':' and terminating ';', trimmed
}

// PropertyRule is a complete @property block.
type PropertyRule struct {
	Name string
	Text string // exact source span
}

// ExtractDeclarations returns every custom property declaration found
// anywhere in css keyed by name. When a name is declared more than once the
// last declaration wins. Returned map is never nil.
func ExtractDeclarations(css string) map[string]Declaration {
	decls := make(map[string]Declaration)
	for _, m := range declarationRegex.FindAllStringSubmatchIndex(css, -1) {
		// "a--b: x;" or ".btn--primary:hover" are not declarations
		if m[0] > 0 && isIdentByte(css[m[0]-1]) {
			continue
		}
		name := css[m[2]:m[3]]
		decls[name] = Declaration{Name: name, Value: strings.TrimSpace(css[m[4]:m[5]])}
	}
	return decls
}

// ExtractPropertyRules returns all @property rules keyed by the custom
// property they register. Later rules overwrite earlier ones. Returned map is
// never nil.
func ExtractPropertyRules(css string) map[string]PropertyRule {
	rules := make(map[string]PropertyRule)
	for _, m := range propertyRuleRegex.FindAllStringSubmatch(css, -1) {
		rules[m[1]] = PropertyRule{Name: m[1], Text: m[0]}
	}
	return rules
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
