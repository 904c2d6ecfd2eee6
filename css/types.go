// Package css provides a minimal CSS object model sufficient for rule level
// rewriting: parsing stylesheets, editing rules and writing them back.
package css

// Declaration is a single property declaration. Value keeps original tokens
// including any !important suffix.
type Declaration struct {
	Property string
	Value    string
}

// IsCustom reports whether declaration defines a custom property.
func (d Declaration) IsCustom() bool {
	return len(d.Property) > 2 && d.Property[0] == '-' && d.Property[1] == '-'
}

// Rule is a qualified (style) rule.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// AtRule is an at-rule with or without a block. Block contents are either
// declarations (@font-face, @property, @page) or nested items (@media,
// @supports, @keyframes), or both.
type AtRule struct {
	Name         string // including "@"
	Prelude      string
	Block        bool
	Declarations []Declaration
	Items        []Item
}

// Item is a single top level or nested stylesheet entry, only one of the
// fields is set.
type Item struct {
	Rule   *Rule
	AtRule *AtRule
}

// Stylesheet is a parsed stylesheet.
type Stylesheet struct {
	Items []Item
}

// groupingAtRules hold nested rules which apply conditionally.
var groupingAtRules = map[string]bool{
	"@media":     true,
	"@supports":  true,
	"@container": true,
	"@layer":     true,
	"@document":  true,
	"@scope":     true,
}

// IsGrouping reports whether at-rule is a conditional group rule which
// contents can be filtered like top level rules.
func (a *AtRule) IsGrouping() bool {
	return a.Block && groupingAtRules[a.Name]
}

// Empty reports whether at-rule block has nothing inside.
func (a *AtRule) Empty() bool {
	return a.Block && len(a.Declarations) == 0 && len(a.Items) == 0
}
