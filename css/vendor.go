package css

import (
	"regexp"
	"strings"
)

var (
	vendorPrefixRegex   = regexp.MustCompile(`^-(webkit|moz|ms|o)-`)
	vendorValueRegex    = regexp.MustCompile(`(^|[\s,(])-(webkit|moz|ms|o)-[a-zA-Z]`)
	vendorSelectorRegex = regexp.MustCompile(`::?-(webkit|moz|ms|o)-[a-zA-Z-]+`)
)

// IsVendorPrefixed reports whether identifier (property or at-rule name
// without "@") starts with a browser vendor prefix.
func IsVendorPrefixed(ident string) bool {
	return vendorPrefixRegex.MatchString(ident)
}

// HasVendorSelector reports whether selector uses vendor specific
// pseudo-element or pseudo-class.
func HasVendorSelector(selector string) bool {
	return vendorSelectorRegex.MatchString(selector)
}

// VendorStats counts what RemoveVendorPrefixes dropped.
type VendorStats struct {
	Declarations int
	Rules        int
	AtRules      int
}

// Total returns total number of removed entries.
func (s VendorStats) Total() int {
	return s.Declarations + s.Rules + s.AtRules
}

// RemoveVendorPrefixes drops vendor prefixed declarations (by property name
// or by value), rules with vendor specific selectors and vendor prefixed
// at-rules. Rules and grouping at-rules left empty by removal are dropped
// too. Sheet is modified in place.
func RemoveVendorPrefixes(sheet *Stylesheet) VendorStats {
	var stats VendorStats
	sheet.Items = removeVendorItems(sheet.Items, &stats)
	return stats
}

func removeVendorItems(items []Item, stats *VendorStats) []Item {
	out := items[:0]
	for _, it := range items {
		switch {
		case it.Rule != nil:
			if vendorRule(it.Rule) {
				stats.Rules++
				continue
			}
			before := len(it.Rule.Declarations)
			it.Rule.Declarations = removeVendorDeclarations(it.Rule.Declarations, stats)
			if before > 0 && len(it.Rule.Declarations) == 0 {
				stats.Rules++
				continue
			}
		case it.AtRule != nil:
			if IsVendorPrefixed(strings.TrimPrefix(it.AtRule.Name, "@")) {
				stats.AtRules++
				continue
			}
			hadContent := !it.AtRule.Empty()
			it.AtRule.Declarations = removeVendorDeclarations(it.AtRule.Declarations, stats)
			it.AtRule.Items = removeVendorItems(it.AtRule.Items, stats)
			if hadContent && it.AtRule.Empty() && it.AtRule.IsGrouping() {
				stats.AtRules++
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func vendorRule(r *Rule) bool {
	for _, sel := range r.Selectors {
		if HasVendorSelector(sel) {
			return true
		}
	}
	return false
}

func removeVendorDeclarations(decls []Declaration, stats *VendorStats) []Declaration {
	out := decls[:0]
	for _, d := range decls {
		if d.IsCustom() {
			// custom property values are opaque
			out = append(out, d)
			continue
		}
		if IsVendorPrefixed(d.Property) || vendorValueRegex.MatchString(d.Value) {
			stats.Declarations++
			continue
		}
		out = append(out, d)
	}
	return out
}
