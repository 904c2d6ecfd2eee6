package css

import (
	"strings"
)

const indentUnit = "  "

// String writes stylesheet back in readable form: one selector and one
// declaration per line, two spaces indentation.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	writeItems(&sb, s.Items, 0)
	return sb.String()
}

func writeItems(sb *strings.Builder, items []Item, depth int) {
	for _, it := range items {
		switch {
		case it.Rule != nil:
			writeRule(sb, it.Rule, depth)
		case it.AtRule != nil:
			writeAtRule(sb, it.AtRule, depth)
		}
	}
}

func writeRule(sb *strings.Builder, r *Rule, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	for i, sel := range r.Selectors {
		sb.WriteString(indent)
		sb.WriteString(sel)
		if i < len(r.Selectors)-1 {
			sb.WriteString(",\n")
		}
	}
	sb.WriteString(" {\n")
	writeDeclarations(sb, r.Declarations, depth+1)
	sb.WriteString(indent)
	sb.WriteString("}\n")
}

func writeAtRule(sb *strings.Builder, a *AtRule, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	sb.WriteString(indent)
	sb.WriteString(a.Name)
	if len(a.Prelude) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(a.Prelude)
	}
	if !a.Block {
		sb.WriteString(";\n")
		return
	}
	sb.WriteString(" {\n")
	writeDeclarations(sb, a.Declarations, depth+1)
	writeItems(sb, a.Items, depth+1)
	sb.WriteString(indent)
	sb.WriteString("}\n")
}

func writeDeclarations(sb *strings.Builder, decls []Declaration, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	for _, d := range decls {
		sb.WriteString(indent)
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		sb.WriteString(";\n")
	}
}
