package purge

import (
	"strings"
)

// Pseudo-classes which depend on document structure only and are understood
// by the matcher. Everything else (dynamic states, pseudo-elements, vendor
// extensions) is removed from selector before matching, which can only make
// selector broader.
var structuralPseudo = map[string]bool{
	"not":              true,
	"is":               true,
	"where":            true,
	"has":              true,
	"nth-child":        true,
	"nth-last-child":   true,
	"nth-of-type":      true,
	"nth-last-of-type": true,
	"first-child":      true,
	"last-child":       true,
	"only-child":       true,
	"first-of-type":    true,
	"last-of-type":     true,
	"only-of-type":     true,
	"empty":            true,
	"root":             true,
	"lang":             true,
}

// matchable rewrites selector so it can be tested against static document.
// Returns false when this cannot be done without narrowing the selector,
// which happens when something has to be removed inside of negation.
func matchable(sel string) (string, bool) {
	st := &stripper{}
	st.sb.Grow(len(sel))
	st.strip(sel, false)
	if st.unsafe {
		return "", false
	}
	return strings.TrimSpace(st.sb.String()), true
}

type stripper struct {
	sb     strings.Builder
	unsafe bool
}

func (st *stripper) atCompoundStart() bool {
	s := st.sb.String()
	if len(s) == 0 {
		return true
	}
	return strings.IndexByte(" >+~(,", s[len(s)-1]) >= 0
}

func (st *stripper) strip(sel string, negated bool) {
	sb := &st.sb
	for i := 0; i < len(sel); i++ {
		c := sel[i]
		switch c {
		case '\\':
			// escaped character is a part of identifier (.md\:flex)
			sb.WriteByte(c)
			if i+1 < len(sel) {
				i++
				sb.WriteByte(sel[i])
			}
		case '"', '\'':
			end := skipString(sel, i)
			sb.WriteString(sel[i:end])
			i = end - 1
		case '[':
			end := skipBalanced(sel, i, '[', ']')
			sb.WriteString(sel[i:end])
			i = end - 1
		case ':':
			elem := i+1 < len(sel) && sel[i+1] == ':'
			start := i + 1
			if elem {
				start++
			}
			nameEnd := start
			for nameEnd < len(sel) && isNameByte(sel[nameEnd]) {
				nameEnd++
			}
			name := strings.ToLower(sel[start:nameEnd])
			end := nameEnd
			hasArgs := end < len(sel) && sel[end] == '('
			if hasArgs {
				end = skipBalanced(sel, end, '(', ')')
			}

			if !elem && structuralPseudo[name] {
				sb.WriteByte(':')
				sb.WriteString(sel[start:nameEnd])
				if hasArgs {
					sb.WriteByte('(')
					st.strip(sel[nameEnd+1:max(nameEnd+1, end-1)], negated || name == "not")
					sb.WriteByte(')')
				}
			} else {
				if negated {
					st.unsafe = true
				}
				if st.atCompoundStart() && !strings.HasSuffix(sb.String(), "*") {
					sb.WriteByte('*')
				}
			}
			i = end - 1
		default:
			sb.WriteByte(c)
		}
	}
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// skipString returns position right after string literal started at i.
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return len(s)
}

// skipBalanced returns position right after bracket closing the one at i.
func skipBalanced(s string, i int, open, close byte) int {
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"', '\'':
			j = skipString(s, j) - 1
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return len(s)
}
