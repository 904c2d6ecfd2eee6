package tailwind

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed utilities.txt
var utilitiesTable string

type rootSpec struct {
	spacing  bool
	color    bool
	size     bool
	number   bool
	keywords map[string]bool
}

type table struct {
	exact map[string]bool
	roots map[string]*rootSpec
}

func (t *table) root(name string) *rootSpec {
	r, ok := t.roots[name]
	if !ok {
		r = &rootSpec{keywords: make(map[string]bool)}
		t.roots[name] = r
	}
	return r
}

func parseTable(text string) (*table, error) {
	t := &table{
		exact: make(map[string]bool),
		roots: make(map[string]*rootSpec),
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: nothing to define", n)
		}

		directive, names := fields[0], fields[1:]
		switch directive {
		case "exact":
			for _, name := range names {
				t.exact[name] = true
			}
		case "spacing", "color", "size", "number":
			for _, name := range names {
				r := t.root(name)
				switch directive {
				case "spacing":
					r.spacing = true
				case "color":
					r.color = true
				case "size":
					r.size = true
				case "number":
					r.number = true
				}
			}
		case "keyword":
			eq := -1
			for i, f := range names {
				if f == "=" {
					eq = i
					break
				}
			}
			if eq <= 0 || eq == len(names)-1 {
				return nil, fmt.Errorf("line %d: keyword definition must be 'keyword ROOT... = VALUE...'", n)
			}
			for _, name := range names[:eq] {
				r := t.root(name)
				for _, kw := range names[eq+1:] {
					r.keywords[kw] = true
				}
			}
		default:
			return nil, fmt.Errorf("line %d: unknown directive %q", n, directive)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
