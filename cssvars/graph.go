package cssvars

// Graph maps a custom property to the custom properties its value refers to.
// Declarations without var() references have no entry.
type Graph map[string]Set

// BuildGraph derives dependency edges from declaration values. Cycles,
// including self references, are kept as is.
func BuildGraph(decls map[string]Declaration) Graph {
	g := make(Graph)
	for name, decl := range decls {
		refs := references(decl.Value)
		if len(refs) == 0 {
			continue
		}
		g[name] = NewSet(refs...)
	}
	return g
}

// Dependencies returns direct dependencies of name, nil when there are none.
func (g Graph) Dependencies(name string) Set {
	return g[name]
}
