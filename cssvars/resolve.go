package cssvars

// Resolve returns names transitively required by direct: every directly used
// name plus everything reachable from it in g.
//
// Names are marked before they are queued so each one is visited once and
// cycles terminate.
func Resolve(direct Set, g Graph) Set {
	visited := make(Set, direct.Len())
	queue := make([]string, 0, direct.Len())
	for name := range direct {
		visited.Add(name)
		queue = append(queue, name)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for dep := range g.Dependencies(current) {
			if !visited.Has(dep) {
				visited.Add(dep)
				queue = append(queue, dep)
			}
		}
	}
	return visited
}
