package depgraph

// Snapshot is the serializable form of a graph.
type Snapshot struct {
	Modules     map[string][]string           `json:"modules"`
	Cycles      [][]string                    `json:"cycles"`
	Unresolved  map[string][]UnresolvedImport `json:"unresolved,omitempty"`
	Orphans     []string                      `json:"orphans"`
	EntryPoints []string                      `json:"entryPoints,omitempty"`
}

// UnresolvedImport is a specifier that did not resolve, with its kind
// ("external" or "missing").
type UnresolvedImport struct {
	Specifier string `json:"specifier"`
	Kind      string `json:"kind"`
}

// Snapshot captures the graph, its cycles and annotations for encoding.
func (g *Graph) Snapshot() Snapshot {
	cycles := FindCycles(g)
	cyclePaths := make([][]string, 0, len(cycles))
	for _, cycle := range cycles {
		cyclePaths = append(cyclePaths, append([]string(nil), cycle.Path...))
	}

	unresolved := make(map[string][]UnresolvedImport)
	for _, path := range g.order {
		for _, failure := range g.modules[path].Unresolved {
			unresolved[path] = append(unresolved[path], UnresolvedImport{
				Specifier: failure.Specifier,
				Kind:      failure.Kind.String(),
			})
		}
	}

	orphans := Orphans(g)
	if orphans == nil {
		orphans = []string{}
	}

	return Snapshot{
		Modules:     g.AdjacencyList(),
		Cycles:      cyclePaths,
		Unresolved:  unresolved,
		Orphans:     orphans,
		EntryPoints: g.EntryPoints(),
	}
}
