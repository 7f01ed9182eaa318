package community

import (
	"slices"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
)

// Metrics describes the coupling of one community with the rest of the graph.
type Metrics struct {
	Name                   string   `json:"name"`
	Files                  int      `json:"files"`
	OuterConnections       int      `json:"outerConnections"`
	OuterImports           int      `json:"outerImports"`
	OuterExports           int      `json:"outerExports"`
	MaxOuterImportsOneFile int      `json:"maxOuterImportsOneFile"`
	MaxOuterExportsOneFile int      `json:"maxOuterExportsOneFile"`
	FilesWithOuterImports  []string `json:"filesWithOuterImports"`
	FilesWithOuterExports  []string `json:"filesWithOuterExports"`
}

// Summary aggregates Metrics over all communities.
type Summary struct {
	Communities            int `json:"communities"`
	OuterConnections       int `json:"outerConnections"`
	OuterImports           int `json:"outerImports"`
	OuterExports           int `json:"outerExports"`
	MaxOuterImportsOneFile int `json:"maxOuterImportsOneFile"`
	MaxOuterExportsOneFile int `json:"maxOuterExportsOneFile"`
}

// Report holds per-community metrics in community order, plus the summary.
type Report struct {
	Communities []Metrics `json:"communities"`
	Summary     Summary   `json:"summary"`
}

// Calculate measures every community against the graph's edges. An edge is
// outer when its endpoints belong to different communities; targets outside
// every community count as outer imports only.
func Calculate(communities Communities, g *depgraph.Graph) Report {
	owner := communities.Lookup()
	fileExports := OuterExports(communities, g)
	adjacency := g.AdjacencyList()

	metrics := make([]Metrics, len(communities))
	index := make(map[string]int, len(communities))
	for i, community := range communities {
		index[community.Name] = i
		metrics[i] = Metrics{
			Name:                  community.Name,
			Files:                 len(community.Modules),
			FilesWithOuterImports: []string{},
			FilesWithOuterExports: []string{},
		}
	}

	for i, community := range communities {
		for _, module := range community.Modules {
			importsInFile := 0
			for _, dependency := range adjacency[module] {
				target, grouped := owner[dependency]
				if grouped && target == community.Name {
					continue
				}

				metrics[i].OuterImports++
				importsInFile++
				if !slices.Contains(metrics[i].FilesWithOuterImports, module) {
					metrics[i].FilesWithOuterImports = append(metrics[i].FilesWithOuterImports, module)
				}
				if !grouped {
					continue
				}

				t := &metrics[index[target]]
				t.OuterExports++
				if !slices.Contains(t.FilesWithOuterExports, dependency) {
					t.FilesWithOuterExports = append(t.FilesWithOuterExports, dependency)
				}
			}

			metrics[i].MaxOuterImportsOneFile = max(metrics[i].MaxOuterImportsOneFile, importsInFile)
			metrics[i].MaxOuterExportsOneFile = max(metrics[i].MaxOuterExportsOneFile, fileExports[module])
		}
	}

	summary := Summary{Communities: len(communities)}
	for i := range metrics {
		m := &metrics[i]
		m.OuterConnections = m.OuterImports + m.OuterExports

		summary.OuterImports += m.OuterImports
		summary.OuterExports += m.OuterExports
		summary.OuterConnections += m.OuterConnections
		summary.MaxOuterImportsOneFile = max(summary.MaxOuterImportsOneFile, m.MaxOuterImportsOneFile)
		summary.MaxOuterExportsOneFile = max(summary.MaxOuterExportsOneFile, m.MaxOuterExportsOneFile)
	}

	return Report{Communities: metrics, Summary: summary}
}
