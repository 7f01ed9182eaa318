package depgraph

import "github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"

// FindPathNodes returns every module on a directed path between any pair of
// target modules, in either direction, in insertion order. Targets are always
// included; targets that are not modules of the graph are skipped.
func FindPathNodes(g *Graph, targets []string) []string {
	var validTargets []string
	for _, target := range targets {
		canonical := langsupport.CanonicalPath(target)
		if g.HasModule(canonical) {
			validTargets = append(validTargets, canonical)
		}
	}

	nodesToKeep := make(map[string]bool)
	for _, target := range validTargets {
		nodesToKeep[target] = true
	}

	for i := 0; i < len(validTargets); i++ {
		for j := i + 1; j < len(validTargets); j++ {
			for node := range g.directedPathNodes(validTargets[i], validTargets[j]) {
				nodesToKeep[node] = true
			}
			for node := range g.directedPathNodes(validTargets[j], validTargets[i]) {
				nodesToKeep[node] = true
			}
		}
	}

	var result []string
	for _, path := range g.order {
		if nodesToKeep[path] {
			result = append(result, path)
		}
	}
	return result
}

// Subgraph returns the adjacency list induced by nodes. Edges are kept only
// when both endpoints are in the set.
func Subgraph(g *Graph, nodes []string) map[string][]string {
	keep := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		keep[node] = true
	}

	result := make(map[string][]string, len(nodes))
	for _, node := range nodes {
		deps := []string{}
		for _, dep := range g.out[node] {
			if keep[dep] {
				deps = append(deps, dep)
			}
		}
		result[node] = deps
	}
	return result
}

// directedPathNodes finds the modules reachable from source that can also
// reach target.
func (g *Graph) directedPathNodes(source, target string) map[string]bool {
	result := make(map[string]bool)

	reachableFromSource := bfsReachable(g.out, source)
	canReachTarget := bfsReachable(g.in, target)

	if !reachableFromSource[target] {
		return result
	}
	for node := range reachableFromSource {
		if canReachTarget[node] {
			result[node] = true
		}
	}
	return result
}

// bfsReachable returns all nodes reachable from source.
func bfsReachable(adjacency map[string][]string, source string) map[string]bool {
	reachable := map[string]bool{source: true}

	queue := []string{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range adjacency[current] {
			if !reachable[neighbor] {
				reachable[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return reachable
}
