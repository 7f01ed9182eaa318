// Package community groups graph modules into communities and measures the
// coupling between them.
package community

import (
	"slices"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
)

const (
	// SharedName is the community receiving widely imported modules.
	SharedName = "Shared"
	// DefaultSharedThreshold is the number of outer exports that makes a module shared.
	DefaultSharedThreshold = 3
	// rootName groups modules at the project root.
	rootName = "."
)

// Community is a named set of modules, in the order they were grouped.
type Community struct {
	Name    string
	Modules []string
}

// Communities is an ordered partition of module paths.
type Communities []Community

// Lookup maps every module to the name of its community.
func (c Communities) Lookup() map[string]string {
	owner := make(map[string]string)
	for _, community := range c {
		for _, module := range community.Modules {
			owner[module] = community.Name
		}
	}
	return owner
}

// GroupByRootDir puts every module into the community named after the first
// segment of its directory. Modules at the root share the community ".".
func GroupByRootDir(paths []string) Communities {
	var communities Communities
	index := make(map[string]int)

	for _, p := range paths {
		name := rootDir(p)
		i, ok := index[name]
		if !ok {
			i = len(communities)
			index[name] = i
			communities = append(communities, Community{Name: name})
		}
		communities[i].Modules = append(communities[i].Modules, p)
	}
	return communities
}

func rootDir(p string) string {
	dir, _, found := strings.Cut(p, "/")
	if !found || dir == "" || dir == "." {
		return rootName
	}
	return dir
}

// OuterExports counts, for every grouped module, the edges reaching it from a
// module of another community.
func OuterExports(communities Communities, g *depgraph.Graph) map[string]int {
	owner := communities.Lookup()
	counts := make(map[string]int, len(owner))
	for module := range owner {
		counts[module] = 0
	}

	for _, edge := range g.Edges() {
		from, ok := owner[edge.From]
		if !ok {
			continue
		}
		if to, grouped := owner[edge.To]; !grouped || to != from {
			counts[edge.To]++
		}
	}
	return counts
}

// MoveSharedModules moves every module with at least threshold outer exports
// into the Shared community, appended last. Communities left empty are dropped.
// A threshold below one uses DefaultSharedThreshold.
func MoveSharedModules(communities Communities, g *depgraph.Graph, threshold int) Communities {
	if threshold < 1 {
		threshold = DefaultSharedThreshold
	}
	exports := OuterExports(communities, g)

	var moved Communities
	var shared []string
	sharedIndex := -1
	for _, community := range communities {
		var kept []string
		for _, module := range community.Modules {
			if exports[module] >= threshold {
				shared = append(shared, module)
				continue
			}
			kept = append(kept, module)
		}
		if len(kept) == 0 {
			continue
		}
		if community.Name == SharedName {
			sharedIndex = len(moved)
		}
		moved = append(moved, Community{Name: community.Name, Modules: kept})
	}

	if len(shared) == 0 {
		return moved
	}
	if sharedIndex >= 0 {
		moved[sharedIndex].Modules = append(moved[sharedIndex].Modules, shared...)
		return moved
	}
	return append(moved, Community{Name: SharedName, Modules: slices.Clip(shared)})
}
