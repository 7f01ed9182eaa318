package community

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
	modularity "gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"
)

// Method selects how modules are grouped into communities.
type Method string

const (
	// MethodDir groups by top-level directory.
	MethodDir Method = "dir"
	// MethodLouvain groups by Louvain modularity optimization.
	MethodLouvain Method = "louvain"
	// MethodGreedy groups by Clauset-Newman-Moore greedy modularity merging.
	MethodGreedy Method = "greedy"

	// DefaultResolution favors smaller communities than plain modularity.
	DefaultResolution = 1.5

	// greedyCommunitySize sets the greedy merge floor at one community per
	// this many modules.
	greedyCommunitySize = 30
	louvainSeed         = 1
)

// Methods lists the supported grouping methods.
func Methods() []Method {
	return []Method{MethodDir, MethodLouvain, MethodGreedy}
}

// ParseMethod returns the method named s.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Methods(), m) {
		return m, nil
	}
	return "", fmt.Errorf("unknown community method: %s (valid options: dir, louvain, greedy)", s)
}

// Detect groups every module of g using method. resolution applies to the
// modularity methods; values at or below zero use DefaultResolution.
func Detect(g *depgraph.Graph, method Method, resolution float64) (Communities, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	switch method {
	case MethodDir, "":
		return GroupByRootDir(g.ModulePaths()), nil
	case MethodLouvain:
		return Louvain(g, resolution), nil
	case MethodGreedy:
		return GreedyModularity(g, resolution), nil
	default:
		return nil, fmt.Errorf("unknown community method: %s", method)
	}
}

// undirected is g with edge direction dropped. Self-imports and reciprocal
// imports collapse, so every pair appears once with u < v.
type undirected struct {
	paths []string
	edges [][2]int
}

func toUndirected(g *depgraph.Graph) undirected {
	paths := g.ModulePaths()
	index := make(map[string]int, len(paths))
	for i, p := range paths {
		index[p] = i
	}

	seen := make(map[[2]int]bool)
	var edges [][2]int
	for _, edge := range g.Edges() {
		u, okFrom := index[edge.From]
		v, okTo := index[edge.To]
		if !okFrom || !okTo || u == v {
			continue
		}
		pair := [2]int{min(u, v), max(u, v)}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		edges = append(edges, pair)
	}
	return undirected{paths: paths, edges: edges}
}

// Louvain partitions g with the Louvain method at the given resolution. The
// random source is seeded so the same graph always yields the same grouping.
func Louvain(g *depgraph.Graph, resolution float64) Communities {
	u := toUndirected(g)
	if len(u.edges) == 0 {
		return u.singletons()
	}

	ug := simple.NewUndirectedGraph()
	for i := range u.paths {
		ug.AddNode(simple.Node(i))
	}
	for _, e := range u.edges {
		ug.SetEdge(ug.NewEdge(simple.Node(e[0]), simple.Node(e[1])))
	}

	reduced := modularity.Modularize(ug, resolution, rand.NewPCG(louvainSeed, louvainSeed))
	var members [][]int
	for _, nodes := range reduced.Communities() {
		ids := make([]int, 0, len(nodes))
		for _, n := range nodes {
			ids = append(ids, int(n.ID()))
		}
		members = append(members, ids)
	}
	return u.named(members)
}

// GreedyModularity partitions g by repeatedly merging the pair of connected
// communities with the largest modularity gain. Merging stops when no merge
// gains, or when one community per greedyCommunitySize modules remains.
// Ties go to the pair with the lowest module order.
func GreedyModularity(g *depgraph.Graph, resolution float64) Communities {
	u := toUndirected(g)
	n := len(u.paths)
	if len(u.edges) == 0 {
		return u.singletons()
	}

	members := make([][]int, n)
	links := make([]map[int]float64, n)
	degree := make([]float64, n)
	for i := range n {
		members[i] = []int{i}
		links[i] = make(map[int]float64)
	}
	for _, e := range u.edges {
		links[e[0]][e[1]]++
		links[e[1]][e[0]]++
		degree[e[0]]++
		degree[e[1]]++
	}

	m2 := 2 * float64(len(u.edges))
	floor := max(1, int(math.Ceil(float64(n)/greedyCommunitySize)))
	gain := func(i, j int) float64 {
		return 2 * (links[i][j]/m2 - resolution*(degree[i]/m2)*(degree[j]/m2))
	}

	for alive := n; alive > floor; alive-- {
		bestI, bestJ, best := -1, -1, math.Inf(-1)
		for i := range n {
			for j := range links[i] {
				if j <= i {
					continue
				}
				dq := gain(i, j)
				if dq > best || (dq == best && (i < bestI || (i == bestI && j < bestJ))) {
					bestI, bestJ, best = i, j, dq
				}
			}
		}
		if bestI < 0 || best < 0 {
			break
		}

		members[bestI] = append(members[bestI], members[bestJ]...)
		members[bestJ] = nil
		degree[bestI] += degree[bestJ]
		for k, w := range links[bestJ] {
			delete(links[k], bestJ)
			if k == bestI {
				continue
			}
			links[bestI][k] += w
			links[k][bestI] += w
		}
		links[bestJ] = nil
	}

	return u.named(members)
}

func (u undirected) singletons() Communities {
	members := make([][]int, len(u.paths))
	for i := range u.paths {
		members[i] = []int{i}
	}
	return u.named(members)
}

// named orders members by module order, orders communities by their first
// module and numbers them from zero.
func (u undirected) named(members [][]int) Communities {
	var groups [][]int
	for _, ids := range members {
		if len(ids) == 0 {
			continue
		}
		ids = slices.Clone(ids)
		slices.Sort(ids)
		groups = append(groups, ids)
	}
	slices.SortFunc(groups, func(a, b []int) int { return a[0] - b[0] })

	communities := make(Communities, 0, len(groups))
	for i, ids := range groups {
		modules := make([]string, 0, len(ids))
		for _, id := range ids {
			modules = append(modules, u.paths[id])
		}
		communities = append(communities, Community{Name: strconv.Itoa(i), Modules: modules})
	}
	return communities
}
