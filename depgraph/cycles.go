package depgraph

import (
	"slices"
	"sort"
	"strings"

	graphlib "github.com/dominikbraun/graph"
)

// Cycle is an elementary dependency cycle. Path starts and ends with the same
// module. A self-loop is a single-element Path with SelfLoop set.
type Cycle struct {
	Path     []string
	SelfLoop bool
}

// Modules returns the distinct modules of the cycle in order.
func (c Cycle) Modules() []string {
	if c.SelfLoop {
		return slices.Clone(c.Path)
	}
	return slices.Clone(c.Path[:len(c.Path)-1])
}

func (c Cycle) String() string {
	if c.SelfLoop {
		return c.Path[0] + " -> " + c.Path[0]
	}
	return strings.Join(c.Path, " -> ")
}

// FindCycles reports every elementary cycle of the graph exactly once.
//
// Strongly connected components bound the search. Inside a component each
// module, taken in insertion order, starts a depth-first search restricted to
// modules inserted after it; reaching the start module again through an edge
// closes a cycle made of the on-stack slice plus that edge. Every cycle is
// therefore found once, rooted at its earliest-inserted module. Enumerating all
// elementary cycles is exponential in the worst case.
func FindCycles(g *Graph) []Cycle {
	seen := make(map[string]bool)
	var cycles []Cycle

	emit := func(c Cycle) {
		c = g.normalizeCycle(c)
		key := strings.Join(c.Path, "\x00")
		if seen[key] {
			return
		}
		seen[key] = true
		cycles = append(cycles, c)
	}

	for _, component := range g.components() {
		if len(component) == 1 {
			if g.hasSelfLoop(component[0]) {
				emit(Cycle{Path: []string{component[0]}, SelfLoop: true})
			}
			continue
		}

		members := make(map[string]bool, len(component))
		for _, path := range component {
			members[path] = true
		}

		for _, start := range component {
			g.cyclesThrough(start, members, emit)
		}
	}

	sort.SliceStable(cycles, func(i, j int) bool {
		return g.lessPath(cycles[i].Path, cycles[j].Path)
	})
	return cycles
}

func (g *Graph) cyclesThrough(start string, members map[string]bool, emit func(Cycle)) {
	startIndex := g.index[start]
	onStack := map[string]bool{start: true}
	stack := []string{start}

	var visit func(current string)
	visit = func(current string) {
		for _, next := range g.out[current] {
			if !members[next] || g.index[next] < startIndex {
				continue
			}
			if next == start {
				if len(stack) == 1 {
					emit(Cycle{Path: []string{start}, SelfLoop: true})
					continue
				}
				path := append(slices.Clone(stack), start)
				emit(Cycle{Path: path})
				continue
			}
			if onStack[next] {
				continue
			}

			onStack[next] = true
			stack = append(stack, next)
			visit(next)
			stack = stack[:len(stack)-1]
			onStack[next] = false
		}
	}

	visit(start)
}

// normalizeCycle rotates a cycle so it starts at its earliest-inserted module.
func (g *Graph) normalizeCycle(c Cycle) Cycle {
	if c.SelfLoop || len(c.Path) < 2 {
		return c
	}

	ring := c.Path[:len(c.Path)-1]
	minAt := 0
	for i, path := range ring {
		if g.index[path] < g.index[ring[minAt]] {
			minAt = i
		}
	}

	rotated := make([]string, 0, len(c.Path))
	rotated = append(rotated, ring[minAt:]...)
	rotated = append(rotated, ring[:minAt]...)
	rotated = append(rotated, ring[minAt])
	return Cycle{Path: rotated}
}

func (g *Graph) lessPath(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return g.index[a[i]] < g.index[b[i]]
		}
	}
	return len(a) < len(b)
}

// components returns strongly connected components with members in insertion
// order. The SCC computation falls back to one component spanning the whole
// graph if the store refuses it, which keeps results correct at higher cost.
func (g *Graph) components() [][]string {
	sccs, err := graphlib.StronglyConnectedComponents(g.store)
	if err != nil {
		if g.Len() == 0 {
			return nil
		}
		sccs = [][]string{g.ModulePaths()}
	}

	for _, component := range sccs {
		sort.Slice(component, func(i, j int) bool {
			return g.index[component[i]] < g.index[component[j]]
		})
	}
	sort.Slice(sccs, func(i, j int) bool {
		return g.index[sccs[i][0]] < g.index[sccs[j][0]]
	})
	return sccs
}

// cyclicModules returns every module that lies on some cycle.
func (g *Graph) cyclicModules() map[string]bool {
	cyclic := make(map[string]bool)
	for _, component := range g.components() {
		if len(component) > 1 {
			for _, path := range component {
				cyclic[path] = true
			}
			continue
		}
		if g.hasSelfLoop(component[0]) {
			cyclic[component[0]] = true
		}
	}
	return cyclic
}
