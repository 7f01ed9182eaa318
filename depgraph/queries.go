package depgraph

import (
	"slices"
)

// Orphans returns modules that no other module imports and that are not
// entry points, in insertion order. A self-import does not count.
func Orphans(g *Graph) []string {
	var orphans []string
	for _, path := range g.order {
		if g.entryPoints[path] {
			continue
		}
		if !slices.ContainsFunc(g.in[path], func(from string) bool { return from != path }) {
			orphans = append(orphans, path)
		}
	}
	return orphans
}

// Leaves returns modules without outgoing edges, in insertion order.
func Leaves(g *Graph) []string {
	var leaves []string
	for _, path := range g.order {
		if len(g.out[path]) == 0 {
			leaves = append(leaves, path)
		}
	}
	return leaves
}

// Dependents returns the direct reverse neighbours of a module in edge order.
// A self-importing module is listed as its own dependent, mirroring
// Dependencies.
func Dependents(g *Graph, module string) ([]string, error) {
	path, err := g.lookup(module)
	if err != nil {
		return nil, err
	}
	return slices.Clone(g.in[path]), nil
}

// Dependencies returns the direct dependencies of a module in edge order.
func Dependencies(g *Graph, module string) ([]string, error) {
	path, err := g.lookup(module)
	if err != nil {
		return nil, err
	}
	return slices.Clone(g.out[path]), nil
}

// DepthOption configures DepthFrom.
type DepthOption func(*depthOptions)

type depthOptions struct {
	tolerant bool
}

// CycleTolerant makes DepthFrom succeed on cyclic subgraphs. A path stops at
// its first revisit of a module already on it; the revisiting edge is not
// counted.
func CycleTolerant() DepthOption {
	return func(o *depthOptions) {
		o.tolerant = true
	}
}

// DepthFrom returns the length of the longest path following outgoing edges
// from module. Without CycleTolerant it fails with *CycleError when a cycle is
// reachable from module, including cycles the module itself is not part of,
// since the longest path is undefined there.
func DepthFrom(g *Graph, module string, opts ...DepthOption) (int, error) {
	path, err := g.lookup(module)
	if err != nil {
		return 0, err
	}

	var o depthOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.tolerant {
		return g.tolerantDepth(path), nil
	}
	return g.strictDepth(path)
}

const (
	unvisited = iota
	inProgress
	done
)

func (g *Graph) strictDepth(root string) (int, error) {
	state := make(map[string]int)
	depth := make(map[string]int)
	var stack []string

	var visit func(path string) (int, error)
	visit = func(path string) (int, error) {
		state[path] = inProgress
		stack = append(stack, path)

		best := 0
		for _, next := range g.out[path] {
			var d int
			switch state[next] {
			case inProgress:
				at := slices.Index(stack, next)
				cycle := append(slices.Clone(stack[at:]), next)
				return 0, &CycleError{Module: root, Cycle: cycle}
			case done:
				d = depth[next]
			default:
				var err error
				if d, err = visit(next); err != nil {
					return 0, err
				}
			}
			best = max(best, d+1)
		}

		stack = stack[:len(stack)-1]
		state[path] = done
		depth[path] = best
		return best, nil
	}

	return visit(root)
}

// tolerantDepth explores simple paths. Modules on no cycle cannot reach any
// module on the current path, so their depth is path-independent and memoized.
func (g *Graph) tolerantDepth(root string) int {
	cyclic := g.cyclicModules()
	memo := make(map[string]int)
	onPath := make(map[string]bool)

	var visit func(path string) int
	visit = func(path string) int {
		if d, ok := memo[path]; ok {
			return d
		}

		onPath[path] = true
		best := 0
		for _, next := range g.out[path] {
			if onPath[next] {
				continue
			}
			best = max(best, visit(next)+1)
		}
		onPath[path] = false

		if !cyclic[path] {
			memo[path] = best
		}
		return best
	}

	return visit(root)
}
