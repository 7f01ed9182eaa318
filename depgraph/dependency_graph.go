package depgraph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
	graphlib "github.com/dominikbraun/graph"
)

// ModuleKind tells how a module entered the graph.
type ModuleKind int

const (
	// KindAnalyzed modules were supplied as input with their imports.
	KindAnalyzed ModuleKind = iota
	// KindLeaf modules were reached by a resolution inside the project scope
	// but were not analyzed, so they have no outgoing edges.
	KindLeaf
	// KindUnanalyzed modules were reached by a resolution outside the project scope.
	KindUnanalyzed
)

func (k ModuleKind) String() string {
	switch k {
	case KindAnalyzed:
		return "analyzed"
	case KindLeaf:
		return "leaf"
	case KindUnanalyzed:
		return "unanalyzed"
	default:
		return "unknown"
	}
}

// Module is a node of the dependency graph.
type Module struct {
	Path string
	Kind ModuleKind
	// Specifiers are the raw import specifiers as written.
	Specifiers []string
	// Imports holds one resolution per specifier, in the same order.
	Imports []langsupport.Resolution
	// Unresolved lists every specifier that did not resolve.
	Unresolved []*ResolutionError
}

func (m *Module) clone() Module {
	return Module{
		Path:       m.Path,
		Kind:       m.Kind,
		Specifiers: slices.Clone(m.Specifiers),
		Imports:    slices.Clone(m.Imports),
		Unresolved: slices.Clone(m.Unresolved),
	}
}

// Edge is a directed "depends on" relation between two modules.
type Edge struct {
	From string
	To   string
}

// Graph is an immutable module dependency graph. It is safe for concurrent
// reads; nothing mutates it after BuildDependencyGraph returns.
type Graph struct {
	store       graphlib.Graph[string, string]
	modules     map[string]*Module
	order       []string
	index       map[string]int
	out         map[string][]string
	in          map[string][]string
	edges       []Edge
	entryPoints map[string]bool
}

func newGraph() *Graph {
	return &Graph{
		store:       graphlib.New(graphlib.StringHash, graphlib.Directed()),
		modules:     make(map[string]*Module),
		index:       make(map[string]int),
		out:         make(map[string][]string),
		in:          make(map[string][]string),
		entryPoints: make(map[string]bool),
	}
}

func (g *Graph) addModule(m *Module) error {
	if err := g.store.AddVertex(m.Path); err != nil {
		return fmt.Errorf("add module %s: %w", m.Path, err)
	}
	g.modules[m.Path] = m
	g.index[m.Path] = len(g.order)
	g.order = append(g.order, m.Path)
	return nil
}

func (g *Graph) addEdge(from, to string) error {
	err := g.store.AddEdge(from, to)
	if errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("add edge %s -> %s: %w", from, to, err)
	}

	g.out[from] = append(g.out[from], to)
	g.in[to] = append(g.in[to], from)
	g.edges = append(g.edges, Edge{From: from, To: to})
	return nil
}

// Len returns the number of modules.
func (g *Graph) Len() int {
	return len(g.order)
}

// HasModule reports whether path names a module of the graph.
func (g *Graph) HasModule(path string) bool {
	_, ok := g.modules[langsupport.CanonicalPath(path)]
	return ok
}

// Module returns a copy of the named module.
func (g *Graph) Module(path string) (Module, bool) {
	m, ok := g.modules[langsupport.CanonicalPath(path)]
	if !ok {
		return Module{}, false
	}
	return m.clone(), true
}

// Modules returns copies of every module in insertion order.
func (g *Graph) Modules() []Module {
	out := make([]Module, 0, len(g.order))
	for _, path := range g.order {
		out = append(out, g.modules[path].clone())
	}
	return out
}

// ModulePaths returns module paths in insertion order.
func (g *Graph) ModulePaths() []string {
	return slices.Clone(g.order)
}

// Edges returns every edge in insertion order.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// EntryPoints returns the designated entry points in insertion order.
func (g *Graph) EntryPoints() []string {
	var out []string
	for _, path := range g.order {
		if g.entryPoints[path] {
			out = append(out, path)
		}
	}
	return out
}

// IsEntryPoint reports whether the module was designated as a root.
func (g *Graph) IsEntryPoint(path string) bool {
	return g.entryPoints[langsupport.CanonicalPath(path)]
}

// AdjacencyList returns a mapping from module path to dependency paths.
func (g *Graph) AdjacencyList() map[string][]string {
	adjacency := make(map[string][]string, len(g.order))
	for _, path := range g.order {
		adjacency[path] = append([]string{}, g.out[path]...)
	}
	return adjacency
}

func (g *Graph) hasSelfLoop(path string) bool {
	return slices.Contains(g.out[path], path)
}

func (g *Graph) lookup(path string) (string, error) {
	canonical := langsupport.CanonicalPath(path)
	if _, ok := g.modules[canonical]; !ok {
		return "", fmt.Errorf("%w: %s", ErrModuleNotFound, path)
	}
	return canonical, nil
}
