package depgraph_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDependencyGraph(t *testing.T) {
	imports := depgraph.ImportMap{
		{Path: "src/main.js", Specifiers: []string{"src/api.js", "ext:react", "src/models/user.js"}},
		{Path: "src/api.js", Specifiers: []string{"src/models/user.js"}},
		{Path: "src/models/user.js"},
	}

	graph := buildGraph(t, imports)

	assert.Equal(t, 3, graph.Len())
	assert.Equal(t, []string{"src/main.js", "src/api.js", "src/models/user.js"}, graph.ModulePaths())
	assert.Equal(t, []depgraph.Edge{
		{From: "src/main.js", To: "src/api.js"},
		{From: "src/main.js", To: "src/models/user.js"},
		{From: "src/api.js", To: "src/models/user.js"},
	}, graph.Edges())

	main, ok := graph.Module("src/main.js")
	require.True(t, ok)
	assert.Equal(t, depgraph.KindAnalyzed, main.Kind)
	assert.Equal(t, []string{"src/api.js", "ext:react", "src/models/user.js"}, main.Specifiers)
	require.Len(t, main.Imports, 3)
	require.Len(t, main.Unresolved, 1)
	assert.Equal(t, "ext:react", main.Unresolved[0].Specifier)
	assert.Equal(t, langsupport.StatusExternal, main.Unresolved[0].Kind)
}

func TestBuildDependencyGraph_EmptyImportMap(t *testing.T) {
	graph := buildGraph(t, depgraph.ImportMap{})

	assert.Zero(t, graph.Len())
	assert.Empty(t, graph.Edges())
	assert.Empty(t, depgraph.FindCycles(graph))
}

func TestBuildDependencyGraph_ModuleSetIsSupersetOfInputKeys(t *testing.T) {
	imports := depgraph.ImportMap{
		{Path: "a.js", Specifiers: []string{"b.js", "lib/c.js"}},
		{Path: "b.js", Specifiers: []string{"missing:./gone"}},
	}

	graph := buildGraph(t, imports)

	for _, path := range imports.Paths() {
		assert.True(t, graph.HasModule(path), "missing input module %s", path)
	}
	assert.True(t, graph.HasModule("lib/c.js"))
}

func TestBuildDependencyGraph_ResolvedTargetsBecomeLeafModules(t *testing.T) {
	imports := depgraph.ImportMap{
		{Path: "src/a.js", Specifiers: []string{"src/b.js", "vendor/lib.js"}},
	}

	graph := buildGraph(t, imports, depgraph.WithScope("src/**"))

	b, ok := graph.Module("src/b.js")
	require.True(t, ok)
	assert.Equal(t, depgraph.KindLeaf, b.Kind)

	lib, ok := graph.Module("vendor/lib.js")
	require.True(t, ok)
	assert.Equal(t, depgraph.KindUnanalyzed, lib.Kind)

	deps, err := depgraph.Dependencies(graph, "vendor/lib.js")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestBuildDependencyGraph_CollapsesDuplicateEdges(t *testing.T) {
	imports := depgraph.ImportMap{
		{Path: "a.js", Specifiers: []string{"b.js", "b.js", "b.js"}},
		{Path: "b.js"},
	}

	graph := buildGraph(t, imports)

	assert.Len(t, graph.Edges(), 1)
	a, _ := graph.Module("a.js")
	assert.Len(t, a.Imports, 3, "every specifier keeps its resolution")
}

func TestBuildDependencyGraph_CanonicalizesPaths(t *testing.T) {
	imports := depgraph.ImportMap{
		{Path: "./src/a.js", Specifiers: []string{"src/lib/../b.js"}},
		{Path: "src/b.js"},
	}

	graph := buildGraph(t, imports)

	assert.Equal(t, []string{"src/a.js", "src/b.js"}, graph.ModulePaths())
	assert.Equal(t, []depgraph.Edge{{From: "src/a.js", To: "src/b.js"}}, graph.Edges())
}

func TestBuildDependencyGraph_IsDeterministic(t *testing.T) {
	imports := depgraph.ImportMap{
		{Path: "a.js", Specifiers: []string{"c.js", "b.js", "ext:x"}},
		{Path: "b.js", Specifiers: []string{"d.js", "a.js"}},
		{Path: "c.js", Specifiers: []string{"d.js"}},
		{Path: "e.js", Specifiers: []string{"f.js", "missing:./z"}},
	}

	first := buildGraph(t, imports, depgraph.WithWorkers(8))
	for range 20 {
		again := buildGraph(t, imports, depgraph.WithWorkers(8))
		assert.Equal(t, first.ModulePaths(), again.ModulePaths())
		assert.Equal(t, first.Edges(), again.Edges())
		assert.Equal(t, first.Snapshot(), again.Snapshot())
	}
}

func TestBuildDependencyGraph_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		imports depgraph.ImportMap
		module  string
	}{
		{
			name: "duplicate module",
			imports: depgraph.ImportMap{
				{Path: "a.js"},
				{Path: "a.js"},
			},
			module: "a.js",
		},
		{
			name: "duplicate after canonicalization",
			imports: depgraph.ImportMap{
				{Path: "src/a.js"},
				{Path: "./src/a.js"},
			},
			module: "src/a.js",
		},
		{
			name: "empty specifier",
			imports: depgraph.ImportMap{
				{Path: "a.js", Specifiers: []string{"b.js", ""}},
			},
			module: "a.js",
		},
		{
			name:    "empty path",
			imports: depgraph.ImportMap{{Path: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			resolver := langsupport.ResolverFunc(func(specifier, from string) (langsupport.Resolution, error) {
				calls.Add(1)
				return literalResolver.Resolve(specifier, from)
			})

			graph, err := depgraph.BuildDependencyGraph(context.Background(), tt.imports, resolver)

			require.Error(t, err)
			assert.Nil(t, graph)
			var invalid *depgraph.InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.module, invalid.Module)
			assert.Zero(t, calls.Load(), "nothing is resolved for invalid input")
		})
	}
}

func TestBuildDependencyGraph_UnknownEntryPoint(t *testing.T) {
	_, err := depgraph.BuildDependencyGraph(context.Background(),
		chain("a.js", "b.js"), literalResolver, depgraph.WithEntryPoints("z.js"))

	var invalid *depgraph.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "z.js", invalid.Module)
}

func TestBuildDependencyGraph_InvalidScopePattern(t *testing.T) {
	_, err := depgraph.BuildDependencyGraph(context.Background(),
		chain("a.js"), literalResolver, depgraph.WithScope("src/[a-"))

	var invalid *depgraph.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestBuildDependencyGraph_NilResolver(t *testing.T) {
	_, err := depgraph.BuildDependencyGraph(context.Background(), chain("a.js"), nil)

	require.Error(t, err)
}

func TestBuildDependencyGraph_ResolverErrorAbortsBuild(t *testing.T) {
	boom := errors.New("boom")
	resolver := langsupport.ResolverFunc(func(string, string) (langsupport.Resolution, error) {
		return langsupport.Resolution{}, boom
	})

	graph, err := depgraph.BuildDependencyGraph(context.Background(), chain("a.js", "b.js"), resolver)

	require.ErrorIs(t, err, boom)
	assert.Nil(t, graph)
}

func TestBuildDependencyGraph_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	graph, err := depgraph.BuildDependencyGraph(ctx, chain("a.js", "b.js"), literalResolver)

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, graph)
}

func TestBuildDependencyGraph_ResolvesModulesConcurrently(t *testing.T) {
	var inFlight, peak atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{}, 4)

	resolver := langsupport.ResolverFunc(func(specifier, from string) (langsupport.Resolution, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		started <- struct{}{}
		<-release
		inFlight.Add(-1)
		return literalResolver.Resolve(specifier, from)
	})

	imports := depgraph.ImportMap{
		{Path: "a.js", Specifiers: []string{"x.js"}},
		{Path: "b.js", Specifiers: []string{"x.js"}},
		{Path: "c.js", Specifiers: []string{"x.js"}},
		{Path: "d.js", Specifiers: []string{"x.js"}},
	}

	done := make(chan *depgraph.Graph)
	go func() {
		graph, err := depgraph.BuildDependencyGraph(context.Background(), imports, resolver, depgraph.WithWorkers(4))
		assert.NoError(t, err)
		done <- graph
	}()

	for range 4 {
		<-started
	}
	close(release)
	graph := <-done

	assert.Equal(t, int32(4), peak.Load())
	require.NotNil(t, graph)
	assert.Equal(t, []string{"a.js", "b.js", "c.js", "d.js", "x.js"}, graph.ModulePaths())
}

func TestGraph_ReturnsCopies(t *testing.T) {
	graph := buildGraph(t, chain("a.js", "b.js"))

	a, _ := graph.Module("a.js")
	a.Specifiers[0] = "mutated"
	paths := graph.ModulePaths()
	paths[0] = "mutated"
	adjacency := graph.AdjacencyList()
	adjacency["a.js"][0] = "mutated"

	again, _ := graph.Module("a.js")
	assert.Equal(t, []string{"b.js"}, again.Specifiers)
	assert.Equal(t, []string{"a.js", "b.js"}, graph.ModulePaths())
	assert.Equal(t, []string{"b.js"}, graph.AdjacencyList()["a.js"])
}
