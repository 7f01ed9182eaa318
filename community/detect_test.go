package community_test

import (
	"context"
	"testing"

	"github.com/LegacyCodeHQ/modgraph/community"
	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoCliques has two fully connected groups of four modules, spread over two
// directories, with a single import bridging the groups.
func twoCliques(t *testing.T) *depgraph.Graph {
	t.Helper()

	graph, err := depgraph.BuildDependencyGraph(context.Background(), depgraph.ImportMap{
		{Path: "src/a1.js", Specifiers: []string{"src/a2.js", "lib/a3.js", "lib/a4.js"}},
		{Path: "src/a2.js", Specifiers: []string{"lib/a3.js", "lib/a4.js"}},
		{Path: "lib/a3.js", Specifiers: []string{"lib/a4.js"}},
		{Path: "lib/a4.js", Specifiers: []string{"src/b1.js"}},
		{Path: "src/b1.js", Specifiers: []string{"src/b2.js", "lib/b3.js", "lib/b4.js"}},
		{Path: "src/b2.js", Specifiers: []string{"lib/b3.js", "lib/b4.js", "src/b1.js"}},
		{Path: "lib/b3.js", Specifiers: []string{"lib/b4.js", "lib/b3.js"}},
		{Path: "lib/b4.js"},
	}, pathResolver)
	require.NoError(t, err)
	return graph
}

var cliqueCommunities = community.Communities{
	{Name: "0", Modules: []string{"src/a1.js", "src/a2.js", "lib/a3.js", "lib/a4.js"}},
	{Name: "1", Modules: []string{"src/b1.js", "src/b2.js", "lib/b3.js", "lib/b4.js"}},
}

func TestLouvain_SplitsLooselyBridgedGroups(t *testing.T) {
	got := community.Louvain(twoCliques(t), community.DefaultResolution)

	assert.Equal(t, cliqueCommunities, got)
}

func TestLouvain_IsDeterministic(t *testing.T) {
	graph := twoCliques(t)

	assert.Equal(t, community.Louvain(graph, community.DefaultResolution), community.Louvain(graph, community.DefaultResolution))
}

func TestGreedyModularity_SplitsLooselyBridgedGroups(t *testing.T) {
	got := community.GreedyModularity(twoCliques(t), community.DefaultResolution)

	assert.Equal(t, cliqueCommunities, got)
}

func TestGreedyModularity_StopsAtCommunityFloor(t *testing.T) {
	// A low resolution makes merging the two groups a gain, and a graph this
	// small has a floor of one community.
	got := community.GreedyModularity(twoCliques(t), 0.1)

	require.Len(t, got, 1)
	assert.Len(t, got[0].Modules, 8)
}

func TestModularityMethods_WithoutImportsGiveSingletons(t *testing.T) {
	graph, err := depgraph.BuildDependencyGraph(context.Background(), depgraph.ImportMap{
		{Path: "a.js"},
		{Path: "b.js"},
	}, pathResolver)
	require.NoError(t, err)

	want := community.Communities{
		{Name: "0", Modules: []string{"a.js"}},
		{Name: "1", Modules: []string{"b.js"}},
	}
	assert.Equal(t, want, community.Louvain(graph, community.DefaultResolution))
	assert.Equal(t, want, community.GreedyModularity(graph, community.DefaultResolution))
}

func TestDetect(t *testing.T) {
	graph := twoCliques(t)

	tests := []struct {
		method community.Method
		want   community.Communities
	}{
		{method: community.MethodDir, want: community.GroupByRootDir(graph.ModulePaths())},
		{method: community.MethodLouvain, want: cliqueCommunities},
		{method: community.MethodGreedy, want: cliqueCommunities},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			got, err := community.Detect(graph, tt.method, 0)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_FeedsSharedModulesAndMetrics(t *testing.T) {
	graph := twoCliques(t)

	groups, err := community.Detect(graph, community.MethodGreedy, community.DefaultResolution)
	require.NoError(t, err)
	groups = community.MoveSharedModules(groups, graph, 1)
	report := community.Calculate(groups, graph)

	// The bridged module is the only one imported across groups.
	require.Len(t, groups, 3)
	assert.Equal(t, community.Community{Name: community.SharedName, Modules: []string{"src/b1.js"}}, groups[2])
	assert.Equal(t, 3, report.Summary.Communities)
}

func TestParseMethod(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  community.Method
	}{
		{input: "dir", want: community.MethodDir},
		{input: "Louvain", want: community.MethodLouvain},
		{input: " greedy ", want: community.MethodGreedy},
	} {
		got, err := community.ParseMethod(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := community.ParseMethod("spectral")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown community method")
}
