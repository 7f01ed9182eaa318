package depgraph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
	"github.com/stretchr/testify/require"
)

// literalResolver treats each specifier as the target module path. Prefixes
// "ext:" and "missing:" produce unresolved results.
var literalResolver = langsupport.ResolverFunc(func(specifier, _ string) (langsupport.Resolution, error) {
	switch {
	case strings.HasPrefix(specifier, "ext:"):
		return langsupport.Resolution{Specifier: specifier, Status: langsupport.StatusExternal}, nil
	case strings.HasPrefix(specifier, "missing:"):
		return langsupport.Resolution{Specifier: specifier, Status: langsupport.StatusMissing}, nil
	default:
		return langsupport.Resolution{Specifier: specifier, Path: specifier, Status: langsupport.StatusResolved}, nil
	}
})

func buildGraph(t *testing.T, imports depgraph.ImportMap, opts ...depgraph.BuildOption) *depgraph.Graph {
	t.Helper()

	graph, err := depgraph.BuildDependencyGraph(context.Background(), imports, literalResolver, opts...)
	require.NoError(t, err)
	return graph
}

func chain(paths ...string) depgraph.ImportMap {
	imports := make(depgraph.ImportMap, 0, len(paths))
	for i, path := range paths {
		entry := depgraph.ModuleImports{Path: path}
		if i+1 < len(paths) {
			entry.Specifiers = []string{paths[i+1]}
		}
		imports = append(imports, entry)
	}
	return imports
}
