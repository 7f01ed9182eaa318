package typescript_test

import (
	"testing"

	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
	"github.com/LegacyCodeHQ/modgraph/depgraph/languages/typescript"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverPrefersTypeScriptSources(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/project/src/store.js", []byte(""), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/project/src/store.ts", []byte(""), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/project/src/types.d.ts", []byte(""), 0o644))
	ctx := langsupport.NewContext("/project", fs, []string{"src/app.ts"})

	resolver := typescript.Module{}.NewResolver(ctx)

	res, err := resolver.Resolve("./store", "src/app.ts")
	require.NoError(t, err)
	assert.Equal(t, "src/store.ts", res.Path)

	res, err = resolver.Resolve("./types", "src/app.ts")
	require.NoError(t, err)
	assert.Equal(t, "src/types.d.ts", res.Path)
}
