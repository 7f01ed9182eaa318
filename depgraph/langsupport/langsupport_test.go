package langsupport_test

import (
	"testing"

	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPath(t *testing.T) {
	tests := map[string]string{
		"./src/a.js":        "src/a.js",
		"src//lib/../b.js":  "src/b.js",
		"src/a.js":          "src/a.js",
		"../outside/x.js":   "../outside/x.js",
		"/abs/project/a.js": "/abs/project/a.js",
	}
	for in, want := range tests {
		assert.Equal(t, want, langsupport.CanonicalPath(in), "CanonicalPath(%q)", in)
	}
}

func TestOutsideRoot(t *testing.T) {
	assert.True(t, langsupport.OutsideRoot(".."))
	assert.True(t, langsupport.OutsideRoot("../lib/x.js"))
	assert.False(t, langsupport.OutsideRoot("src/..x.js"))
	assert.False(t, langsupport.OutsideRoot("src/a.js"))
}

func TestContext_CheckRequest(t *testing.T) {
	ctx := langsupport.NewContext("/project", afero.NewMemMapFs(), []string{"./src/a.js"})

	require.NoError(t, ctx.CheckRequest("./b", "src/a.js"))
	assert.Error(t, ctx.CheckRequest("", "src/a.js"))
	assert.Error(t, ctx.CheckRequest("./b", "src/unknown.js"))
}

func TestContext_FileAndDirExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/project/lib/util.js", []byte("x"), 0o644))
	ctx := langsupport.NewContext("/project", fs, []string{"src/a.js"})

	assert.True(t, ctx.FileExists("src/a.js"), "input modules exist without touching the filesystem")
	assert.True(t, ctx.FileExists("lib/util.js"))
	assert.False(t, ctx.FileExists("lib"), "directories are not files")
	assert.False(t, ctx.FileExists("lib/none.js"))

	assert.True(t, ctx.DirExists("lib"))
	assert.True(t, ctx.DirExists("src"), "directories of input modules exist")
	assert.False(t, ctx.DirExists("docs"))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "resolved", langsupport.StatusResolved.String())
	assert.Equal(t, "external", langsupport.StatusExternal.String())
	assert.Equal(t, "missing", langsupport.StatusMissing.String())
}
