package importmap_test

import (
	"errors"
	"testing"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/LegacyCodeHQ/modgraph/importmap"
	"github.com/LegacyCodeHQ/modgraph/vcs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_JSONKeepsKeyOrder(t *testing.T) {
	data := []byte(`{
  "src/main.js": ["./b", "react"],
  "src/b.js": [],
  "src/a.js": ["./b"]
}`)

	imports, err := importmap.Decode(data, importmap.FormatJSON)

	require.NoError(t, err)
	assert.Equal(t, depgraph.ImportMap{
		{Path: "src/main.js", Specifiers: []string{"./b", "react"}},
		{Path: "src/b.js", Specifiers: []string{}},
		{Path: "src/a.js", Specifiers: []string{"./b"}},
	}, imports)
}

func TestDecode_YAMLKeepsKeyOrder(t *testing.T) {
	data := []byte(`
src/main.js:
  - ./b
  - react
src/b.js: []
src/a.js:
`)

	imports, err := importmap.Decode(data, importmap.FormatYAML)

	require.NoError(t, err)
	assert.Equal(t, depgraph.ImportMap{
		{Path: "src/main.js", Specifiers: []string{"./b", "react"}},
		{Path: "src/b.js", Specifiers: []string{}},
		{Path: "src/a.js", Specifiers: []string{}},
	}, imports)
}

func TestDecode_YAMLAliases(t *testing.T) {
	data := []byte(`
a.js: &shared
  - ./c
b.js: *shared
`)

	imports, err := importmap.Decode(data, importmap.FormatYAML)

	require.NoError(t, err)
	require.Len(t, imports, 2)
	assert.Equal(t, []string{"./c"}, imports[1].Specifiers)
}

func TestDecode_EmptyInput(t *testing.T) {
	imports, err := importmap.Decode([]byte(`{}`), importmap.FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, imports)

	imports, err = importmap.Decode([]byte(""), importmap.FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, imports)
}

func TestDecode_RejectsDuplicateKeys(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format importmap.Format
	}{
		{name: "json", data: `{"a.js": [], "b.js": [], "a.js": ["./b"]}`, format: importmap.FormatJSON},
		{name: "yaml", data: "a.js: []\nb.js: []\na.js: [./b]\n", format: importmap.FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importmap.Decode([]byte(tt.data), tt.format)

			var invalid *depgraph.InvalidInputError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, "a.js", invalid.Module)
		})
	}
}

func TestDecode_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format importmap.Format
	}{
		{name: "json syntax", data: `{"a.js": [`, format: importmap.FormatJSON},
		{name: "json top-level array", data: `["a.js"]`, format: importmap.FormatJSON},
		{name: "json non-string specifier", data: `{"a.js": [1]}`, format: importmap.FormatJSON},
		{name: "json empty specifier", data: `{"a.js": [""]}`, format: importmap.FormatJSON},
		{name: "json null specifiers", data: `{"a.js": null}`, format: importmap.FormatJSON},
		{name: "yaml syntax", data: "a.js: [", format: importmap.FormatYAML},
		{name: "yaml top-level list", data: "- a.js\n", format: importmap.FormatYAML},
		{name: "yaml scalar specifiers", data: "a.js: ./b\n", format: importmap.FormatYAML},
		{name: "yaml nested list", data: "a.js:\n  - [./b]\n", format: importmap.FormatYAML},
		{name: "yaml non-string specifier", data: "a.js:\n  - 42\n", format: importmap.FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importmap.Decode([]byte(tt.data), tt.format)

			assert.Error(t, err)
		})
	}
}

func TestParseFormat(t *testing.T) {
	format, err := importmap.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, importmap.FormatYAML, format)

	_, err = importmap.ParseFormat("toml")
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	format, err := importmap.FormatForPath("deps/imports.json")
	require.NoError(t, err)
	assert.Equal(t, importmap.FormatJSON, format)

	_, err = importmap.FormatForPath("deps/imports")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	imports := depgraph.ImportMap{
		{Path: "src/main.js", Specifiers: []string{"./a"}},
		{Path: "src/a.test.js", Specifiers: []string{"./a"}},
		{Path: "src/a.js"},
		{Path: "vendor/lib.js"},
	}

	filtered, err := importmap.Filter(imports, []string{`\.test\.js$`, `^vendor/`})

	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.js", "src/a.js"}, filtered.Paths())
	assert.Equal(t, []string{"./a"}, filtered[0].Specifiers)
}

func TestFilter_InvalidPattern(t *testing.T) {
	_, err := importmap.Filter(depgraph.ImportMap{{Path: "a.js"}}, []string{"("})

	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/imports.yaml", []byte("a.js: [./b]\nb.js: []\n"), 0o644))

	imports, err := importmap.Load(vcs.FilesystemContentReader(fs), "/repo/imports.yaml")

	require.NoError(t, err)
	assert.Equal(t, []string{"a.js", "b.js"}, imports.Paths())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := importmap.Load(vcs.FilesystemContentReader(afero.NewMemMapFs()), "/repo/imports.json")

	assert.ErrorContains(t, err, "failed to read import map")
}
