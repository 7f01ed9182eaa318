package vcs_test

import (
	"testing"

	"github.com/LegacyCodeHQ/modgraph/vcs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemContentReader(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/imports.json", []byte(`{"a.js": []}`), 0o644))

	read := vcs.FilesystemContentReader(fs)

	content, err := read("/repo/imports.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a.js": []}`, string(content))

	_, err = read("/repo/missing.json")
	assert.Error(t, err)
}
