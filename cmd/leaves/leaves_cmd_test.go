package leaves

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureImports = `{
  "src/main.js": ["./app", "lodash"],
  "src/app.js": ["./util", "./missing"],
  "src/util.js": ["./app"],
  "src/unused.js": [],
  "lib/shared.js": ["../src/util"]
}`

func fixtureArgs(t *testing.T) []string {
	t.Helper()

	dir := t.TempDir()
	importMap := filepath.Join(dir, "imports.json")
	require.NoError(t, os.WriteFile(importMap, []byte(fixtureImports), 0o600))
	configPath := filepath.Join(dir, ".modgraph.yaml")
	require.NoError(t, os.WriteFile(configPath, nil, 0o600))

	return []string{"--config", configPath, "-m", importMap, "-r", dir}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestLeavesCommand(t *testing.T) {
	out, err := execute(t, fixtureArgs(t)...)
	require.NoError(t, err)

	assert.Equal(t, "src/unused.js\n", out)
}

func TestLeavesCommand_JSONEmpty(t *testing.T) {
	out, err := execute(t, append(fixtureArgs(t), "-x", "unused", "-f", "json")...)
	require.NoError(t, err)

	assert.Equal(t, "[]\n", out)
}
