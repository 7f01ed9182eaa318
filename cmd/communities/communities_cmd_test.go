package communities

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/LegacyCodeHQ/modgraph/community"
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

func TestCommunitiesCommand_JSON(t *testing.T) {
	out, err := execute(t, append(fixtureArgs(t), "-f", "json")...)
	require.NoError(t, err)

	var result communitiesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, map[string][]string{
		"src": {"src/main.js", "src/app.js", "src/util.js", "src/unused.js"},
		"lib": {"lib/shared.js"},
	}, result.Communities)

	metrics := make(map[string]community.Metrics)
	for _, m := range result.Metrics.Communities {
		metrics[m.Name] = m
	}
	assert.Equal(t, 4, metrics["src"].Files)
	assert.Equal(t, 1, metrics["src"].OuterExports)
	assert.Equal(t, 0, metrics["src"].OuterImports)
	assert.Equal(t, 1, metrics["lib"].OuterImports)
	assert.Equal(t, []string{"lib/shared.js"}, metrics["lib"].FilesWithOuterImports)
	assert.Equal(t, 2, result.Metrics.Summary.Communities)
}

func TestCommunitiesCommand_SharedThreshold(t *testing.T) {
	out, err := execute(t, append(fixtureArgs(t), "-f", "json", "--shared-threshold", "1")...)
	require.NoError(t, err)

	var result communitiesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"src/util.js"}, result.Communities[community.SharedName])
}

func TestCommunitiesCommand_Text(t *testing.T) {
	out, err := execute(t, fixtureArgs(t)...)
	require.NoError(t, err)

	assert.Contains(t, out, "src")
	assert.Contains(t, out, "2 communities")
}

func TestCommunitiesCommand_Methods(t *testing.T) {
	want := map[string][]string{
		"0": {"src/main.js", "src/app.js"},
		"1": {"src/util.js", "lib/shared.js"},
		"2": {"src/unused.js"},
	}

	for _, method := range []string{"louvain", "greedy"} {
		t.Run(method, func(t *testing.T) {
			out, err := execute(t, append(fixtureArgs(t), "-f", "json", "--method", method)...)
			require.NoError(t, err)

			var result communitiesOutput
			require.NoError(t, json.Unmarshal([]byte(out), &result))
			assert.Equal(t, want, result.Communities)
			assert.Equal(t, 3, result.Metrics.Summary.Communities)
		})
	}
}

func TestCommunitiesCommand_UnknownMethod(t *testing.T) {
	_, err := execute(t, append(fixtureArgs(t), "--method", "spectral")...)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown community method")
}
