package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/luals-check/internal/adapters/inbound/cli"
	"github.com/openkraft/luals-check/internal/domain"
	"github.com/openkraft/luals-check/internal/testkit"
)

func TestMain(m *testing.M) {
	testkit.RunFakeAnalyzerIfRequested()
	os.Exit(m.Run())
}

// setupProject creates a project whose report holds a warning in main.lua,
// a hint in main.lua and an error in a file outside the project.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	inside := "file://" + filepath.ToSlash(filepath.Join(dir, "main.lua"))
	outside := "file://" + filepath.ToSlash(filepath.Join(t.TempDir(), "lib.lua"))
	content := fmt.Sprintf(`{
		%q: [
			{"range":{"start":{"line":2,"character":6},"end":{"line":2,"character":7}},"severity":2,"code":"unused-local","message":"Unused local `+"`x`"+`."},
			{"range":{"start":{"line":4,"character":0},"end":{"line":4,"character":0}},"severity":4,"code":"trailing-space","message":"Line with trailing space."}
		],
		%q: [
			{"range":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}},"severity":1,"message":"outside"}
		]
	}`, inside, outside)
	reportPath := filepath.Join(t.TempDir(), "check.json")
	require.NoError(t, os.WriteFile(reportPath, []byte(content), 0644))
	testkit.UseFakeAnalyzer(t, "report", reportPath)
	return dir
}

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append(args, "-c", testkit.Executable(t)))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckCommand_TextOutput(t *testing.T) {
	dir := setupProject(t)

	out, _, err := runRoot(t, dir, "--color", "off")
	require.Error(t, err)
	assert.Equal(t, 1, cli.ExitCode(err))
	assert.Equal(t, "lua-language-server found 1 problems", err.Error())

	assert.Contains(t, out, "Diagnosis completed", "analyzer output is echoed")
	assert.Contains(t, out, "\nmain.lua:2:6-2:7 [unused-local]\n    warning: Unused local `x`.\n")
	assert.Contains(t, out, "\nmain.lua:4:0 [trailing-space]\n    hint: Line with trailing space.\n")
	assert.NotContains(t, out, "outside")
	assert.NotContains(t, out, "\x1b[")
}

func TestCheckCommand_FailThresholdFlag(t *testing.T) {
	dir := setupProject(t)

	out, _, err := runRoot(t, dir, "--fail", "error", "--color", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "unused-local")
}

func TestCheckCommand_ShowThresholdFlag(t *testing.T) {
	dir := setupProject(t)

	out, _, err := runRoot(t, dir, "--show", "warning", "--color", "off")
	require.Error(t, err)
	assert.Contains(t, out, "unused-local")
	assert.NotContains(t, out, "trailing-space")
}

func TestCheckCommand_ConfigFileThresholds(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".luals-check.yaml"), []byte("fail: error\nshow: warning\n"), 0644))

	out, _, err := runRoot(t, dir, "--color", "off")
	require.NoError(t, err)
	assert.NotContains(t, out, "trailing-space")

	// Flags win over the config file.
	_, _, err = runRoot(t, dir, "--fail", "warning", "--color", "off")
	assert.Equal(t, 1, cli.ExitCode(err))
}

func TestCheckCommand_JSON(t *testing.T) {
	dir := setupProject(t)

	out, stderr, err := runRoot(t, dir, "--format", "json")
	require.Error(t, err)
	assert.Contains(t, stderr, "Diagnosis completed", "analyzer output goes to stderr")

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result), "output should be valid JSON")
	assert.EqualValues(t, 1, result["failures"])
	assert.Len(t, result["findings"], 2)
	assert.Equal(t, map[string]interface{}{"fail": "warning", "show": "hint"}, result["thresholds"])
}

func TestCheckCommand_SARIF(t *testing.T) {
	dir := setupProject(t)

	out, _, err := runRoot(t, dir, "--format", "sarif")
	require.Error(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2.1.0", doc["version"])
	runs := doc["runs"].([]interface{})
	require.Len(t, runs, 1)
	assert.Len(t, runs[0].(map[string]interface{})["results"], 2)
}

func TestCheckCommand_ColorOn(t *testing.T) {
	dir := setupProject(t)

	out, _, _ := runRoot(t, dir, "--color", "on")
	assert.Contains(t, out, "\x1b[")
}

func TestCheckCommand_InvalidFlags(t *testing.T) {
	dir := setupProject(t)

	for _, args := range [][]string{
		{dir, "--format", "xml"},
		{dir, "--color", "always"},
		{dir, "--fail", "fatal"},
		{dir, "--show", "loud"},
	} {
		_, _, err := runRoot(t, args...)
		require.Error(t, err, "args %v", args)
		assert.Equal(t, 2, cli.ExitCode(err), "args %v", args)
	}
}

func TestCheckCommand_AnalyzerFailure(t *testing.T) {
	testkit.UseFakeAnalyzer(t, "fail", "")
	t.Setenv(testkit.EnvExitCode, "3")

	_, _, err := runRoot(t, t.TempDir())
	require.Error(t, err)
	var analyzerErr *domain.AnalyzerError
	require.ErrorAs(t, err, &analyzerErr)
	assert.Equal(t, 3, analyzerErr.ExitCode)
	assert.Equal(t, 2, cli.ExitCode(err))
}

func TestCheckCommand_NoProblems(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(t.TempDir(), "check.json")
	require.NoError(t, os.WriteFile(reportPath, []byte("{}"), 0644))
	testkit.UseFakeAnalyzer(t, "report", reportPath)

	out, _, err := runRoot(t, dir)
	require.NoError(t, err)
	assert.True(t, len(out) > 0, "analyzer output is still echoed")
}

func TestCheckCommand_TooManyArgs(t *testing.T) {
	_, _, err := runRoot(t, "a", "b")
	assert.Error(t, err)
}
