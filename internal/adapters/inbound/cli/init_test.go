package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/luals-check/internal/adapters/inbound/cli"
	"github.com/openkraft/luals-check/internal/adapters/outbound/config"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".luals-check.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "fail: warning")
	assert.Contains(t, string(data), "show: hint")
}

func TestInitCmd_GeneratedConfigLoads(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--fail", "error", "--show", "info"})
	require.NoError(t, root.Execute())

	cfg, err := config.New().Load(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Fail)
	require.NotNil(t, cfg.Show)
	assert.Equal(t, "error", cfg.Fail.String())
	assert.Equal(t, "info", cfg.Show.String())
}

func TestInitCmd_ShowCoercedToFail(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--fail", "warning", "--show", "error"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".luals-check.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "show: warning")
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".luals-check.yaml"), []byte("existing"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".luals-check.yaml"), []byte("old"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".luals-check.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "fail:")
	assert.NotEqual(t, "old", string(data))
}

func TestInitCmd_InvalidSeverity(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--fail", "fatal"})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --fail")
}
