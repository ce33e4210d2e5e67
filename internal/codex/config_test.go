package codex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCommand = []string{"agentnotify", "codex"}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".codex", ConfigFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readConfig(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := map[string]interface{}{}
	require.NoError(t, toml.Unmarshal(data, &out))
	return out
}

func TestInstall_NewFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".codex", ConfigFileName)

	changed, err := Install(path, testCommand, false)
	require.NoError(t, err)
	assert.True(t, changed)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, testCommand, cfg.Notify())
}

func TestInstall_PreservesOtherSettings(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `model = "o3"
approval_policy = "on-request"

[mcp_servers.docs]
command = "docs-server"
args = ["--port", "9000"]
`)

	changed, err := Install(path, testCommand, false)
	require.NoError(t, err)
	assert.True(t, changed)

	data := readConfig(t, path)
	assert.Equal(t, "o3", data["model"])
	assert.Equal(t, "on-request", data["approval_policy"])
	servers := data["mcp_servers"].(map[string]interface{})
	assert.Equal(t, "docs-server", servers["docs"].(map[string]interface{})["command"])
	assert.Equal(t, []interface{}{"agentnotify", "codex"}, data["notify"])
}

func TestInstall_Idempotent(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `notify = ["agentnotify", "codex"]`)

	changed, err := Install(path, testCommand, false)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestInstall_Conflict(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `notify = ["python3", "/home/me/notify.py"]`)

	changed, err := Install(path, testCommand, false)
	assert.ErrorIs(t, err, ErrNotifyConflict)
	assert.Contains(t, err.Error(), "notify.py")
	assert.False(t, changed)

	changed, err = Install(path, testCommand, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []interface{}{"agentnotify", "codex"}, readConfig(t, path)["notify"])
}

func TestLoad_Malformed(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `notify = [`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing codex config")
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "  \n"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Notify())
}

func TestUninstall(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "model = \"o3\"\nnotify = [\"agentnotify\", \"codex\"]\n")

	changed, err := Uninstall(path, testCommand)
	require.NoError(t, err)
	assert.True(t, changed)

	data := readConfig(t, path)
	assert.NotContains(t, data, "notify")
	assert.Equal(t, "o3", data["model"])

	changed, err = Uninstall(path, testCommand)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestUninstall_LeavesForeignCommand(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `notify = ["other"]`)

	changed, err := Uninstall(path, testCommand)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []interface{}{"other"}, readConfig(t, path)["notify"])
}

func TestConfigPath(t *testing.T) {
	t.Setenv("CODEX_HOME", "")
	t.Setenv("HOME", "/home/tester")

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".codex", "config.toml"), path)

	t.Setenv("CODEX_HOME", "/opt/codex")
	path, err = ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/opt/codex", "config.toml"), path)
}
