package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests in this file execute the global rootCmd and cannot run in parallel.

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("CODEX_HOME", t.TempDir())
	for _, name := range []string{"FEISHU_WEBHOOK_URL", "FEISHU_SECRET", "SOUND_ENABLED", "NOTIFICATION_ENABLED", "TERMINAL_NAME"} {
		t.Setenv(name, "")
	}
	t.Setenv("AGENTNOTIFY_GRACE_PERIOD", "0s")

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoot_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	badConfig := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badConfig, []byte(`{"feishu": {"style": "fancy"}}`), 0o644))

	tests := map[string]struct {
		args     []string
		wantCode int
	}{
		"unknown flag": {
			args:     []string{"--bogus"},
			wantCode: ExitInvalidArguments,
		},
		"unexpected positional argument": {
			args:     []string{"--no-push", "--no-sound", "stray"},
			wantCode: ExitInvalidArguments,
		},
		"invalid status": {
			args:     []string{"--status", "sideways"},
			wantCode: ExitInvalidArguments,
		},
		"invalid config file falls back for notify": {
			args:     []string{"--config", badConfig, "--no-sound", "--message", "hi"},
			wantCode: ExitSuccess,
		},
		"invalid config file fails config show": {
			args:     []string{"--config", badConfig, "config", "show"},
			wantCode: ExitFailure,
		},
		"config set unknown key": {
			args:     []string{"config", "set", "nope", "1"},
			wantCode: ExitInvalidArguments,
		},
		"no channels enabled": {
			args:     []string{"--no-push", "--no-sound", "--message", "hi"},
			wantCode: ExitSuccess,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := executeRoot(t, tt.args...)
			assert.Equal(t, tt.wantCode, ExitCode(err))
		})
	}
}

func TestRoot_NotifyWithoutChannels(t *testing.T) {
	out, err := executeRoot(t, "--no-push", "--no-sound", "--message", "build finished", "--status", "failed")
	require.NoError(t, err)

	assert.Contains(t, out, "build finished")
	assert.Contains(t, out, "失败")
	assert.Contains(t, out, "no channels enabled")
}

func TestRoot_MasterSwitchOff(t *testing.T) {
	// executeRoot blanks NOTIFICATION_ENABLED, so use the prefixed key
	t.Setenv("AGENTNOTIFY_ENABLED", "false")
	out, err := executeRoot(t, "--message", "hi")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRoot_Subcommands(t *testing.T) {
	tests := map[string]struct {
		args []string
		want []string
	}{
		"version plain": {
			args: []string{"version", "--plain"},
			want: []string{"agentnotify ", "platform: "},
		},
		"config keys": {
			args: []string{"config", "keys"},
			want: []string{"feishu.webhook_url", "sound.voice", "grace_period"},
		},
		"config show": {
			args: []string{"config", "show"},
			want: []string{"feishu:", "style: post", "grace_period: 0s"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := executeRoot(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRoot_CommandTree(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"codex", "sound", "install", "doctor", "config", "version"} {
		assert.True(t, names[want], "missing command %q", want)
	}

	for _, flag := range []string{"message", "task", "webhook", "event", "type", "status"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(flag), "missing flag --%s", flag)
	}
	for _, flag := range []string{"config", "debug", "no-push", "no-sound"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing flag --%s", flag)
	}
}
