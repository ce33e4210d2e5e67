package envinfo

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns canned output keyed by program name and records calls.
type fakeRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Output(_ context.Context, _ string, name string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	if err := f.errs[name]; err != nil {
		return "", err
	}
	return f.outputs[name], nil
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func noRemote(context.Context, string, string) (string, error) {
	return "", errors.New("not a git repository")
}

func TestProbe_ProjectName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		packageJSON string
		remote      string
		want        func(dir string) string
	}{
		"package.json name wins": {
			packageJSON: `{"name": "web-app"}`,
			remote:      "https://github.com/acme/widget.git",
			want:        func(string) string { return "web-app" },
		},
		"git remote when no package.json": {
			remote: "git@github.com:acme/widget.git",
			want:   func(string) string { return "widget" },
		},
		"package.json without name falls through": {
			packageJSON: `{"version": "1.0.0"}`,
			remote:      "https://github.com/acme/widget",
			want:        func(string) string { return "widget" },
		},
		"malformed package.json falls through": {
			packageJSON: `{`,
			want:        func(dir string) string { return filepath.Base(dir) },
		},
		"directory name last": {
			want: func(dir string) string { return filepath.Base(dir) },
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			if tc.packageJSON != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(tc.packageJSON), 0o644))
			}
			remote := noRemote
			if tc.remote != "" {
				remote = func(context.Context, string, string) (string, error) { return tc.remote, nil }
			}

			p := NewProbe(zerolog.Nop(), WithRemoteURL(remote))
			assert.Equal(t, tc.want(dir), p.ProjectName(dir))
		})
	}
}

func TestProbe_ProjectNameUsesWorkingDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := NewProbe(zerolog.Nop(), WithRemoteURL(noRemote))
	p.getwd = func() (string, error) { return dir, nil }
	assert.Equal(t, filepath.Base(dir), p.ProjectName(""))

	p.getwd = func() (string, error) { return "", errors.New("gone") }
	assert.Equal(t, UnknownProject, p.ProjectName(""))
}

func TestProbe_TerminalName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		override string
		vars     map[string]string
		platform string
		outputs  map[string]string
		errs     map[string]error
		want     string
		wantCall string
	}{
		"configured name wins": {
			override: "cfg-tab",
			vars:     map[string]string{"TERMINAL_NAME": "env-tab", "TMUX": "/tmp/tmux"},
			want:     "cfg-tab",
		},
		"environment variable": {
			vars: map[string]string{"TERMINAL_NAME": "env-tab", "TMUX": "/tmp/tmux"},
			want: "env-tab",
		},
		"tmux window": {
			vars:     map[string]string{"TMUX": "/tmp/tmux-501/default,123,0"},
			outputs:  map[string]string{"tmux": "api-server"},
			want:     "api-server",
			wantCall: "tmux display-message -p #W",
		},
		"tmux failure falls through to none": {
			vars:     map[string]string{"TMUX": "/tmp/tmux"},
			platform: "linux",
			errs:     map[string]error{"tmux": errors.New("no server running")},
			want:     "",
		},
		"iterm on macOS": {
			vars:     map[string]string{"TERM_PROGRAM": "iTerm.app"},
			platform: "darwin",
			outputs:  map[string]string{"osascript": "zsh (agent)"},
			want:     "zsh (agent)",
			wantCall: "osascript -e " + iTermScript,
		},
		"terminal.app on macOS": {
			vars:     map[string]string{"TERM_PROGRAM": "Apple_Terminal"},
			platform: "darwin",
			outputs:  map[string]string{"osascript": "build"},
			want:     "build",
			wantCall: "osascript -e " + terminalScript,
		},
		"iterm ignored off macOS": {
			vars:     map[string]string{"TERM_PROGRAM": "iTerm.app"},
			platform: "linux",
			outputs:  map[string]string{"osascript": "zsh"},
			want:     "",
		},
		"nothing available": {
			platform: "darwin",
			want:     "",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			runner := &fakeRunner{outputs: tc.outputs, errs: tc.errs}
			p := NewProbe(zerolog.Nop(),
				WithRunner(runner),
				WithGetenv(env(tc.vars)),
				WithPlatform(tc.platform),
				WithTerminalName(tc.override),
			)

			assert.Equal(t, tc.want, p.TerminalName())
			if tc.wantCall != "" {
				assert.Contains(t, runner.calls, tc.wantCall)
			}
		})
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	var d Describer = Static{Project: "demo", Terminal: "tab-1"}
	assert.Equal(t, "demo", d.ProjectName("/anywhere"))
	assert.Equal(t, "tab-1", d.TerminalName())

	d = Static{}
	assert.Equal(t, UnknownProject, d.ProjectName(""))
	assert.Equal(t, "", d.TerminalName())
}

func TestExecRunner(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	out, err := ExecRunner{}.Output(context.Background(), t.TempDir(), "git", "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "git version"))
	assert.Equal(t, strings.TrimSpace(out), out)

	_, err = ExecRunner{}.Output(context.Background(), "", "agentnotify-no-such-binary")
	assert.Error(t, err)
}
