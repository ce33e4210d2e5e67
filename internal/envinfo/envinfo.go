// Package envinfo describes where a notification comes from: the project
// being worked on and the terminal tab or window running the agent.
//
// Every probe is best effort. Failures fall through to the next source and
// are logged at debug level only.
package envinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentnotify/agentnotify/internal/git"
)

const (
	// UnknownProject is used when no project name can be derived.
	UnknownProject = "未知项目"

	// DefaultProbeTimeout bounds each external probe command.
	DefaultProbeTimeout = 2 * time.Second
)

const (
	iTermScript    = `tell application "iTerm2" to tell current session of current tab of current window to get name`
	terminalScript = `tell application "Terminal" to get custom title of selected tab of front window`
)

// Describer reports the project and terminal labels for a notification.
type Describer interface {
	// ProjectName returns a display name for the project at cwd.
	// An empty cwd means the process working directory.
	ProjectName(cwd string) string
	// TerminalName returns the terminal label, or "" when unknown.
	TerminalName() string
}

// Runner runs a command and returns its trimmed standard output.
type Runner interface {
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Output implements Runner.
func (ExecRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Probe implements Describer against the real environment.
type Probe struct {
	runner    Runner
	remoteURL func(ctx context.Context, dir, remote string) (string, error)
	getenv    func(string) string
	getwd     func() (string, error)
	platform  string
	timeout   time.Duration
	override  string
	logger    zerolog.Logger
}

// Option customizes a Probe.
type Option func(*Probe)

// WithRunner replaces the command runner used for terminal probes.
func WithRunner(r Runner) Option {
	return func(p *Probe) { p.runner = r }
}

// WithRemoteURL replaces the git remote lookup.
func WithRemoteURL(fn func(ctx context.Context, dir, remote string) (string, error)) Option {
	return func(p *Probe) { p.remoteURL = fn }
}

// WithGetenv replaces the environment lookup.
func WithGetenv(fn func(string) string) Option {
	return func(p *Probe) { p.getenv = fn }
}

// WithPlatform overrides the detected operating system (GOOS value).
func WithPlatform(platform string) Option {
	return func(p *Probe) { p.platform = platform }
}

// WithTerminalName sets a configured terminal label that wins over probing.
func WithTerminalName(name string) Option {
	return func(p *Probe) { p.override = strings.TrimSpace(name) }
}

// WithTimeout bounds each probe command. Zero keeps DefaultProbeTimeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Probe) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewProbe creates a Probe for the current process.
func NewProbe(logger zerolog.Logger, opts ...Option) *Probe {
	p := &Probe{
		runner:    ExecRunner{},
		remoteURL: git.RemoteURL,
		getenv:    os.Getenv,
		getwd:     os.Getwd,
		platform:  runtime.GOOS,
		timeout:   DefaultProbeTimeout,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProjectName resolves the project name in order: package.json name, git
// remote repository name, directory name. Falls back to UnknownProject.
func (p *Probe) ProjectName(cwd string) string {
	if cwd == "" {
		wd, err := p.getwd()
		if err != nil {
			p.logger.Debug().Err(err).Msg("working directory unavailable")
			return UnknownProject
		}
		cwd = wd
	}

	if name := packageName(cwd); name != "" {
		p.logger.Debug().Str("source", "package.json").Str("project", name).Msg("project name")
		return name
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if url, err := p.remoteURL(ctx, cwd, git.DefaultRemote); err == nil {
		if name := git.RepoName(url); name != "" {
			p.logger.Debug().Str("source", "git").Str("project", name).Msg("project name")
			return name
		}
	} else {
		p.logger.Debug().Err(err).Msg("git remote lookup failed")
	}

	if name := filepath.Base(filepath.Clean(cwd)); name != "" && name != "." && name != string(filepath.Separator) {
		return name
	}
	return UnknownProject
}

// TerminalName resolves the terminal label in order: configured name,
// TERMINAL_NAME, tmux window name, iTerm2 or Terminal.app title on macOS.
func (p *Probe) TerminalName() string {
	if p.override != "" {
		return p.override
	}
	if name := strings.TrimSpace(p.getenv("TERMINAL_NAME")); name != "" {
		return name
	}

	if p.getenv("TMUX") != "" {
		if name := p.run("tmux", "display-message", "-p", "#W"); name != "" {
			return name
		}
	}

	if p.platform == "darwin" {
		switch p.getenv("TERM_PROGRAM") {
		case "iTerm.app":
			return p.run("osascript", "-e", iTermScript)
		case "Apple_Terminal":
			return p.run("osascript", "-e", terminalScript)
		}
	}
	return ""
}

// run executes one bounded probe and returns "" on any failure.
func (p *Probe) run(name string, args ...string) string {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	out, err := p.runner.Output(ctx, "", name, args...)
	if err != nil {
		p.logger.Debug().Err(err).Str("probe", name).Msg("terminal probe failed")
		return ""
	}
	return strings.TrimSpace(out)
}

// packageName returns the "name" field of dir/package.json, or "".
func packageName(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return ""
	}
	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}
	return strings.TrimSpace(pkg.Name)
}

// Static is a fixed Describer, used when probing is unwanted.
type Static struct {
	Project  string
	Terminal string
}

// ProjectName implements Describer.
func (s Static) ProjectName(string) string {
	if s.Project == "" {
		return UnknownProject
	}
	return s.Project
}

// TerminalName implements Describer.
func (s Static) TerminalName() string { return s.Terminal }
