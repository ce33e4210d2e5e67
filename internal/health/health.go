// Package health checks whether agentnotify can deliver on this machine:
// channel configuration, audio players, git, and agent hook registration.
package health

import (
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/agentnotify/agentnotify/internal/claude"
	"github.com/agentnotify/agentnotify/internal/codex"
	"github.com/agentnotify/agentnotify/internal/config"
	"github.com/agentnotify/agentnotify/internal/feishu"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Optional checks are reported but never fail the report.
	Optional bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Add appends a result and updates Passed.
func (r *HealthReport) Add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed && !c.Optional {
		r.Passed = false
	}
}

// Inputs describes what RunHealthChecks inspects.
type Inputs struct {
	Config *config.Configuration
	// Platform is a GOOS value.
	Platform string
	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)

	ClaudeSettingsPath string
	ClaudeCommand      string
	CodexConfigPath    string
	CodexCommand       []string
}

// RunHealthChecks runs all health checks and returns a report
func RunHealthChecks(in Inputs) *HealthReport {
	if in.LookPath == nil {
		in.LookPath = exec.LookPath
	}

	report := &HealthReport{Passed: true}
	report.Add(CheckPush(in.Config))
	report.Add(CheckAudio(in.Config, in.Platform, in.LookPath))
	report.Add(CheckGit(in.LookPath))
	if in.ClaudeSettingsPath != "" {
		report.Add(CheckClaudeHooks(in.ClaudeSettingsPath, in.ClaudeCommand))
	}
	if in.CodexConfigPath != "" {
		report.Add(CheckCodexNotify(in.CodexConfigPath, in.CodexCommand))
	}
	return report
}

// CheckPush checks that an enabled push channel has a real webhook URL
func CheckPush(cfg *config.Configuration) CheckResult {
	result := CheckResult{Name: "Feishu push"}

	switch {
	case !cfg.Enabled:
		result.Passed = true
		result.Message = "notifications disabled"
	case !cfg.Feishu.Enabled && strings.TrimSpace(cfg.Feishu.WebhookURL) == "":
		result.Passed = true
		result.Optional = true
		result.Message = "no webhook configured (set FEISHU_WEBHOOK_URL to enable push)"
	case !cfg.Feishu.Enabled:
		result.Passed = true
		result.Message = "push disabled"
	case feishu.IsPlaceholder(cfg.Feishu.WebhookURL):
		result.Message = "webhook URL is still the placeholder"
	default:
		result.Passed = true
		result.Message = fmt.Sprintf("%s messages, signing %s", cfg.Feishu.Style, onOff(cfg.Feishu.Secret != ""))
	}
	return result
}

// CheckAudio checks that the platform's sound and speech players are installed
func CheckAudio(cfg *config.Configuration, platform string, lookPath func(string) (string, error)) CheckResult {
	result := CheckResult{Name: "Audio"}
	if !cfg.Enabled || !cfg.Sound.Enabled {
		result.Passed = true
		result.Message = "sound disabled"
		return result
	}

	var required []string
	switch platform {
	case "darwin":
		required = []string{"afplay", "say"}
	case "windows":
		required = []string{"powershell"}
	default:
		result.Passed = true
		result.Message = "terminal bell only on " + platform
		return result
	}

	var missing []string
	for _, bin := range required {
		if _, err := lookPath(bin); err != nil {
			missing = append(missing, bin)
		}
	}
	if len(missing) > 0 {
		result.Message = fmt.Sprintf("%s not found in PATH, falling back to the terminal bell", strings.Join(missing, ", "))
		return result
	}

	result.Passed = true
	result.Message = strings.Join(required, " + ") + " found"
	return result
}

// CheckGit checks if Git is available for project name resolution
func CheckGit(lookPath func(string) (string, error)) CheckResult {
	if _, err := lookPath("git"); err != nil {
		return CheckResult{
			Name:     "Git",
			Optional: true,
			Message:  "Git not found in PATH, project names fall back to directory names",
		}
	}

	return CheckResult{
		Name:    "Git",
		Passed:  true,
		Message: "Git found",
	}
}

// CheckClaudeHooks checks that command runs for every Claude Code hook event
func CheckClaudeHooks(settingsPath, command string) CheckResult {
	result := CheckResult{Name: "Claude Code hooks", Optional: true}

	settings, err := claude.Load(settingsPath)
	if err != nil {
		result.Message = err.Error()
		return result
	}

	switch status := settings.Check(command, claude.HookEvents); status {
	case claude.StatusConfigured:
		result.Passed = true
		result.Message = "registered in " + settingsPath
	case claude.StatusMissing:
		result.Message = settingsPath + " not found (run 'agentnotify install claude')"
	default:
		result.Message = fmt.Sprintf("%s in %s (run 'agentnotify install claude')", status, settingsPath)
	}
	return result
}

// CheckCodexNotify checks that Codex runs command as its notify program
func CheckCodexNotify(path string, command []string) CheckResult {
	result := CheckResult{Name: "Codex notify", Optional: true}

	cfg, err := codex.Load(path)
	if err != nil {
		result.Message = err.Error()
		return result
	}

	current := cfg.Notify()
	switch {
	case slices.Equal(current, command):
		result.Passed = true
		result.Message = "registered in " + path
	case len(current) == 0:
		result.Message = "notify not set (run 'agentnotify install codex')"
	default:
		result.Message = fmt.Sprintf("notify runs %q", strings.Join(current, " "))
	}
	return result
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder

	for _, check := range report.Checks {
		mark := "✓"
		switch {
		case check.Passed:
		case check.Optional:
			mark = "!"
		default:
			mark = "✗"
		}
		fmt.Fprintf(&b, "%s %s: %s\n", mark, check.Name, check.Message)
	}

	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
