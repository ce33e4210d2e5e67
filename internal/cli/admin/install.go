package admin

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentnotify/agentnotify/internal/claude"
	"github.com/agentnotify/agentnotify/internal/cli/shared"
	"github.com/agentnotify/agentnotify/internal/codex"
)

// DefaultCommand is the program registered in agent configuration.
const DefaultCommand = "agentnotify"

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register agentnotify with a coding agent",
	Long: `Register agentnotify as the notification hook of a coding agent.

Installation is idempotent: running it again leaves configuration that is
already correct untouched.`,
}

var installClaudeCmd = &cobra.Command{
	Use:   "claude",
	Short: "Add agentnotify to Claude Code hooks",
	Long: `Add agentnotify to the Notification, Stop and SubagentStop hooks in a
Claude Code settings.json file. Existing hooks are kept.`,
	Example: `  # Current project (.claude/settings.json)
  agentnotify install claude

  # All projects (~/.claude/settings.json)
  agentnotify install claude --global

  # Show which hooks are registered
  agentnotify install claude --check

  # Remove the hooks again
  agentnotify install claude --remove`,
	Args: shared.Args(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		global, _ := cmd.Flags().GetBool("global")
		project, _ := cmd.Flags().GetString("project")
		command, _ := cmd.Flags().GetString("command")
		remove, _ := cmd.Flags().GetBool("remove")
		check, _ := cmd.Flags().GetBool("check")

		if global && project != "" {
			return shared.InvalidArgs(errors.New("--global and --project are mutually exclusive"))
		}

		settingsPath, err := claudeSettingsPath(global, project)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case check:
			return checkClaude(out, settingsPath, command)
		case remove:
			return uninstallClaude(out, settingsPath, command)
		default:
			return installClaude(out, settingsPath, command)
		}
	},
}

var installCodexCmd = &cobra.Command{
	Use:   "codex",
	Short: "Set agentnotify as the Codex notify program",
	Long: `Set notify = ["agentnotify", "codex"] in the Codex CLI config.toml
($CODEX_HOME/config.toml or ~/.codex/config.toml). Other settings are kept.
An existing notify program is only replaced with --force.`,
	Example: `  agentnotify install codex
  agentnotify install codex --force
  agentnotify install codex --remove`,
	Args: shared.Args(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		command, _ := cmd.Flags().GetString("command")
		force, _ := cmd.Flags().GetBool("force")
		remove, _ := cmd.Flags().GetBool("remove")

		path, err := codex.ConfigPath()
		if err != nil {
			return err
		}

		notify := []string{command, "codex"}
		if remove {
			return uninstallCodex(cmd.OutOrStdout(), path, notify)
		}
		return installCodex(cmd.OutOrStdout(), path, notify, force)
	},
}

func init() {
	installCmd.GroupID = shared.GroupSetup
	installCmd.AddCommand(installClaudeCmd)
	installCmd.AddCommand(installCodexCmd)

	installClaudeCmd.Flags().Bool("global", false, "Use the user-level settings (~/.claude/settings.json)")
	installClaudeCmd.Flags().String("project", "", "Project directory (default: current directory)")
	installClaudeCmd.Flags().String("command", DefaultCommand, "Command the hooks run")
	installClaudeCmd.Flags().Bool("remove", false, "Remove the hooks instead of adding them")
	installClaudeCmd.Flags().Bool("check", false, "Report the hook status without changing anything")
	installClaudeCmd.MarkFlagsMutuallyExclusive("remove", "check")

	installCodexCmd.Flags().String("command", DefaultCommand, "Program Codex runs")
	installCodexCmd.Flags().Bool("force", false, "Replace an existing notify program")
	installCodexCmd.Flags().Bool("remove", false, "Remove the notify setting")
}

func claudeSettingsPath(global bool, project string) (string, error) {
	if global {
		return claude.UserSettingsPath()
	}
	if project == "" {
		project = "."
	}
	return claude.ProjectSettingsPath(project), nil
}

func installClaude(out io.Writer, settingsPath, command string) error {
	added, err := claude.Install(settingsPath, command)
	if err != nil {
		return fmt.Errorf("installing claude hooks: %w", err)
	}
	colors := shared.NewColors()
	if len(added) == 0 {
		fmt.Fprintf(out, "%s hooks already installed in %s\n", colors.Green("✓"), settingsPath)
		return nil
	}
	fmt.Fprintf(out, "%s added %s hooks to %s\n", colors.Green("✓"), strings.Join(added, ", "), settingsPath)
	return nil
}

func uninstallClaude(out io.Writer, settingsPath, command string) error {
	removed, err := claude.Uninstall(settingsPath, command)
	if err != nil {
		return fmt.Errorf("removing claude hooks: %w", err)
	}
	if len(removed) == 0 {
		fmt.Fprintf(out, "no agentnotify hooks in %s\n", settingsPath)
		return nil
	}
	fmt.Fprintf(out, "removed %s hooks from %s\n", strings.Join(removed, ", "), settingsPath)
	return nil
}

func checkClaude(out io.Writer, settingsPath, command string) error {
	settings, err := claude.Load(settingsPath)
	if err != nil {
		return fmt.Errorf("reading claude settings: %w", err)
	}
	colors := shared.NewColors()
	for _, ev := range claude.HookEvents {
		mark := colors.Red("✗")
		if settings.HasHook(ev, command) {
			mark = colors.Green("✓")
		}
		fmt.Fprintf(out, "  %s %s\n", mark, ev)
	}
	fmt.Fprintf(out, "%s: %s\n", settingsPath, settings.Check(command, claude.HookEvents))
	return nil
}

func installCodex(out io.Writer, path string, command []string, force bool) error {
	changed, err := codex.Install(path, command, force)
	if errors.Is(err, codex.ErrNotifyConflict) {
		return shared.InvalidArgs(fmt.Errorf("%w (use --force to replace it)", err))
	}
	if err != nil {
		return fmt.Errorf("installing codex notify: %w", err)
	}
	colors := shared.NewColors()
	if !changed {
		fmt.Fprintf(out, "%s codex notify already set in %s\n", colors.Green("✓"), path)
		return nil
	}
	fmt.Fprintf(out, "%s codex notify set to %q in %s\n", colors.Green("✓"), command, path)
	return nil
}

func uninstallCodex(out io.Writer, path string, command []string) error {
	changed, err := codex.Uninstall(path, command)
	if err != nil {
		return fmt.Errorf("removing codex notify: %w", err)
	}
	if !changed {
		fmt.Fprintf(out, "codex notify is not agentnotify in %s\n", path)
		return nil
	}
	fmt.Fprintf(out, "removed codex notify from %s\n", path)
	return nil
}
