package admin

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentnotify/agentnotify/internal/claude"
	"github.com/agentnotify/agentnotify/internal/cli/shared"
	"github.com/agentnotify/agentnotify/internal/codex"
	"github.com/agentnotify/agentnotify/internal/health"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that notifications can be delivered",
	Long: `Check the push webhook, the audio players for this platform, git, and
whether agentnotify is registered with Claude Code and Codex.

Hook registration and git are informational; the command fails only when a
channel that is enabled cannot deliver.`,
	Example: `  agentnotify doctor
  agentnotify doctor --global`,
	Args: shared.Args(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		global, _ := cmd.Flags().GetBool("global")
		command, _ := cmd.Flags().GetString("command")

		rt, err := shared.LoadStrictRuntime(cmd)
		if err != nil {
			return err
		}

		in := health.Inputs{
			Config:        rt.Config,
			Platform:      runtime.GOOS,
			ClaudeCommand: command,
			CodexCommand:  []string{command, "codex"},
		}
		if in.ClaudeSettingsPath, err = claudeSettingsPath(global, ""); err != nil {
			rt.Logger.Warn().Err(err).Msg("skipping claude hook check")
		}
		if in.CodexConfigPath, err = codex.ConfigPath(); err != nil {
			rt.Logger.Warn().Err(err).Msg("skipping codex notify check")
		}

		report := health.RunHealthChecks(in)
		fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

		if !report.Passed {
			return errors.New("some enabled channels cannot deliver")
		}
		return nil
	},
}

func init() {
	doctorCmd.GroupID = shared.GroupSetup
	doctorCmd.Flags().Bool("global", false, "Check "+claude.SettingsDir+"/"+claude.SettingsFileName+" in the home directory instead of the project")
	doctorCmd.Flags().String("command", DefaultCommand, "Command expected in agent configuration")
}
