// agentnotify - task completion notifications for coding-agent CLIs

// Package cli provides the Cobra command tree for agentnotify.
// The root command is the notification entry point used by Claude Code
// hooks; subcommands cover the Codex notify program, the standalone sound
// alert, hook installation, configuration and version output.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentnotify/agentnotify/internal/cli/admin"
	"github.com/agentnotify/agentnotify/internal/cli/config"
	"github.com/agentnotify/agentnotify/internal/cli/shared"
	"github.com/agentnotify/agentnotify/internal/cli/util"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupNotify        = shared.GroupNotify
	GroupSetup         = shared.GroupSetup
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = &cobra.Command{
	Use:   "agentnotify",
	Short: "Send task notifications for coding agents",
	Long: `agentnotify sends a notification when a coding agent finishes a task,
fails, or needs your input.

Claude Code hooks pipe their payload on stdin; without stdin the message
comes from --message. Notifications go to a Feishu webhook (push) and to a
local sound and voice alert (audio).`,
	Example: `  # Called by a Claude Code hook (payload on stdin)
  echo '{"hook_event_name":"Stop","transcript_path":"..."}' | agentnotify

  # Manual notification
  agentnotify --message "Build finished"

  # Force a status and send to a specific webhook
  agentnotify --status failed --message "deploy broke" --webhook https://open.feishu.cn/open-apis/bot/v2/hook/xxx

  # Push only, no sound
  agentnotify --no-sound --message "done"`,
	Args:         shared.Args(cobra.NoArgs),
	SilenceUsage: true,
	RunE:         runNotify,
}

// Execute runs the root command. Interrupts cancel the command context so
// in-flight deliveries and the grace wait stop early.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Define command groups in display order
	rootCmd.AddGroup(&cobra.Group{ID: GroupNotify, Title: "Notifications:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupSetup, Title: "Setup:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Usage errors exit with code 3
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return shared.InvalidArgs(err)
	})

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to local config file (default .agentnotify/config.json)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-push", false, "Disable the push channel")
	rootCmd.PersistentFlags().Bool("no-sound", false, "Disable the audio channel")

	registerNotifyFlags(rootCmd)

	rootCmd.AddCommand(codexCmd)
	rootCmd.AddCommand(soundCmd)

	// Register commands from subpackages
	admin.Register(rootCmd)
	config.Register(rootCmd)
	util.Register(rootCmd)
}
