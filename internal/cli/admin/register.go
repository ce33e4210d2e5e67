// Package admin provides CLI commands that register agentnotify with
// coding agents.
// Includes: install claude, install codex, doctor
package admin

import (
	"github.com/spf13/cobra"
)

// Register adds all admin commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(doctorCmd)
}
