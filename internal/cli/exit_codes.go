package cli

import (
	"github.com/agentnotify/agentnotify/internal/cli/shared"
)

// Exit codes for the agentnotify CLI (re-exported from shared)
const (
	// ExitSuccess covers normal completion, including failed deliveries
	ExitSuccess = shared.ExitSuccess

	// ExitFailure indicates an unexpected error such as an invalid config file
	ExitFailure = shared.ExitFailure

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments
)

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
