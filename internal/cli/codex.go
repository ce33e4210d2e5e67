package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/agentnotify/agentnotify/internal/cli/shared"
	"github.com/agentnotify/agentnotify/internal/event"
	"github.com/agentnotify/agentnotify/internal/status"
)

var codexCmd = &cobra.Command{
	Use:   "codex [payload]",
	Short: "Notify from the Codex CLI notify program",
	Long: `Notify from the Codex CLI.

Codex runs its configured notify program with a JSON payload as the last
argument. Only agent-turn-complete events produce a notification; other
event types exit successfully without sending anything.`,
	Example: `  # ~/.codex/config.toml
  notify = ["agentnotify", "codex"]

  # Manual test
  agentnotify codex '{"type":"agent-turn-complete","input-messages":["fix the tests"]}'`,
	Args: shared.Args(cobra.ArbitraryArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runCodex(cmd.Context(), args, func() (*notifier, error) {
			rt, err := shared.LoadRuntime(cmd)
			if err != nil {
				return nil, err
			}
			if !rt.Config.Enabled {
				rt.Logger.Info().Msg("notifications disabled")
				return nil, nil
			}
			return newNotifier(rt, cmd.OutOrStdout(), cmd.ErrOrStderr()), nil
		})
		return err
	},
}

func init() {
	codexCmd.GroupID = shared.GroupNotify
}

// runCodex notifies for the Codex payload in the last argument. build runs
// only once a notification is due, so ignored event types never read the
// configuration; a nil notifier means notifications are off. It reports
// whether a notification was dispatched.
func runCodex(ctx context.Context, args []string, build func() (*notifier, error)) (bool, error) {
	var arg string
	if len(args) > 0 {
		arg = args[len(args)-1]
	}

	// A malformed payload is treated as no payload.
	payload, parseErr := event.ParseCodex(arg)

	ev, err := event.FromCodex(payload)
	if errors.Is(err, event.ErrIgnored) {
		return false, nil
	}

	n, err := build()
	if err != nil || n == nil {
		return false, err
	}
	if parseErr != nil {
		n.logger.Warn().Err(parseErr).Msg("ignoring malformed codex payload")
	}

	n.run(ctx, ev, status.Classify(ev.Text))
	return true, nil
}
