package cli

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentnotify/agentnotify/internal/cli/shared"
	"github.com/agentnotify/agentnotify/internal/event"
	"github.com/agentnotify/agentnotify/internal/status"
)

// notifyFlags holds the root command's notification flags.
type notifyFlags struct {
	message string
	webhook string
	event   string
	subtype string
	status  string
}

func registerNotifyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("message", "m", "", "Notification text when no hook payload is piped")
	cmd.Flags().String("task", "", "Alias for --message (--message wins when both are set)")
	cmd.Flags().String("webhook", "", "Feishu webhook URL (overrides configuration)")
	cmd.Flags().String("event", "", "Event name for the audio cue (Stop, Notification, SubagentStop)")
	cmd.Flags().String("type", "", "Notification subtype for the audio cue (e.g. permission_prompt)")
	cmd.Flags().String("status", "", "Force the status: completed, failed or awaiting_input")
}

func readNotifyFlags(cmd *cobra.Command) notifyFlags {
	var f notifyFlags
	f.message, _ = cmd.Flags().GetString("message")
	if f.message == "" {
		f.message, _ = cmd.Flags().GetString("task")
	}
	f.webhook, _ = cmd.Flags().GetString("webhook")
	f.event, _ = cmd.Flags().GetString("event")
	f.subtype, _ = cmd.Flags().GetString("type")
	f.status, _ = cmd.Flags().GetString("status")
	return f
}

// stdinReader reads a hook payload; it returns event.ErrNoInput when none arrived.
type stdinReader func(ctx context.Context, idle time.Duration) ([]byte, error)

func readProcessStdin(ctx context.Context, idle time.Duration) ([]byte, error) {
	return event.ReadStdin(ctx, os.Stdin, idle)
}

func runNotify(cmd *cobra.Command, _ []string) error {
	flags := readNotifyFlags(cmd)

	var forced *status.Label
	if flags.status != "" {
		label, err := status.Parse(flags.status)
		if err != nil {
			return shared.InvalidArgs(err)
		}
		forced = &label
	}

	rt, err := shared.LoadRuntime(cmd)
	if err != nil {
		return err
	}

	if flags.webhook != "" {
		if noPush, _ := cmd.Flags().GetBool("no-push"); !noPush {
			rt.Config.Feishu.WebhookURL = strings.TrimSpace(flags.webhook)
			rt.Config.Feishu.Enabled = true
		}
	}

	if !rt.Config.Enabled {
		rt.Logger.Info().Msg("notifications disabled")
		return nil
	}

	ctx := cmd.Context()
	ev := resolveEvent(ctx, readProcessStdin, rt.Config.StdinTimeout, flags, rt.Logger)

	label := status.Classify(ev.Text)
	if forced != nil {
		label = *forced
	}

	newNotifier(rt, cmd.OutOrStdout(), cmd.ErrOrStderr()).run(ctx, ev, label)
	return nil
}

// resolveEvent prefers a hook payload on stdin and falls back to the flags.
// The message flag doubles as the fallback text of hook events without
// a message of their own.
func resolveEvent(ctx context.Context, read stdinReader, idle time.Duration, f notifyFlags, logger zerolog.Logger) event.Event {
	data, err := read(ctx, idle)
	if err != nil {
		logger.Debug().Err(err).Msg("no hook payload on stdin")
		return event.FromFlags(f.message, f.event, f.subtype)
	}

	payload, err := event.DecodeHook(data)
	if err != nil {
		if !errors.Is(err, event.ErrNoInput) {
			logger.Warn().Err(err).Msg("ignoring malformed hook payload")
		}
		return event.FromFlags(f.message, f.event, f.subtype)
	}

	ev := event.FromHook(payload, f.message)
	logger.Debug().
		Str("hook", ev.Name).
		Str("session", ev.SessionID).
		Msg("hook payload received")
	return ev
}
