package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentnotify/agentnotify/internal/cli/shared"
	"github.com/agentnotify/agentnotify/internal/event"
	"github.com/agentnotify/agentnotify/internal/notify"
	"github.com/agentnotify/agentnotify/internal/status"
)

var soundCmd = &cobra.Command{
	Use:   "sound",
	Short: "Play the audio alert only",
	Long: `Play the local sound and voice alert for an event without sending a
push notification. The sound.enabled setting is ignored: asking for a sound
always plays one.`,
	Example: `  # Default alert
  agentnotify sound

  # Completion sound
  agentnotify sound --event Stop

  # Permission prompt, spoken with a terminal prefix
  agentnotify sound --event Notification --type permission_prompt --prefix "iTerm"`,
	Args: shared.Args(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		eventName, _ := cmd.Flags().GetString("event")
		subtype, _ := cmd.Flags().GetString("type")
		prefix, _ := cmd.Flags().GetString("prefix")

		rt, err := shared.LoadRuntime(cmd)
		if err != nil {
			return err
		}

		factory := channelFactory(rt.Config, cmd.OutOrStdout(), rt.Logger)
		audio, err := factory(notify.ChannelConfig{Kind: notify.KindAudio, Enabled: true})
		if err != nil {
			return err
		}

		d := notify.NewDispatcher([]notify.Channel{audio}, rt.Config.GracePeriod, rt.Logger)
		outcomes := playSound(cmd.Context(), d, eventName, subtype, prefix)

		fmt.Fprintln(cmd.OutOrStdout(), notify.Summary(outcomes))
		d.Grace(cmd.Context())
		return nil
	},
}

func init() {
	soundCmd.GroupID = shared.GroupNotify
	soundCmd.Flags().String("event", "", "Event name selecting the cue (default cue when empty)")
	soundCmd.Flags().String("type", "", "Notification subtype selecting the cue")
	soundCmd.Flags().String("prefix", "", "Text spoken before the cue phrase")
}

// playSound sends an audio-only notification for the given cue.
func playSound(ctx context.Context, d *notify.Dispatcher, eventName, subtype, prefix string) []notify.Outcome {
	ev := event.FromFlags("", eventName, subtype)
	n := notify.Compose(ev, status.Completed, "", prefix, time.Now())
	return d.SendAll(ctx, n)
}
