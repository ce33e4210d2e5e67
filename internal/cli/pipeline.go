package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentnotify/agentnotify/internal/cli/shared"
	"github.com/agentnotify/agentnotify/internal/config"
	"github.com/agentnotify/agentnotify/internal/envinfo"
	"github.com/agentnotify/agentnotify/internal/event"
	"github.com/agentnotify/agentnotify/internal/notify"
	"github.com/agentnotify/agentnotify/internal/progress"
	"github.com/agentnotify/agentnotify/internal/status"
)

// notifier turns one event into delivered notifications.
type notifier struct {
	cfg       *config.Configuration
	logger    zerolog.Logger
	describer envinfo.Describer
	factory   notify.Factory
	display   *progress.Display
	out       io.Writer
	now       func() time.Time
	getwd     func() (string, error)
}

// newNotifier wires the production dependencies for rt. Reports go to out,
// progress and diagnostics to errOut.
func newNotifier(rt *shared.Runtime, out, errOut io.Writer) *notifier {
	var caps progress.TerminalCapabilities
	if f, ok := errOut.(*os.File); ok {
		caps = progress.DetectTerminalCapabilities(f)
	}

	return &notifier{
		cfg:    rt.Config,
		logger: rt.Logger,
		describer: envinfo.NewProbe(rt.Logger,
			envinfo.WithTerminalName(rt.Config.TerminalName),
		),
		factory: channelFactory(rt.Config, out, rt.Logger),
		display: progress.NewDisplay(caps, errOut),
		out:     out,
		now:     time.Now,
		getwd:   os.Getwd,
	}
}

// run composes the notification for ev, delivers it to every enabled
// channel, prints the report and waits out the grace period.
func (n *notifier) run(ctx context.Context, ev event.Event, label status.Label) []notify.Outcome {
	cwd := ev.Cwd
	if cwd == "" {
		if wd, err := n.getwd(); err == nil {
			cwd = wd
		}
	}

	project := n.describer.ProjectName(cwd)
	terminal := n.describer.TerminalName()
	msg := notify.Compose(ev, label, project, terminal, n.now())

	n.logger.Debug().
		Str("source", string(ev.Source)).
		Str("event", ev.Name).
		Str("status", label.String()).
		Str("project", project).
		Msg("notification composed")

	n.report(project, ev, label)

	channels := notify.BuildChannels(n.cfg.Channels(), n.factory, n.logger)
	dispatcher := notify.NewDispatcher(channels, n.cfg.GracePeriod, n.logger)

	n.display.Start("sending notification")
	outcomes := dispatcher.SendAll(ctx, msg)
	n.display.Stop()

	for _, o := range outcomes {
		n.display.Result(string(o.Channel), o.Success, o.Detail)
	}

	colors := shared.NewColors()
	fmt.Fprintf(n.out, "%s %s\n", colors.Dim("summary:"), notify.Summary(outcomes))

	n.logger.Info().
		Int("channels", len(outcomes)).
		Int("succeeded", notify.Succeeded(outcomes)).
		Msg("dispatch finished")

	if waited := dispatcher.Grace(ctx); waited > 0 {
		n.logger.Debug().Dur("waited", waited).Msg("grace period elapsed")
	}
	return outcomes
}

// report prints what is being sent.
func (n *notifier) report(project string, ev event.Event, label status.Label) {
	colors := shared.NewColors()

	eventName := ev.Name
	if eventName == "" {
		eventName = "-"
	}
	if ev.Subtype != "" {
		eventName += "/" + ev.Subtype
	}

	fmt.Fprintf(n.out, "%s %s\n", colors.Cyan("project:"), project)
	fmt.Fprintf(n.out, "%s %s\n", colors.Cyan("status: "), statusColor(colors, label))
	fmt.Fprintf(n.out, "%s %s\n", colors.Cyan("event:  "), eventName)
	fmt.Fprintf(n.out, "%s %s\n", colors.Cyan("message:"), ev.Text)
}

func statusColor(colors *shared.Colors, label status.Label) string {
	switch label {
	case status.Failed:
		return colors.Red(label.Word())
	case status.AwaitingInput:
		return colors.Yellow(label.Word())
	default:
		return colors.Green(label.Word())
	}
}
