package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultGracePeriod is how long Grace waits before the process may exit.
const DefaultGracePeriod = 3 * time.Second

// Factory creates the channel for an enabled configuration.
type Factory func(cfg ChannelConfig) (Channel, error)

// BuildChannels creates channels for every enabled configuration, keeping
// the configuration order. Disabled configurations are skipped; factory
// errors are logged and the channel is left out.
func BuildChannels(configs []ChannelConfig, factory Factory, logger zerolog.Logger) []Channel {
	var channels []Channel
	for _, cfg := range configs {
		if !cfg.Enabled {
			logger.Debug().Str("channel", string(cfg.Kind)).Msg("channel disabled")
			continue
		}
		ch, err := factory(cfg)
		if err != nil {
			logger.Warn().Err(err).Str("channel", string(cfg.Kind)).Msg("channel unavailable")
			continue
		}
		channels = append(channels, ch)
	}
	return channels
}

// Dispatcher delivers one notification to a fixed set of channels.
type Dispatcher struct {
	channels []Channel
	grace    time.Duration
	sleep    func(ctx context.Context, d time.Duration)
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher for channels, in registration order.
// A zero or negative grace disables the exit grace wait.
func NewDispatcher(channels []Channel, grace time.Duration, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		grace:    grace,
		sleep:    sleepContext,
		logger:   logger,
	}
}

// SendAll delivers n to every channel and returns one outcome per channel in
// registration order.
//
// Concurrency pattern: errgroup.Group fan-out with no derived context, so
// a failing push never cancels the others. Each goroutine writes only its
// own slice index. Audio channels are called inline because they only
// launch detached players.
func (d *Dispatcher) SendAll(ctx context.Context, n Notification) []Outcome {
	outcomes := make([]Outcome, len(d.channels))

	var g errgroup.Group
	for i, ch := range d.channels {
		i, ch := i, ch
		if ch.Kind() == KindAudio {
			outcomes[i] = d.deliver(ctx, ch, n)
			continue
		}
		g.Go(func() error {
			outcomes[i] = d.deliver(ctx, ch, n)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// deliver invokes one channel and converts its result into an Outcome.
func (d *Dispatcher) deliver(ctx context.Context, ch Channel, n Notification) (out Outcome) {
	out = Outcome{Channel: ch.Kind()}

	defer func() {
		if r := recover(); r != nil {
			out.Success = false
			out.Detail = fmt.Sprintf("panic: %v", r)
			d.logger.Error().Str("channel", string(out.Channel)).Interface("panic", r).Msg("channel panicked")
		}
	}()

	if err := ch.Deliver(ctx, n); err != nil {
		out.Detail = err.Error()
		d.logger.Warn().Err(err).Str("channel", string(out.Channel)).Msg("delivery failed")
		return out
	}

	out.Success = true
	d.logger.Debug().Str("channel", string(out.Channel)).Msg("delivered")
	return out
}

// Grace blocks for the configured grace period or until ctx is done and
// returns how long it waited. It gives detached audio players time to
// finish; it does not observe them.
func (d *Dispatcher) Grace(ctx context.Context) time.Duration {
	if d.grace <= 0 {
		return 0
	}
	start := time.Now()
	d.sleep(ctx, d.grace)
	return time.Since(start)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Summary renders success and failure counts per channel kind, in the order
// kinds first appear.
func Summary(outcomes []Outcome) string {
	if len(outcomes) == 0 {
		return "no channels enabled"
	}

	type tally struct{ ok, failed int }
	var order []Kind
	counts := make(map[Kind]*tally)

	for _, o := range outcomes {
		t, seen := counts[o.Channel]
		if !seen {
			t = &tally{}
			counts[o.Channel] = t
			order = append(order, o.Channel)
		}
		if o.Success {
			t.ok++
		} else {
			t.failed++
		}
	}

	parts := make([]string, 0, len(order))
	for _, k := range order {
		t := counts[k]
		parts = append(parts, fmt.Sprintf("%s: %d ok, %d failed", k, t.ok, t.failed))
	}
	return strings.Join(parts, "; ")
}

// Succeeded counts successful outcomes.
func Succeeded(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Success {
			n++
		}
	}
	return n
}
