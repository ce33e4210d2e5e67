// Package notify builds canonical notifications and delivers them through
// the configured channels.
//
// The package implements the core of agentnotify: Compose turns a classified
// event into a Notification, and a Dispatcher fans that Notification out to
// every enabled Channel. Two channel kinds exist:
//
//   - push: a remote webhook (implemented in package feishu)
//   - audio: a local sound cue plus synthesized speech (AudioChannel)
//
// # Delivery model
//
// Delivery is best-effort and single-shot. Push channels run concurrently and
// are joined before SendAll returns; one channel's failure never cancels
// another. Audio channels only launch their players and never wait for
// playback. Callers finish with Dispatcher.Grace, which blocks for the
// configured grace period so detached players get a chance to finish.
//
// # Platform Support
//
//   - macOS: afplay for the sound cue, say for speech
//   - Windows: PowerShell System.Speech with a [console]::Beep fallback
//   - Other: terminal bell
//
// # Usage
//
//	n := notify.Compose(ev, status.Classify(ev.Text), "demo", "", time.Now())
//	d := notify.NewDispatcher(channels, 3*time.Second, logger)
//	outcomes := d.SendAll(ctx, n)
//	fmt.Println(notify.Summary(outcomes))
//	d.Grace(ctx)
package notify
