package notify

import (
	"context"
	"fmt"

	"github.com/agentnotify/agentnotify/internal/status"
)

// Kind identifies a channel variant.
type Kind string

const (
	// KindPush delivers through a remote webhook.
	KindPush Kind = "push"
	// KindAudio plays a local sound and speech alert.
	KindAudio Kind = "audio"
)

// ValidKind checks if the given string is a known channel kind
func ValidKind(s string) bool {
	switch Kind(s) {
	case KindPush, KindAudio:
		return true
	default:
		return false
	}
}

// Push message styles.
const (
	StyleText = "text"
	StylePost = "post"
	StyleCard = "card"
)

// ChannelConfig is the read-only configuration of one channel.
type ChannelConfig struct {
	Kind    Kind
	Enabled bool
	// Endpoint is the webhook URL for push channels. Unused for audio.
	Endpoint string
	// Secret is the optional push signing secret.
	Secret string
	// Style selects the push message type: text, post or card.
	Style string
}

// Cue selects the audio alert for a notification.
type Cue struct {
	// Event is the upstream event name (e.g. "Stop", "Notification").
	Event string
	// Subtype refines Notification events (e.g. "permission_prompt").
	Subtype string
}

// Notification is the canonical record every channel consumes.
// It is never modified after Compose returns it.
type Notification struct {
	Status status.Label
	Title  string
	Body   string
	// Timestamp is the formatted creation time (MM-DD HH:mm).
	Timestamp string

	// Cue and VoicePrefix drive the audio channel.
	Cue         Cue
	VoicePrefix string
}

// Channel delivers a notification through one medium.
// Deliver must not panic and must return promptly for audio channels;
// failures are reported through the returned error only.
type Channel interface {
	Kind() Kind
	Deliver(ctx context.Context, n Notification) error
}

// Outcome records the result of one channel invocation.
type Outcome struct {
	Channel Kind
	Success bool
	// Detail describes the failure; empty on success.
	Detail string
}

// String renders the outcome for logs.
func (o Outcome) String() string {
	if o.Success {
		return fmt.Sprintf("%s: ok", o.Channel)
	}
	return fmt.Sprintf("%s: failed (%s)", o.Channel, o.Detail)
}
