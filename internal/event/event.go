package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Source identifies which upstream encoding produced an Event.
type Source string

const (
	// SourceHook is a Claude Code hook payload read from stdin.
	SourceHook Source = "hook-json"
	// SourceCodex is a Codex CLI notify payload passed as an argument.
	SourceCodex Source = "codex-json"
	// SourceFlags is free text supplied through command-line flags.
	SourceFlags Source = "cli-text"
)

// Hook event names that carry dedicated message handling.
const (
	HookNotification = "Notification"
	HookStop         = "Stop"
	HookSubagentStop = "SubagentStop"
)

// DefaultMessage is used when no upstream source supplied any text.
const DefaultMessage = "Claude Code任务已完成"

var (
	// ErrNoInput is returned when stdin carried no usable payload.
	ErrNoInput = errors.New("no input")
	// ErrIgnored is returned for upstream events agentnotify does not notify on.
	ErrIgnored = errors.New("event ignored")
)

// Event is the normalized description of one upstream event.
// It is built once per invocation and never modified afterwards.
type Event struct {
	Source Source
	// Name is the upstream event name used for audio cue lookup (e.g. "Stop").
	Name string
	// Subtype refines Name for Notification hooks (e.g. "permission_prompt").
	Subtype string
	// Text is the human-readable message the notification is built from.
	Text           string
	TranscriptPath string
	Cwd            string
	SessionID      string
}

// FromFlags builds an Event from command-line flags.
// An empty message falls back to DefaultMessage.
func FromFlags(message, name, subtype string) Event {
	text := strings.TrimSpace(message)
	if text == "" {
		text = DefaultMessage
	}
	return Event{
		Source:  SourceFlags,
		Name:    name,
		Subtype: subtype,
		Text:    text,
	}
}

// Summarize keeps the first limit runes of text, collapses newlines to
// spaces and trims the result. An ellipsis is appended when text was longer
// than limit.
func Summarize(text string, limit int) string {
	runes := []rune(text)
	cut := runes
	if len(runes) > limit {
		cut = runes[:limit]
	}

	summary := strings.TrimSpace(strings.ReplaceAll(string(cut), "\n", " "))
	if len(runes) > limit {
		summary += "..."
	}
	return summary
}

// looseString decodes any JSON scalar into its text form.
// null and objects decode to the empty string.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = looseString(str)
	case '{', '[':
		*s = ""
	default:
		*s = looseString(data)
	}
	return nil
}

// contentBlock is one element of an array-shaped message content.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// flattenContent converts a message content value to plain text.
// Strings are returned as-is, block arrays contribute their text blocks
// joined by newlines, any other shape yields the empty string.
func flattenContent(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '[':
		var blocks []contentBlock
		if err := json.Unmarshal(raw, &blocks); err != nil {
			return ""
		}
		var texts []string
		for _, b := range blocks {
			if b.Type == "text" {
				texts = append(texts, b.Text)
			}
		}
		return strings.Join(texts, "\n")
	default:
		return ""
	}
}
