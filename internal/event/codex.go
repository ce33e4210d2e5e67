package event

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CodexTurnComplete is the only Codex notify type agentnotify reacts to.
const CodexTurnComplete = "agent-turn-complete"

// codexAssistantLimit bounds summaries taken from last-assistant-message.
const codexAssistantLimit = 80

// CodexDefaultMessage is used when a Codex payload carries no usable text.
const CodexDefaultMessage = "Codex 任务已完成"

// CodexPayload is the JSON document Codex passes to its notify program.
type CodexPayload struct {
	Type                 string            `json:"type"`
	ThreadID             string            `json:"thread-id"`
	TurnID               string            `json:"turn-id"`
	Cwd                  string            `json:"cwd"`
	InputMessages        []json.RawMessage `json:"input-messages"`
	LastAssistantMessage looseString       `json:"last-assistant-message"`
}

// codexMessage is the record form of an input-messages entry.
type codexMessage struct {
	Content json.RawMessage `json:"content"`
	Text    looseString     `json:"text"`
}

// ParseCodex decodes the Codex argument. An empty argument returns a nil
// payload and no error; malformed JSON returns an error.
func ParseCodex(arg string) (*CodexPayload, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, nil
	}

	var p CodexPayload
	if err := json.Unmarshal([]byte(arg), &p); err != nil {
		return nil, fmt.Errorf("parsing codex payload: %w", err)
	}
	return &p, nil
}

// FromCodex builds an Event from a Codex payload. A nil payload produces the
// default message. Payloads of any type other than CodexTurnComplete
// return ErrIgnored.
func FromCodex(p *CodexPayload) (Event, error) {
	ev := Event{
		Source: SourceCodex,
		Name:   HookStop,
		Text:   CodexDefaultMessage,
	}
	if p == nil {
		return ev, nil
	}

	if p.Type != CodexTurnComplete {
		return Event{}, fmt.Errorf("codex event %q: %w", p.Type, ErrIgnored)
	}

	ev.Cwd = p.Cwd
	ev.SessionID = p.ThreadID
	if summary := p.Summary(); summary != "" {
		ev.Text = "已完成: " + summary
	}
	return ev, nil
}

// Summary returns the task summary: the last non-empty input message, or
// the last assistant message when no input message has text.
func (p *CodexPayload) Summary() string {
	for i := len(p.InputMessages) - 1; i >= 0; i-- {
		if text := codexMessageText(p.InputMessages[i]); text != "" {
			return Summarize(text, SummaryLimit)
		}
	}

	if p.LastAssistantMessage != "" {
		return Summarize(string(p.LastAssistantMessage), codexAssistantLimit)
	}
	return ""
}

// codexMessageText extracts text from a string or {content|text} record.
func codexMessageText(raw json.RawMessage) string {
	if text := flattenContent(raw); text != "" {
		return text
	}

	var msg codexMessage
	if json.Unmarshal(raw, &msg) != nil {
		return ""
	}
	if text := flattenContent(msg.Content); text != "" {
		return text
	}
	return string(msg.Text)
}
