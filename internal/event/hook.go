package event

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// HookPayload is the JSON document Claude Code writes to a hook's stdin.
// Unknown fields are ignored.
type HookPayload struct {
	SessionID        looseString `json:"session_id"`
	TranscriptPath   looseString `json:"transcript_path"`
	Cwd              looseString `json:"cwd"`
	HookEventName    looseString `json:"hook_event_name"`
	NotificationType looseString `json:"notification_type"`
	Message          looseString `json:"message"`
}

// DecodeHook parses a hook payload. Empty input yields ErrNoInput.
func DecodeHook(data []byte) (*HookPayload, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoInput
	}

	var p HookPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing hook payload: %w", err)
	}
	return &p, nil
}

// FromHook builds an Event from a hook payload. fallback is used when the
// hook carries no message of its own.
func FromHook(p *HookPayload, fallback string) Event {
	ev := Event{
		Source:         SourceHook,
		Name:           string(p.HookEventName),
		TranscriptPath: string(p.TranscriptPath),
		Cwd:            string(p.Cwd),
		SessionID:      string(p.SessionID),
	}
	if ev.Name == HookNotification {
		ev.Subtype = string(p.NotificationType)
	}
	ev.Text = hookMessage(p, fallback)
	return ev
}

// hookMessage derives the notification text for a hook event.
func hookMessage(p *HookPayload, fallback string) string {
	if fallback == "" {
		fallback = DefaultMessage
	}

	switch string(p.HookEventName) {
	case HookNotification:
		if p.Message != "" {
			return string(p.Message)
		}
	case HookStop:
		if summary := LastUserPrompt(string(p.TranscriptPath)); summary != "" {
			return "已完成: " + summary
		}
		return "任务已完成"
	case HookSubagentStop:
		if summary := LastUserPrompt(string(p.TranscriptPath)); summary != "" {
			return "子任务完成: " + summary
		}
		return "子任务已完成"
	}
	return fallback
}
