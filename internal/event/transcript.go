package event

import (
	"bytes"
	"encoding/json"
	"os"
)

// SummaryLimit is the rune limit for task summaries taken from transcripts
// and Codex input messages.
const SummaryLimit = 100

// transcriptLine is the subset of a transcript JSONL entry we read.
type transcriptLine struct {
	Type    string `json:"type"`
	Message struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

// LastUserPrompt returns a summary of the most recent user-authored entry
// in a newline-delimited JSON transcript, or "" when none can be found.
// Unreadable files and malformed lines are skipped.
func LastUserPrompt(transcriptPath string) string {
	if transcriptPath == "" {
		return ""
	}

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return ""
	}

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if len(line) == 0 {
			continue
		}

		var tl transcriptLine
		if json.Unmarshal(line, &tl) != nil {
			continue
		}
		if tl.Type != "user" {
			continue
		}

		if text := flattenContent(tl.Message.Content); text != "" {
			return Summarize(text, SummaryLimit)
		}
	}
	return ""
}
