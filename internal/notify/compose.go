package notify

import (
	"strings"
	"time"

	"github.com/agentnotify/agentnotify/internal/event"
	"github.com/agentnotify/agentnotify/internal/status"
)

const (
	// DefaultProjectTitle replaces an empty project name in titles.
	DefaultProjectTitle = "任务通知"

	// TimestampLayout formats notification timestamps as MM-DD HH:mm.
	TimestampLayout = "01-02 15:04"

	completedDetailLimit = 200
	failedDetailLimit    = 500
	ellipsis             = "..."
)

// Compose builds the canonical notification for an event.
//
// The body always starts with the timestamp line, followed by lines chosen
// by status:
//
//	Completed:     status line + detail truncated to 200 runes
//	Failed:        error line truncated to 500 runes
//	AwaitingInput: reason line + full detail
//
// A non-empty terminal label prefixes the detail ("<terminal>，<text>") and
// becomes the audio voice prefix; it never appears in the title.
func Compose(ev event.Event, label status.Label, project, terminal string, now time.Time) Notification {
	if project == "" {
		project = DefaultProjectTitle
	}

	detail := ev.Text
	if terminal != "" {
		detail = terminal + "，" + detail
	}

	timestamp := now.Local().Format(TimestampLayout)

	lines := []string{"■ 时间：" + timestamp}
	switch label {
	case status.Failed:
		lines = append(lines, "■ 错误："+truncate(detail, failedDetailLimit))
	case status.AwaitingInput:
		lines = append(lines,
			"■ 原因：需要你的输入",
			"■ 详情："+detail,
		)
	default:
		lines = append(lines,
			"■ 状态：任务已完成",
			"■ 详情："+truncate(detail, completedDetailLimit),
		)
	}

	return Notification{
		Status:      label,
		Title:       "【" + label.Word() + "】" + project,
		Body:        strings.Join(lines, "\n"),
		Timestamp:   timestamp,
		Cue:         Cue{Event: ev.Name, Subtype: ev.Subtype},
		VoicePrefix: terminal,
	}
}

// truncate keeps the first limit runes of s and appends an ellipsis when
// anything was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}
