package status

import (
	"fmt"
	"regexp"
	"strings"
)

// Label is the status classification of a single event.
type Label int

const (
	// Completed indicates the task finished normally. It is the fallback label.
	Completed Label = iota
	// Failed indicates the text reports an error.
	Failed
	// AwaitingInput indicates the agent is blocked on the operator.
	AwaitingInput
)

// String returns the English name of the label.
func (l Label) String() string {
	switch l {
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case AwaitingInput:
		return "awaiting_input"
	default:
		return "unknown"
	}
}

// Word returns the label as shown in notification titles.
func (l Label) Word() string {
	switch l {
	case Failed:
		return "失败"
	case AwaitingInput:
		return "等待输入"
	default:
		return "完成"
	}
}

// awaitingKeywords are checked before failure keywords.
var awaitingKeywords = []string{
	"permission",
	"权限",
	"idle",
	"等待",
	"elicitation",
	"请输入",
	"waiting for",
}

var failedKeywords = []string{
	"error",
	"失败",
	"exception",
	"502",
	"bad gateway",
}

var http5xxPattern = regexp.MustCompile(`http\s*5\d{2}`)

// Classify maps text to a Label. It never fails.
func Classify(text string) Label {
	lower := strings.ToLower(text)

	if containsAny(lower, awaitingKeywords) {
		return AwaitingInput
	}

	if containsAny(lower, failedKeywords) || http5xxPattern.MatchString(lower) {
		return Failed
	}

	return Completed
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Parse converts an English name or a display word back to a Label.
func Parse(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed", "done", "完成":
		return Completed, nil
	case "failed", "error", "失败":
		return Failed, nil
	case "awaiting_input", "awaiting", "waiting", "等待输入":
		return AwaitingInput, nil
	default:
		return Completed, fmt.Errorf("unknown status %q (valid: completed, failed, awaiting_input)", s)
	}
}
