package event

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		message  string
		name     string
		subtype  string
		wantText string
	}{
		"explicit message": {
			message:  "build finished",
			name:     "Stop",
			wantText: "build finished",
		},
		"empty message uses default": {
			message:  "   ",
			wantText: DefaultMessage,
		},
		"cue is carried through": {
			message:  "waiting",
			name:     "Notification",
			subtype:  "idle_prompt",
			wantText: "waiting",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ev := FromFlags(tc.message, tc.name, tc.subtype)
			assert.Equal(t, SourceFlags, ev.Source)
			assert.Equal(t, tc.wantText, ev.Text)
			assert.Equal(t, tc.name, ev.Name)
			assert.Equal(t, tc.subtype, ev.Subtype)
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text  string
		limit int
		want  string
	}{
		"short text unchanged": {
			text:  "fix bug",
			limit: 10,
			want:  "fix bug",
		},
		"newlines collapsed and trimmed": {
			text:  "  fix\nthe bug\n",
			limit: 100,
			want:  "fix the bug",
		},
		"long text truncated with marker": {
			text:  strings.Repeat("a", 120),
			limit: 100,
			want:  strings.Repeat("a", 100) + "...",
		},
		"runes counted not bytes": {
			text:  strings.Repeat("任", 5),
			limit: 3,
			want:  "任任任...",
		},
		"exact limit has no marker": {
			text:  "abcde",
			limit: 5,
			want:  "abcde",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Summarize(tc.text, tc.limit))
		})
	}
}

func TestLooseString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"string":  {input: `{"v":"hello"}`, want: "hello"},
		"number":  {input: `{"v":42}`, want: "42"},
		"boolean": {input: `{"v":true}`, want: "true"},
		"null":    {input: `{"v":null}`, want: ""},
		"object":  {input: `{"v":{"a":1}}`, want: ""},
		"array":   {input: `{"v":[1,2]}`, want: ""},
		"absent":  {input: `{}`, want: ""},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var doc struct {
				V looseString `json:"v"`
			}
			assert.NoError(t, json.Unmarshal([]byte(tc.input), &doc))
			assert.Equal(t, tc.want, string(doc.V))
		})
	}
}

func TestFlattenContent(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw  string
		want string
	}{
		"plain string": {
			raw:  `"refactor config"`,
			want: "refactor config",
		},
		"text blocks joined": {
			raw:  `[{"type":"text","text":"one"},{"type":"image"},{"type":"text","text":"two"}]`,
			want: "one\ntwo",
		},
		"tool results only": {
			raw:  `[{"type":"tool_result","content":"ok"}]`,
			want: "",
		},
		"object": {
			raw:  `{"text":"x"}`,
			want: "",
		},
		"empty": {
			raw:  ``,
			want: "",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, flattenContent(json.RawMessage(tc.raw)))
		})
	}
}
