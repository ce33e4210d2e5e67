package util

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentnotify/agentnotify/internal/build"
)

// Tests that modify the global build.Version variable cannot run in parallel.

func TestPrintPlainVersion(t *testing.T) {
	origVersion, origCommit := build.Version, build.Commit
	build.Version, build.Commit = "v1.2.3", "abcdef0123456789"
	defer func() { build.Version, build.Commit = origVersion, origCommit }()

	var buf bytes.Buffer
	printPlainVersion(&buf)

	out := buf.String()
	assert.Contains(t, out, "agentnotify v1.2.3\n")
	assert.Contains(t, out, "commit: abcdef0123456789\n")
	assert.Contains(t, out, "go: "+runtime.Version())
	assert.Contains(t, out, "platform: "+runtime.GOOS+"/"+runtime.GOARCH)
}

func TestPrintPrettyVersion(t *testing.T) {
	origCommit := build.Commit
	build.Commit = "abcdef0123456789"
	defer func() { build.Commit = origCommit }()

	tests := map[string]struct {
		width int
	}{
		"wide terminal":   {width: 120},
		"narrow terminal": {width: 30},
		"tiny terminal":   {width: 10},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NotPanics(t, func() { printPrettyVersion(&buf, tt.width) })

			out := buf.String()
			assert.Contains(t, out, "abcdef01")
			assert.NotContains(t, out, "abcdef0123456789")
			assert.Contains(t, out, "Platform")
		})
	}
}

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit string
		want   string
	}{
		"long hash":  {commit: "0123456789abcdef", want: "01234567"},
		"short hash": {commit: "abc", want: "abc"},
		"unknown":    {commit: "unknown", want: "unknown"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateCommit(tt.commit))
		})
	}
}

func TestVersionCommand_Registered(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "version", versionCmd.Name())
	assert.Contains(t, versionCmd.Aliases, "v")
	assert.NotNil(t, versionCmd.Flags().Lookup("plain"))
}
