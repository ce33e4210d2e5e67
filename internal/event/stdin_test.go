package event

import (
	"context"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWithIdleTimeout(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    string
		wantErr error
	}{
		"single line": {
			input: `{"hook_event_name":"Stop"}` + "\n",
			want:  `{"hook_event_name":"Stop"}` + "\n",
		},
		"no trailing newline": {
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		"multiple lines": {
			input: "{\n\"a\": 1\n}\n",
			want:  "{\n\"a\": 1\n}\n",
		},
		"empty input": {
			input:   "",
			wantErr: ErrNoInput,
		},
		"whitespace only": {
			input:   "  \n\n",
			wantErr: ErrNoInput,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ReadWithIdleTimeout(context.Background(), strings.NewReader(tc.input), time.Second)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestReadWithIdleTimeout_IdleExpiry(t *testing.T) {
	t.Parallel()

	// The writer never closes, so only the idle timer can end the read.
	pr, pw := io.Pipe()
	defer pw.Close()

	start := time.Now()
	got, err := ReadWithIdleTimeout(context.Background(), pr, 50*time.Millisecond)

	assert.ErrorIs(t, err, ErrNoInput)
	assert.Nil(t, got)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestReadWithIdleTimeout_ContextCancelled(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadWithIdleTimeout(ctx, pr, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

// Not parallel: counts goroutines.
func TestReadWithIdleTimeout_ReaderExitsAfterExpiry(t *testing.T) {
	baseline := runtime.NumGoroutine()

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	_, err := ReadWithIdleTimeout(context.Background(), pr, 20*time.Millisecond)
	require.ErrorIs(t, err, ErrNoInput)

	// A line arriving after expiry must not park the reader forever.
	_, err = pw.Write([]byte("late\n"))
	require.NoError(t, err)

	// Eventually evaluates the condition on a goroutine of its own.
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= baseline+1
	}, 2*time.Second, 10*time.Millisecond)
}
