package event

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// DefaultStdinTimeout is how long ReadStdin waits for the next line.
const DefaultStdinTimeout = time.Second

// ReadStdin reads the hook payload from in. It returns ErrNoInput when in
// is a terminal, when nothing was written, or when no line arrives within
// idle of the previous one.
func ReadStdin(ctx context.Context, in *os.File, idle time.Duration) ([]byte, error) {
	if term.IsTerminal(int(in.Fd())) {
		return nil, ErrNoInput
	}
	return ReadWithIdleTimeout(ctx, in, idle)
}

// ReadWithIdleTimeout reads r line by line until EOF. Each received line
// resets the idle timer; expiry discards what was read and returns
// ErrNoInput. A reading goroutine still blocked in r after expiry exits as
// soon as its next read returns.
//
// Concurrency pattern: reader goroutine + line channel + select on a
// resettable timer, the same shape as the notify dispatch timeout.
func ReadWithIdleTimeout(ctx context.Context, r io.Reader, idle time.Duration) ([]byte, error) {
	if idle <= 0 {
		idle = DefaultStdinTimeout
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan []byte)
	done := make(chan error, 1)
	go func() {
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadBytes('\n')
			if len(line) > 0 {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				done <- err
				return
			}
		}
	}()

	var buf bytes.Buffer
	timer := time.NewTimer(idle)
	defer timer.Stop()

	for {
		select {
		case line := <-lines:
			buf.Write(line)
			timer.Reset(idle)
		case err := <-done:
			if err != nil {
				return nil, err
			}
			if len(bytes.TrimSpace(buf.Bytes())) == 0 {
				return nil, ErrNoInput
			}
			return buf.Bytes(), nil
		case <-timer.C:
			return nil, ErrNoInput
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
