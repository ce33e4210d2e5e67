package notify

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MockChannel is a recording Channel for dispatcher tests.
// It records all Deliver calls and allows configuring the result.
type MockChannel struct {
	mu sync.Mutex

	kind  Kind
	err   error
	delay time.Duration
	panic bool

	Calls []Notification
}

// NewMockChannel creates a mock channel of the given kind that succeeds.
func NewMockChannel(kind Kind) *MockChannel {
	return &MockChannel{kind: kind}
}

// WithError configures the mock to fail with err
func (m *MockChannel) WithError(err error) *MockChannel {
	m.err = err
	return m
}

// WithDelay configures the mock to block for d before returning
func (m *MockChannel) WithDelay(d time.Duration) *MockChannel {
	m.delay = d
	return m
}

// WithPanic configures the mock to panic on delivery
func (m *MockChannel) WithPanic() *MockChannel {
	m.panic = true
	return m
}

// Kind implements Channel.
func (m *MockChannel) Kind() Kind { return m.kind }

// Deliver records the call and returns the configured error.
func (m *MockChannel) Deliver(_ context.Context, n Notification) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, n)
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.panic {
		panic("mock channel panic")
	}
	return m.err
}

// CallCount returns the number of Deliver calls.
func (m *MockChannel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockLauncher records launched programs.
type MockLauncher struct {
	mu sync.Mutex

	// Fail maps program names to launch errors.
	Fail map[string]error

	Started [][]string
}

// NewMockLauncher creates a launcher that starts everything successfully.
func NewMockLauncher() *MockLauncher {
	return &MockLauncher{Fail: make(map[string]error)}
}

// Start records the call and returns the configured error for name.
func (m *MockLauncher) Start(name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Started = append(m.Started, append([]string{name}, args...))
	return m.Fail[name]
}

// Programs returns the names of all launched programs.
func (m *MockLauncher) Programs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.Started))
	for _, s := range m.Started {
		names = append(names, s[0])
	}
	return names
}

// Common test errors
var (
	ErrMockTransport = errors.New("mock transport error")
	ErrMockLaunch    = errors.New("executable file not found in $PATH")
)
