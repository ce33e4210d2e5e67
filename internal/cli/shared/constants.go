// Package shared provides constants and types used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output
const (
	GroupNotify        = "notify"
	GroupSetup         = "setup"
	GroupConfiguration = "configuration"
)

// Exit codes for CLI commands.
// Delivery failures never change the exit code: hooks must not break the
// agent that invoked them.
const (
	ExitSuccess          = 0
	ExitFailure          = 1
	ExitInvalidArguments = 3
)

// exitError is a custom error type that carries an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// WithExitCode attaches an exit code to err. A nil err stays nil.
func WithExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// InvalidArgs marks err as a usage error (exit code 3).
func InvalidArgs(err error) error {
	return WithExitCode(ExitInvalidArguments, err)
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitFailure
}

// Args wraps a positional argument validator so its errors exit with code 3.
func Args(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return InvalidArgs(validate(cmd, args))
	}
}
