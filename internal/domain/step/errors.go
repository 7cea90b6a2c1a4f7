package step

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// ErrAlreadyRun is returned when Run is called on a step that already
// reached a terminal state.
var ErrAlreadyRun = errors.New("step already run")

// AssertionError is the failure signal of an assertion. Capability
// actions return it when an expectation does not hold.
type AssertionError struct {
	Message  string
	Expected any
	Actual   any
}

// Error returns the assertion message.
func (e *AssertionError) Error() string {
	return e.Message
}

// Failf creates an AssertionError with a formatted message.
func Failf(format string, args ...any) *AssertionError {
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}

// Mismatch creates an AssertionError describing an expected/actual pair.
func Mismatch(message string, expected, actual any) *AssertionError {
	return &AssertionError{
		Message:  fmt.Sprintf("%s: expected %#v, got %#v", message, expected, actual),
		Expected: expected,
		Actual:   actual,
	}
}

// IsAssertion reports whether err carries an AssertionError.
func IsAssertion(err error) bool {
	var assertionErr *AssertionError
	return errors.As(err, &assertionErr)
}

// ConditionalFailure is the non-fatal form of an assertion failure.
// Scenarios record it and keep running.
type ConditionalFailure struct {
	Action string
	Trace  Trace
	Err    *AssertionError
}

// Error returns the formatted failure.
func (e *ConditionalFailure) Error() string {
	return fmt.Sprintf("conditional assertion %s failed: %s", e.Action, e.Err.Error())
}

// Unwrap returns the assertion failure.
func (e *ConditionalFailure) Unwrap() error {
	return e.Err
}

// IsConditional reports whether err is a non-fatal conditional failure.
func IsConditional(err error) bool {
	var cf *ConditionalFailure
	return errors.As(err, &cf)
}

// fatal is implemented by errors that must never be recovered, such as
// IPC protocol errors.
type fatal interface {
	Fatal() bool
}

// Recoverable reports whether a variant may catch err. Capability
// resolution errors, fatal errors and context cancellation always surface.
func Recoverable(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ports.ErrCapabilityNotAvailable) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var f fatal
	if errors.As(err, &f) && f.Fatal() {
		return false
	}
	return true
}
