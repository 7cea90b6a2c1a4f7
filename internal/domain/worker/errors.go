package worker

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/stepwise/internal/adapters/ipc"
	"github.com/felixgeelhaar/stepwise/internal/domain/step"
	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// ErrUnexpectedMessage is the cause of a protocol error raised when the
// peer sends a message other than the one expected.
var ErrUnexpectedMessage = errors.New("unexpected message")

// RemoteError is a failure the worker reported for the invoked method.
type RemoteError struct {
	Capability string
	Method     string
	Message    string
	Kind       ipc.ErrorKind
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("worker %s.%s: %s", e.Capability, e.Method, e.Message)
}

// Unwrap maps the reported kind back to the local error it stands for,
// so step variants treat remote failures like local ones.
func (e *RemoteError) Unwrap() error {
	switch e.Kind {
	case ipc.ErrorKindAssertion:
		return &step.AssertionError{Message: e.Message}
	case ipc.ErrorKindUnavailable:
		return ports.ErrCapabilityNotAvailable
	default:
		return nil
	}
}

// Fatal reports true for channel failures raised inside the worker.
func (e *RemoteError) Fatal() bool {
	return e.Kind == ipc.ErrorKindProtocol
}

// Assertion reports whether the worker reported a failed expectation.
func (e *RemoteError) Assertion() bool {
	return e.Kind == ipc.ErrorKindAssertion
}
