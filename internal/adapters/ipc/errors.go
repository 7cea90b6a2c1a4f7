package ipc

import (
	"errors"
	"fmt"
)

// Causes of a ProtocolError.
var (
	ErrReadTimeout  = errors.New("timed out waiting for message")
	ErrCorruptFrame = errors.New("corrupt frame")
	ErrDecode       = errors.New("payload is not valid JSON")
)

// ProtocolError is an internal-consistency failure of the channel:
// a read timeout, framing mismatch or decode failure. It is never retried.
type ProtocolError struct {
	Op   string
	Path string
	Err  error
}

// Error returns the formatted error message.
func (e *ProtocolError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("ipc %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ipc %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the cause.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Fatal marks the error as unrecoverable for step variants.
func (e *ProtocolError) Fatal() bool {
	return true
}

// IsProtocolError reports whether err is a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
