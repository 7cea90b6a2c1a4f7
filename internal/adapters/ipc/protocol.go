package ipc

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/mod/semver"
)

// ProtocolVersion is the envelope protocol spoken by this build.
const ProtocolVersion = "v1.0.0"

// MessageName is the logical name of an envelope on the channel.
type MessageName string

const (
	// MessageParams carries the parameters the worker invokes the method with.
	MessageParams MessageName = "params"
	// MessageResult carries the single result of the worker.
	MessageResult MessageName = "result"
)

// Envelope wraps every value exchanged between controller and worker.
type Envelope struct {
	Name      MessageName     `json:"name"`
	RequestID string          `json:"request_id,omitempty"`
	Protocol  string          `json:"protocol,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Value     json.RawMessage `json:"value,omitempty"`
	Error     string          `json:"error,omitempty"`
	ErrorKind ErrorKind       `json:"error_kind,omitempty"`
}

// ErrorKind classifies the error a worker reports.
type ErrorKind string

const (
	// ErrorKindAssertion marks a failed expectation.
	ErrorKindAssertion ErrorKind = "assertion"
	// ErrorKindUnavailable marks a method the worker could not resolve.
	ErrorKindUnavailable ErrorKind = "unavailable"
	// ErrorKindProtocol marks a channel failure seen by the worker.
	ErrorKindProtocol ErrorKind = "protocol"
	// ErrorKindError marks any other failure.
	ErrorKindError ErrorKind = "error"
)

// NewEnvelope creates an envelope with the given name and value.
func NewEnvelope(name MessageName, requestID string, value any) (*Envelope, error) {
	var raw json.RawMessage
	if value != nil {
		var err error
		raw, err = json.Marshal(value)
		if err != nil {
			return nil, err
		}
	}

	return &Envelope{
		Name:      name,
		RequestID: requestID,
		Protocol:  ProtocolVersion,
		Timestamp: time.Now().UTC(),
		Value:     raw,
	}, nil
}

// Decode unmarshals the envelope value into v. An empty value leaves v untouched.
func (e *Envelope) Decode(v any) error {
	if len(e.Value) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Value, v); err != nil {
		return &ProtocolError{Op: "decode", Err: fmt.Errorf("%w: %s value: %v", ErrDecode, e.Name, err)}
	}
	return nil
}

// CheckProtocol accepts any version with the same major as ProtocolVersion.
func CheckProtocol(version string) error {
	if !semver.IsValid(version) {
		return &ProtocolError{Op: "handshake", Err: fmt.Errorf("invalid protocol version %q", version)}
	}
	if semver.Major(version) != semver.Major(ProtocolVersion) {
		return &ProtocolError{Op: "handshake", Err: fmt.Errorf("protocol %s is incompatible with %s", version, ProtocolVersion)}
	}
	return nil
}
