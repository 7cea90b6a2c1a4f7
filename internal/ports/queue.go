package ports

import "context"

// MessageQueue is a one-directional-per-side message channel between the
// controller and a worker process. Messages are JSON-compatible values.
type MessageQueue interface {
	// Write appends one message. It never blocks on the peer.
	Write(ctx context.Context, v any) error
	// Read blocks until the next message arrives or the queue's read
	// timeout elapses, and returns the decoded value.
	Read(ctx context.Context) (any, error)
	// ReadInto is Read decoding into v.
	ReadInto(ctx context.Context, v any) error
}

// ResultHandle gives access to the single result of an asynchronous action.
type ResultHandle interface {
	// FetchResult returns the result, reading it on first call and
	// returning the cached outcome afterwards.
	FetchResult(ctx context.Context) (any, error)
}

// WorkerStarter runs a capability method in a separate worker process.
type WorkerStarter interface {
	Start(ctx context.Context, capability, method string, params []any) (ResultHandle, error)
}

// Process is a running child process.
type Process interface {
	Wait() error
	Kill() error
	Pid() int
}

// ProcessLauncher starts a child process without waiting for it.
type ProcessLauncher interface {
	Launch(ctx context.Context, command string, args ...string) (Process, error)
}
