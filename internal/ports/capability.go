// Package ports defines the interfaces the step core consumes from the
// outside world: capability providers, message queues, worker processes,
// commands, the filesystem and logging.
package ports

import (
	"context"
	"errors"
)

// ErrCapabilityNotAvailable is returned when no provider exposes an action.
// It is never recovered by step variants.
var ErrCapabilityNotAvailable = errors.New("capability not available")

// Action is a named operation exposed by a capability provider.
type Action func(ctx context.Context, args ...any) (any, error)

// CapabilityResolver resolves an action name to a callable.
type CapabilityResolver interface {
	Resolve(action string) (Action, error)
}

// ResolverFunc adapts a function to CapabilityResolver.
type ResolverFunc func(action string) (Action, error)

// Resolve calls f(action).
func (f ResolverFunc) Resolve(action string) (Action, error) {
	return f(action)
}
