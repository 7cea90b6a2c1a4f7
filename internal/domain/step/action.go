package step

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// ActionStep invokes an action and returns its result unchanged. Any
// error propagates as is.
type ActionStep struct {
	base
}

// NewAction creates a plain action step.
func NewAction(action string, args []any, opts ...Option) *ActionStep {
	return &ActionStep{base: newBase(KindAction, action, args, opts)}
}

// Run dispatches the action.
func (s *ActionStep) Run(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	return s.run(ctx, resolver, s.dispatch)
}

func (s *ActionStep) dispatch(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	return invoke(ctx, resolver, s.action, s.args)
}

// AssertionStep dispatches exactly like ActionStep. An AssertionError
// returned by the action is the expected failure signal and is not
// caught here.
type AssertionStep struct {
	base
}

// NewAssertion creates an assertion step.
func NewAssertion(action string, args []any, opts ...Option) *AssertionStep {
	return &AssertionStep{base: newBase(KindAssertion, action, args, opts)}
}

// Run dispatches the assertion.
func (s *AssertionStep) Run(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	return s.run(ctx, resolver, s.dispatch)
}

func (s *AssertionStep) dispatch(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	return invoke(ctx, resolver, s.action, s.args)
}

// ConditionalAssertionStep runs an assertion whose failure never halts
// the scenario: an AssertionError comes back as a *ConditionalFailure.
// Other errors still propagate unchanged.
type ConditionalAssertionStep struct {
	base
}

// NewConditionalAssertion creates a conditional assertion for the base
// assertion action (for example "seeElement" behind canSeeElement).
func NewConditionalAssertion(action string, args []any, opts ...Option) *ConditionalAssertionStep {
	return &ConditionalAssertionStep{base: newBase(KindConditionalAssertion, action, args, opts)}
}

// Run dispatches the assertion and converts its failure.
func (s *ConditionalAssertionStep) Run(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	return s.run(ctx, resolver, s.dispatch)
}

func (s *ConditionalAssertionStep) dispatch(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	result, err := invoke(ctx, resolver, s.action, s.args)
	if err == nil {
		return result, nil
	}

	var assertionErr *AssertionError
	if errors.As(err, &assertionErr) {
		return nil, &ConditionalFailure{Action: s.action, Trace: s.trace, Err: assertionErr}
	}
	return result, err
}

// String prefixes the humanized assertion with "can".
func (s *ConditionalAssertionStep) String() string {
	return "can " + Humanize(s.action, s.args)
}

// AsyncStep runs the action in a worker process and returns the result
// the worker reports over IPC.
type AsyncStep struct {
	base
	capability string
	starter    ports.WorkerStarter
}

// NewAsync creates a step that dispatches capability.method through starter.
func NewAsync(capability, method string, args []any, starter ports.WorkerStarter, opts ...Option) *AsyncStep {
	return &AsyncStep{
		base:       newBase(KindAsync, method, args, opts),
		capability: capability,
		starter:    starter,
	}
}

// Capability returns the capability the worker resolves the method on.
func (s *AsyncStep) Capability() string {
	return s.capability
}

// Run starts the worker and waits for its result.
func (s *AsyncStep) Run(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	return s.run(ctx, resolver, s.dispatch)
}

func (s *AsyncStep) dispatch(ctx context.Context, _ ports.CapabilityResolver) (any, error) {
	if s.starter == nil {
		return nil, errors.New("async step has no worker starter")
	}
	handle, err := s.starter.Start(ctx, s.capability, s.action, s.args)
	if err != nil {
		return nil, err
	}
	return handle.FetchResult(ctx)
}

var (
	_ Step = (*ActionStep)(nil)
	_ Step = (*AssertionStep)(nil)
	_ Step = (*ConditionalAssertionStep)(nil)
	_ Step = (*AsyncStep)(nil)
)
