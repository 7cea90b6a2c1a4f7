package step

import (
	"context"

	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// MetaStep annotates the trace with a named action that is never
// dispatched, such as "amGoingTo" or "expect".
type MetaStep struct {
	base
}

// NewMeta creates a meta step.
func NewMeta(action string, args []any, opts ...Option) *MetaStep {
	return &MetaStep{base: newBase(KindMeta, action, args, opts)}
}

// Run marks the step succeeded without dispatching.
func (s *MetaStep) Run(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	return s.run(ctx, resolver, s.dispatch)
}

func (s *MetaStep) dispatch(context.Context, ports.CapabilityResolver) (any, error) {
	return nil, nil
}

// CommentStep carries human-readable narration.
type CommentStep struct {
	base
}

// NewComment creates a comment step. The text is stored as the action.
func NewComment(text string, opts ...Option) *CommentStep {
	return &CommentStep{base: newBase(KindComment, text, nil, opts)}
}

// Run marks the step succeeded without dispatching.
func (s *CommentStep) Run(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	return s.run(ctx, resolver, s.dispatch)
}

func (s *CommentStep) dispatch(context.Context, ports.CapabilityResolver) (any, error) {
	return nil, nil
}

// String returns the comment text verbatim.
func (s *CommentStep) String() string {
	return s.action
}

// NoOpStep only records the caller's file and line.
type NoOpStep struct {
	base
}

// NewNoOp creates a no-op step at the caller's location.
func NewNoOp(opts ...Option) *NoOpStep {
	return &NoOpStep{base: newBase(KindNoOp, "", nil, opts)}
}

// Run marks the step succeeded without dispatching.
func (s *NoOpStep) Run(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	return s.run(ctx, resolver, s.dispatch)
}

func (s *NoOpStep) dispatch(context.Context, ports.CapabilityResolver) (any, error) {
	return nil, nil
}

// String returns the trace location.
func (s *NoOpStep) String() string {
	return s.trace.String()
}

var (
	_ Step = (*MetaStep)(nil)
	_ Step = (*CommentStep)(nil)
	_ Step = (*NoOpStep)(nil)
)
