package step

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// TryStep runs a wrapped step and swallows its failure. It reports true
// when the wrapped step succeeded and false when it failed; the failure
// is only logged at debug level and is not counted in ErrorCount.
// Resolution and fatal errors still propagate.
type TryStep struct {
	base
	inner Step
}

// NewTry wraps inner. The wrapper shares inner's action, arguments and trace.
func NewTry(inner Step, opts ...Option) *TryStep {
	b := newBase(KindTry, inner.Action(), inner.Arguments(), opts)
	b.trace = inner.Trace()
	return &TryStep{base: b, inner: inner}
}

// Inner returns the wrapped step.
func (s *TryStep) Inner() Step {
	return s.inner
}

// Run tries the wrapped step.
func (s *TryStep) Run(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	return s.run(ctx, resolver, s.dispatch)
}

func (s *TryStep) dispatch(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	_, err := s.inner.dispatch(ctx, resolver)
	if err == nil {
		return true, nil
	}
	if !Recoverable(err) {
		return nil, err
	}

	if logger := s.loggerFor(ctx); logger != nil {
		logger.Debug(ctx, fmt.Sprintf("Failed to perform: %s, skipping...", err.Error()),
			ports.F("action", s.action),
			ports.F("trace", s.trace.String()),
		)
	}
	return false, nil
}

// String prefixes the humanized action with "try to".
func (s *TryStep) String() string {
	return "try to " + s.inner.String()
}

var _ Step = (*TryStep)(nil)
