package step

import (
	"context"
	"time"

	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// Retry defaults.
const (
	DefaultRetryCount    = 1
	DefaultRetryInterval = 200 * time.Millisecond

	// MaxRetryInterval caps the doubled delay between attempts.
	MaxRetryInterval = time.Minute
)

// RetryStep re-dispatches a failing step up to retryCount more times,
// sleeping between attempts and doubling the interval after each one up
// to MaxRetryInterval. Once attempts are exhausted the last error is
// returned unchanged. Cancelling ctx during a delay ends the retries with
// ctx.Err().
type RetryStep struct {
	base
	inner           Step
	retryCount      int
	initialInterval time.Duration
}

// NewRetry wraps inner. A negative retryCount is treated as zero and a
// non-positive interval falls back to DefaultRetryInterval.
func NewRetry(inner Step, retryCount int, interval time.Duration, opts ...Option) *RetryStep {
	if retryCount < 0 {
		retryCount = 0
	}
	if interval <= 0 {
		interval = DefaultRetryInterval
	}
	interval = min(interval, MaxRetryInterval)

	b := newBase(KindRetry, inner.Action(), inner.Arguments(), opts)
	b.trace = inner.Trace()
	return &RetryStep{
		base:            b,
		inner:           inner,
		retryCount:      retryCount,
		initialInterval: interval,
	}
}

// Inner returns the wrapped step.
func (s *RetryStep) Inner() Step {
	return s.inner
}

// RetryCount returns the number of retries after the first attempt.
func (s *RetryStep) RetryCount() int {
	return s.retryCount
}

// InitialInterval returns the delay before the first retry.
func (s *RetryStep) InitialInterval() time.Duration {
	return s.initialInterval
}

// Run dispatches the wrapped step with retries.
func (s *RetryStep) Run(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	return s.run(ctx, resolver, s.dispatch)
}

func (s *RetryStep) dispatch(ctx context.Context, resolver ports.CapabilityResolver) (any, error) {
	interval := s.initialInterval
	for attempt := 0; ; attempt++ {
		result, err := s.inner.dispatch(ctx, resolver)
		if err == nil {
			return result, nil
		}
		if attempt >= s.retryCount || !Recoverable(err) {
			return result, err
		}

		// The final failure is counted by run.
		s.errorCount++
		if logger := s.loggerFor(ctx); logger != nil {
			logger.Debug(ctx, "retrying step",
				ports.F("action", s.action),
				ports.F("attempt", attempt+1),
				ports.F("interval", interval.String()),
				ports.F("error", err.Error()),
			)
		}
		if err := s.sleep(ctx, interval); err != nil {
			return nil, err
		}
		interval = min(interval*2, MaxRetryInterval)
	}
}

// String prefixes the humanized action with "retry".
func (s *RetryStep) String() string {
	return "retry " + s.inner.String()
}

var _ Step = (*RetryStep)(nil)
