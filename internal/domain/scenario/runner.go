package scenario

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/stepwise/internal/adapters/logging"
	"github.com/felixgeelhaar/stepwise/internal/domain/step"
	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// Runner executes scenarios strictly in sequence.
type Runner struct {
	resolver ports.CapabilityResolver
	logger   ports.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for step diagnostics.
func WithLogger(logger ports.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a runner that dispatches through resolver.
func NewRunner(resolver ports.CapabilityResolver, opts ...Option) *Runner {
	r := &Runner{resolver: resolver}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every step of sc in order. Conditional failures are
// recorded and the run continues; any other error halts the scenario and
// leaves the remaining steps pending.
func (r *Runner) Run(ctx context.Context, sc *Scenario) Result {
	start := time.Now()
	result := Result{Scenario: sc.Name()}

	for _, s := range sc.Steps() {
		if err := ctx.Err(); err != nil {
			result.Err = err
			break
		}

		result.Trace = append(result.Trace, s)
		if _, err := r.RunStep(ctx, s); err != nil {
			var conditional *step.ConditionalFailure
			if errors.As(err, &conditional) {
				result.Failures = append(result.Failures, conditional)
				continue
			}
			result.Err = err
			break
		}
	}

	result.Duration = time.Since(start)
	result.finish()
	return result
}

// RunStep executes a single step. Conditional failures are returned
// unchanged; any other error is wrapped in a *StepFailure.
func (r *Runner) RunStep(ctx context.Context, s step.Step) (any, error) {
	if r.logger != nil {
		ctx = ports.ContextWithLogger(ctx, r.logger)
	}
	logger := r.loggerFor(ctx)
	logger.Debug(ctx, "I "+s.String(), ports.F("trace", s.Trace().String()))

	value, err := s.Run(ctx, r.resolver)
	if err == nil {
		return value, nil
	}

	if step.IsConditional(err) {
		logger.Warn(ctx, "conditional assertion failed", ports.F("step", s.String()), ports.F("error", err))
		return value, err
	}

	logger.Error(ctx, "step failed",
		ports.F("step", s.String()),
		ports.F("trace", s.Trace().String()),
		ports.F("error", err))
	return value, &StepFailure{Step: s, Err: err}
}

func (r *Runner) loggerFor(ctx context.Context) ports.Logger {
	if logger := ports.LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return logging.NewNopLogger()
}
