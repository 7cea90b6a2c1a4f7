// Package actor records and runs steps on behalf of a test. The methods
// for the built-in actions and their retry, try and conditional forms are
// generated into steps_gen.go from the built-in action manifest.
package actor

//go:generate go run github.com/felixgeelhaar/stepwise/cmd/stepwise generate --package actor --output steps_gen.go

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/stepwise/internal/domain/scenario"
	"github.com/felixgeelhaar/stepwise/internal/domain/step"
	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// Actor runs every step immediately and keeps it in its scenario.
type Actor struct {
	scenario *scenario.Scenario
	runner   *scenario.Runner
	starter  ports.WorkerStarter
	logger   ports.Logger
	sleep    step.Sleeper

	retryCount    int
	retryInterval time.Duration

	failures []*step.ConditionalFailure
	err      error
}

// Option configures an Actor.
type Option func(*Actor)

// WithLogger sets the logger for step diagnostics.
func WithLogger(logger ports.Logger) Option {
	return func(a *Actor) {
		a.logger = logger
	}
}

// WithStarter sets the worker starter used by Async.
func WithStarter(starter ports.WorkerStarter) Option {
	return func(a *Actor) {
		a.starter = starter
	}
}

// WithRetry sets the retry count and initial interval of retry steps.
func WithRetry(count int, interval time.Duration) Option {
	return func(a *Actor) {
		a.SetRetry(count, interval)
	}
}

// WithSleeper replaces the default retry delay.
func WithSleeper(sleep step.Sleeper) Option {
	return func(a *Actor) {
		a.sleep = sleep
	}
}

// New creates an actor for the named scenario.
func New(name string, resolver ports.CapabilityResolver, opts ...Option) *Actor {
	a := &Actor{
		scenario:      scenario.New(name),
		retryCount:    step.DefaultRetryCount,
		retryInterval: step.DefaultRetryInterval,
	}
	for _, opt := range opts {
		opt(a)
	}

	var runnerOpts []scenario.Option
	if a.logger != nil {
		runnerOpts = append(runnerOpts, scenario.WithLogger(a.logger))
	}
	a.runner = scenario.NewRunner(resolver, runnerOpts...)
	return a
}

// SetRetry configures the retry forms of actions.
func (a *Actor) SetRetry(count int, interval time.Duration) {
	a.retryCount = count
	a.retryInterval = interval
}

// Scenario returns the steps recorded so far.
func (a *Actor) Scenario() *scenario.Scenario {
	return a.scenario
}

// Failures returns the conditional failures recorded so far.
func (a *Actor) Failures() []*step.ConditionalFailure {
	return append([]*step.ConditionalFailure(nil), a.failures...)
}

// Err returns the first error that failed a step.
func (a *Actor) Err() error {
	return a.err
}

// Status summarizes the steps run so far.
func (a *Actor) Status() scenario.Status {
	switch {
	case a.err != nil:
		return scenario.StatusFailed
	case len(a.failures) > 0:
		return scenario.StatusIncomplete
	default:
		return scenario.StatusPassed
	}
}

// Run records s and runs it. A conditional failure is recorded and
// reported as success.
func (a *Actor) Run(ctx context.Context, s step.Step) (any, error) {
	a.scenario.Add(s)

	value, err := a.runner.RunStep(ctx, s)
	if err == nil {
		return value, nil
	}

	var cf *step.ConditionalFailure
	if errors.As(err, &cf) {
		a.failures = append(a.failures, cf)
		return value, nil
	}
	if a.err == nil {
		a.err = err
	}
	return value, err
}

// Do runs an action by name.
func (a *Actor) Do(ctx context.Context, action string, args ...any) (any, error) {
	return a.do(ctx, step.CallerTrace(1), action, args...)
}

// See runs an assertion by name.
func (a *Actor) See(ctx context.Context, action string, args ...any) error {
	return a.see(ctx, step.CallerTrace(1), action, args...)
}

// Comment adds a narration line to the scenario.
func (a *Actor) Comment(ctx context.Context, text string) {
	_, _ = a.Run(ctx, step.NewComment(text, a.options(step.CallerTrace(1))...))
}

// Async runs capability.method in a worker process.
func (a *Actor) Async(ctx context.Context, capability, method string, args ...any) (any, error) {
	return a.Run(ctx, step.NewAsync(capability, method, args, a.starter, a.options(step.CallerTrace(1))...))
}

func (a *Actor) options(trace step.Trace) []step.Option {
	opts := []step.Option{step.WithTrace(trace.File, trace.Line)}
	if a.logger != nil {
		opts = append(opts, step.WithLogger(a.logger))
	}
	if a.sleep != nil {
		opts = append(opts, step.WithSleeper(a.sleep))
	}
	return opts
}

func (a *Actor) do(ctx context.Context, trace step.Trace, action string, args ...any) (any, error) {
	return a.Run(ctx, step.NewAction(action, args, a.options(trace)...))
}

func (a *Actor) see(ctx context.Context, trace step.Trace, action string, args ...any) error {
	_, err := a.Run(ctx, step.NewAssertion(action, args, a.options(trace)...))
	return err
}

func (a *Actor) can(ctx context.Context, trace step.Trace, action string, args ...any) error {
	_, err := a.Run(ctx, step.NewConditionalAssertion(action, args, a.options(trace)...))
	return err
}

func (a *Actor) try(ctx context.Context, trace step.Trace, action string, args ...any) (bool, error) {
	opts := a.options(trace)
	value, err := a.Run(ctx, step.NewTry(step.NewAction(action, args, opts...), opts...))
	if err != nil {
		return false, err
	}
	ok, _ := value.(bool)
	return ok, nil
}

func (a *Actor) retry(ctx context.Context, trace step.Trace, kind step.Kind, action string, args ...any) (any, error) {
	opts := a.options(trace)

	var inner step.Step
	if kind == step.KindAssertion {
		inner = step.NewAssertion(action, args, opts...)
	} else {
		inner = step.NewAction(action, args, opts...)
	}
	return a.Run(ctx, step.NewRetry(inner, a.retryCount, a.retryInterval, opts...))
}
