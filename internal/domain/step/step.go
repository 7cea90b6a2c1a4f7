// Package step implements the step execution model: one tracked action
// invocation with uniform state handling and the variants that change how
// a failure propagates (assertion, conditional, try, retry, async, meta).
package step

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"
	"unicode"

	"github.com/felixgeelhaar/statekit"
	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// Kind identifies a step variant.
type Kind string

const (
	KindAction               Kind = "action"
	KindAssertion            Kind = "assertion"
	KindConditionalAssertion Kind = "conditional-assertion"
	KindTry                  Kind = "try"
	KindRetry                Kind = "retry"
	KindAsync                Kind = "async"
	KindMeta                 Kind = "meta"
	KindComment              Kind = "comment"
	KindNoOp                 Kind = "noop"
)

// Trace is the source location a step was created at.
type Trace struct {
	File string
	Line int
}

// String returns file:line, or an empty string when unknown.
func (t Trace) String() string {
	if t.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", t.File, t.Line)
}

// CallerTrace returns the trace of the caller skip frames above the
// function calling CallerTrace.
func CallerTrace(skip int) Trace {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Trace{}
	}
	return Trace{File: filepath.ToSlash(file), Line: line}
}

// Step is one action invocation. Action and arguments never change after
// construction; Run mutates only the state and the error count.
type Step interface {
	Action() string
	Arguments() []any
	Trace() Trace
	Kind() Kind
	State() State
	ErrorCount() int
	String() string

	// Run dispatches the step once and moves it to a terminal state.
	Run(ctx context.Context, resolver ports.CapabilityResolver) (any, error)

	// dispatch performs the variant's work without touching state. It
	// lets wrappers invoke the wrapped step more than once.
	dispatch(ctx context.Context, resolver ports.CapabilityResolver) (any, error)
}

// Option configures a step at construction.
type Option func(*base)

// WithTrace sets the source location explicitly.
func WithTrace(file string, line int) Option {
	return func(b *base) {
		b.trace = Trace{File: file, Line: line}
	}
}

// WithLogger sets the logger used for step diagnostics.
func WithLogger(logger ports.Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

// Sleeper waits d between retry attempts. It returns ctx.Err() when ctx
// is done first.
type Sleeper func(ctx context.Context, d time.Duration) error

// WithSleeper replaces the default retry delay.
func WithSleeper(sleep Sleeper) Option {
	return func(b *base) {
		b.sleep = sleep
	}
}

// Sleep waits d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// base holds what every variant shares.
type base struct {
	action     string
	args       []any
	trace      Trace
	kind       Kind
	errorCount int
	logger     ports.Logger
	sleep      Sleeper
	interp     *statekit.Interpreter[machineContext]
}

// newBase captures the trace of the code that called the exported
// constructor, two frames up.
func newBase(kind Kind, action string, args []any, opts []Option) base {
	b := base{
		action: action,
		args:   append([]any(nil), args...),
		trace:  CallerTrace(2),
		kind:   kind,
		sleep:  Sleep,
		interp: newInterpreter(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Action returns the action name.
func (b *base) Action() string {
	return b.action
}

// Arguments returns a copy of the argument list.
func (b *base) Arguments() []any {
	return append([]any(nil), b.args...)
}

// Trace returns the source location of the step.
func (b *base) Trace() Trace {
	return b.trace
}

// Kind returns the step variant.
func (b *base) Kind() Kind {
	return b.kind
}

// State returns the current execution state.
func (b *base) State() State {
	return State(b.interp.State().Value)
}

// ErrorCount returns how many dispatch attempts failed.
func (b *base) ErrorCount() int {
	return b.errorCount
}

// String returns the humanized action with its arguments.
func (b *base) String() string {
	return Humanize(b.action, b.args)
}

// run executes dispatch once and records the outcome.
func (b *base) run(
	ctx context.Context,
	resolver ports.CapabilityResolver,
	dispatch func(context.Context, ports.CapabilityResolver) (any, error),
) (any, error) {
	if b.State() != StatePending {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRun, b.action)
	}

	result, err := dispatch(ctx, resolver)
	if err != nil {
		b.errorCount++
		b.interp.Send(statekit.Event{Type: EventFail})
		return result, err
	}

	b.interp.Send(statekit.Event{Type: EventSucceed})
	return result, nil
}

// loggerFor prefers the step's own logger over one carried by ctx.
func (b *base) loggerFor(ctx context.Context) ports.Logger {
	if b.logger != nil {
		return b.logger
	}
	return ports.LoggerFromContext(ctx)
}

// invoke resolves the action and calls it with the step arguments.
func invoke(ctx context.Context, resolver ports.CapabilityResolver, action string, args []any) (any, error) {
	if resolver == nil {
		return nil, fmt.Errorf("%w: %s (no resolver)", ports.ErrCapabilityNotAvailable, action)
	}
	fn, err := resolver.Resolve(action)
	if err != nil {
		return nil, err
	}
	return fn(ctx, args...)
}

// Humanize turns "seeElement" and its arguments into `see element "#x"`.
func Humanize(action string, args []any) string {
	var b strings.Builder
	for i, r := range action {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	if len(args) == 0 {
		return b.String()
	}

	parts := make([]string, len(args))
	for i, arg := range args {
		if s, ok := arg.(string); ok {
			parts[i] = fmt.Sprintf("%q", s)
		} else {
			parts[i] = fmt.Sprintf("%v", arg)
		}
	}
	return b.String() + " " + strings.Join(parts, ",")
}
