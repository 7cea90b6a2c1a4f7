package scenario

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/stepwise/internal/domain/step"
)

// Status is the overall outcome of a scenario run.
type Status string

const (
	// StatusPassed means every step succeeded.
	StatusPassed Status = "passed"
	// StatusFailed means a step halted the scenario.
	StatusFailed Status = "failed"
	// StatusIncomplete means all steps ran but conditional failures were recorded.
	StatusIncomplete Status = "incomplete"
)

// StepFailure is the error that halted a scenario.
type StepFailure struct {
	Step step.Step
	Err  error
}

func (e *StepFailure) Error() string {
	if trace := e.Step.Trace().String(); trace != "" {
		return fmt.Sprintf("%s: I %s: %v", trace, e.Step, e.Err)
	}
	return fmt.Sprintf("I %s: %v", e.Step, e.Err)
}

func (e *StepFailure) Unwrap() error {
	return e.Err
}

// Result captures the outcome of a scenario run.
type Result struct {
	Scenario string
	Status   Status
	// Trace lists every step that was executed, in order.
	Trace []step.Step
	// Failures holds non-fatal conditional failures.
	Failures []*step.ConditionalFailure
	// Err is the halting failure, if any.
	Err      error
	Duration time.Duration
}

// Passed reports whether the scenario fully passed.
func (r Result) Passed() bool {
	return r.Status == StatusPassed
}

// Skipped returns the steps that never ran because the scenario halted.
func (r Result) Skipped(s *Scenario) []step.Step {
	var skipped []step.Step
	for _, st := range s.Steps() {
		if st.State() == step.StatePending {
			skipped = append(skipped, st)
		}
	}
	return skipped
}

func (r *Result) finish() {
	switch {
	case r.Err != nil:
		r.Status = StatusFailed
	case len(r.Failures) > 0:
		r.Status = StatusIncomplete
	default:
		r.Status = StatusPassed
	}
}
