// Package scenario runs an ordered list of steps and reports the outcome.
package scenario

import (
	"github.com/felixgeelhaar/stepwise/internal/domain/step"
)

// Scenario is an ordered sequence of steps representing one test.
type Scenario struct {
	name  string
	steps []step.Step
}

// New creates an empty scenario.
func New(name string) *Scenario {
	return &Scenario{name: name}
}

// Name returns the scenario name.
func (s *Scenario) Name() string {
	return s.name
}

// Add appends steps in order and returns the scenario for chaining.
func (s *Scenario) Add(steps ...step.Step) *Scenario {
	s.steps = append(s.steps, steps...)
	return s
}

// Steps returns a copy of the step list.
func (s *Scenario) Steps() []step.Step {
	return append([]step.Step(nil), s.steps...)
}

// Len returns the number of steps.
func (s *Scenario) Len() int {
	return len(s.steps)
}
