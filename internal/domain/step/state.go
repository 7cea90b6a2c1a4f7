package step

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State is the execution state of a step.
type State string

const (
	pendingID   = "pending"
	succeededID = "succeeded"
	failedID    = "failed"
)

const (
	// StatePending means the step has not run yet.
	StatePending State = pendingID
	// StateSucceeded means the step's final outcome was a success.
	StateSucceeded State = succeededID
	// StateFailed means the step's final outcome was a failure.
	StateFailed State = failedID
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Events for the step state machine.
const (
	EventSucceed = "SUCCEED"
	EventFail    = "FAIL"
)

// machineContext is the statekit context type. Steps keep their counters
// on the step itself, so the machine carries no data.
type machineContext struct{}

// newInterpreter builds and starts the pending -> succeeded | failed machine.
func newInterpreter() *statekit.Interpreter[machineContext] {
	machine, err := statekit.NewMachine[machineContext]("step").
		WithInitial(pendingID).
		WithContext(machineContext{}).
		State(pendingID).
		On(EventSucceed).Target(succeededID).
		On(EventFail).Target(failedID).Done().
		State(succeededID).Done().
		State(failedID).Done().
		Build()
	if err != nil {
		panic(fmt.Sprintf("step: invalid state machine: %v", err))
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return interp
}
