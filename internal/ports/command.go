package ports

import (
	"context"
)

// CommandResult is the outcome of running a shell command to completion.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// Output returns stdout followed by stderr.
func (r CommandResult) Output() string {
	return r.Stdout + r.Stderr
}

// CommandRunner executes shell commands and waits for them.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)
}
