// Package cli provides the Cli capability: run shell commands and check
// their output and exit code.
package cli

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/felixgeelhaar/stepwise/internal/capabilities/args"
	"github.com/felixgeelhaar/stepwise/internal/domain/capability"
	"github.com/felixgeelhaar/stepwise/internal/domain/step"
	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// Name is the capability name.
const Name = "Cli"

// Cli remembers the result of the last command.
type Cli struct {
	runner ports.CommandRunner

	mu   sync.Mutex
	last *ports.CommandResult
}

// New creates the capability.
func New(runner ports.CommandRunner) *Cli {
	return &Cli{runner: runner}
}

// Provider exposes the actions for registration.
func (c *Cli) Provider() *capability.Provider {
	return &capability.Provider{
		Name: Name,
		Actions: map[string]ports.Action{
			"runShellCommand":      c.runShellCommand,
			"seeInShellOutput":     c.seeInShellOutput,
			"dontSeeInShellOutput": c.dontSeeInShellOutput,
			"seeResultCodeIs":      c.seeResultCodeIs,
		},
	}
}

// shell returns the interpreter command lines are run with.
func shell() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "sh", "-c"
}

// runShellCommand runs the command and fails on a non-zero exit code. The
// result is kept either way so it can be checked afterwards.
func (c *Cli) runShellCommand(ctx context.Context, a ...any) (any, error) {
	command, err := args.String(a, 0, "command")
	if err != nil {
		return nil, err
	}

	name, flag := shell()
	result, err := c.runner.Run(ctx, name, flag, command)
	if err != nil {
		return nil, fmt.Errorf("failed to run %q: %w", command, err)
	}

	c.mu.Lock()
	c.last = &result
	c.mu.Unlock()

	if !result.Success() {
		return result.Stdout, fmt.Errorf("command %q exited with code %d: %s",
			command, result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return result.Stdout, nil
}

func (c *Cli) lastResult() (ports.CommandResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return ports.CommandResult{}, step.Failf("no shell command has been run")
	}
	return *c.last, nil
}

func (c *Cli) seeInShellOutput(_ context.Context, a ...any) (any, error) {
	text, err := args.String(a, 0, "text")
	if err != nil {
		return nil, err
	}
	result, err := c.lastResult()
	if err != nil {
		return nil, err
	}
	if !strings.Contains(result.Output(), text) {
		return nil, step.Failf("%q not found in shell output", text)
	}
	return nil, nil
}

func (c *Cli) dontSeeInShellOutput(_ context.Context, a ...any) (any, error) {
	text, err := args.String(a, 0, "text")
	if err != nil {
		return nil, err
	}
	result, err := c.lastResult()
	if err != nil {
		return nil, err
	}
	if strings.Contains(result.Output(), text) {
		return nil, step.Failf("%q found in shell output", text)
	}
	return nil, nil
}

func (c *Cli) seeResultCodeIs(_ context.Context, a ...any) (any, error) {
	code, err := args.Int(a, 0, "code")
	if err != nil {
		return nil, err
	}
	result, err := c.lastResult()
	if err != nil {
		return nil, err
	}
	if result.ExitCode != code {
		return nil, step.Mismatch("result code", code, result.ExitCode)
	}
	return nil, nil
}
