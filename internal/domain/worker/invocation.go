// Package worker runs a capability method in a separate process and
// returns its single result over a file-backed IPC channel.
//
// The controller side (Starter, Handle) writes the parameters, spawns the
// worker and reads the result. The worker side (Run, Serve) mirrors the
// channel: it reads the parameters and writes back one "result" message.
package worker

import (
	"errors"
	"strconv"
	"time"
)

// Command is the subcommand the worker executable is started with.
const Command = "worker"

// Invocation is everything a worker process needs to serve one call.
type Invocation struct {
	// InputPath is the file the worker reads parameters from.
	InputPath string
	// OutputPath is the file the worker writes its result to.
	OutputPath   string
	Capability   string
	Method       string
	PollInterval time.Duration
	ReadTimeout  time.Duration
}

// Args returns the command line of the worker subcommand.
func (inv Invocation) Args() []string {
	args := []string{
		Command,
		"--input", inv.InputPath,
		"--output", inv.OutputPath,
		"--capability", inv.Capability,
		"--method", inv.Method,
	}
	if inv.PollInterval > 0 {
		args = append(args, "--poll-interval", inv.PollInterval.String())
	}
	if inv.ReadTimeout > 0 {
		args = append(args, "--read-timeout", inv.ReadTimeout.String())
	}
	return args
}

// Validate checks that the invocation names both files and a method.
func (inv Invocation) Validate() error {
	var errs []error
	if inv.InputPath == "" {
		errs = append(errs, errors.New("input path is required"))
	}
	if inv.OutputPath == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if inv.Capability == "" {
		errs = append(errs, errors.New("capability is required"))
	}
	if inv.Method == "" {
		errs = append(errs, errors.New("method is required"))
	}
	return errors.Join(errs...)
}

func (inv Invocation) String() string {
	return inv.Capability + "." + inv.Method + " (" + strconv.Quote(inv.InputPath) + ")"
}
