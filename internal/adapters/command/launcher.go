package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// ExecLauncher starts child processes without waiting for them.
type ExecLauncher struct {
	stdout io.Writer
	stderr io.Writer
	env    []string
}

// LauncherOption configures an ExecLauncher.
type LauncherOption func(*ExecLauncher)

// WithStdio forwards the child's stdout and stderr.
func WithStdio(stdout, stderr io.Writer) LauncherOption {
	return func(l *ExecLauncher) {
		l.stdout = stdout
		l.stderr = stderr
	}
}

// WithLaunchEnv appends KEY=VALUE pairs to the inherited environment.
func WithLaunchEnv(env ...string) LauncherOption {
	return func(l *ExecLauncher) {
		l.env = append(l.env, env...)
	}
}

// NewExecLauncher creates a launcher that forwards stderr by default.
func NewExecLauncher(opts ...LauncherOption) *ExecLauncher {
	l := &ExecLauncher{stderr: os.Stderr}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts command. Cancelling ctx kills the process.
func (l *ExecLauncher) Launch(ctx context.Context, command string, args ...string) (ports.Process, error) {
	cmd := exec.CommandContext(ctx, command, args...) //#nosec G204 -- the worker command is the stepwise executable
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr
	if len(l.env) > 0 {
		cmd.Env = append(os.Environ(), l.env...)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", command, err)
	}
	return &process{cmd: cmd}, nil
}

type process struct {
	cmd *exec.Cmd
}

func (p *process) Wait() error {
	return p.cmd.Wait()
}

func (p *process) Kill() error {
	return p.cmd.Process.Kill()
}

func (p *process) Pid() int {
	return p.cmd.Process.Pid
}

// Ensure ExecLauncher implements ports.ProcessLauncher.
var _ ports.ProcessLauncher = (*ExecLauncher)(nil)
