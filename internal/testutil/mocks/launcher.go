package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// ErrKilled is what a killed Process returns from Wait.
var ErrKilled = errors.New("signal: killed")

// Launch is one recorded process start.
type Launch struct {
	Command string
	Args    []string
	Process *Process
}

// ProcessLauncher is a test double for ports.ProcessLauncher. The
// processes it starts run until they are killed or exited by the test.
type ProcessLauncher struct {
	mu       sync.Mutex
	err      error
	launches []Launch
	nextPid  int
}

// NewProcessLauncher creates a new ProcessLauncher mock.
func NewProcessLauncher() *ProcessLauncher {
	return &ProcessLauncher{nextPid: 1000}
}

// FailWith makes every following Launch return err.
func (l *ProcessLauncher) FailWith(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

// Launch records the call and returns a running Process.
func (l *ProcessLauncher) Launch(_ context.Context, command string, args ...string) (ports.Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return nil, l.err
	}

	l.nextPid++
	proc := &Process{pid: l.nextPid, done: make(chan struct{})}
	l.launches = append(l.launches, Launch{
		Command: command,
		Args:    append([]string(nil), args...),
		Process: proc,
	})
	return proc, nil
}

// Launches returns all recorded starts.
func (l *ProcessLauncher) Launches() []Launch {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Launch(nil), l.launches...)
}

// Process is a fake child process.
type Process struct {
	pid    int
	once   sync.Once
	done   chan struct{}
	mu     sync.Mutex
	err    error
	killed bool
}

// Exit ends the process with err.
func (p *Process) Exit(err error) {
	p.once.Do(func() {
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		close(p.done)
	})
}

// Wait blocks until the process exits.
func (p *Process) Wait() error {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Kill ends the process with ErrKilled.
func (p *Process) Kill() error {
	p.mu.Lock()
	p.killed = true
	p.mu.Unlock()
	p.Exit(ErrKilled)
	return nil
}

// Killed reports whether Kill was called.
func (p *Process) Killed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}

// Pid returns the fake process id.
func (p *Process) Pid() int {
	return p.pid
}

// Ensure ProcessLauncher implements ports.ProcessLauncher.
var _ ports.ProcessLauncher = (*ProcessLauncher)(nil)
