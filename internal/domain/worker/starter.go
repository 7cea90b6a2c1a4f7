package worker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/felixgeelhaar/stepwise/internal/adapters/ipc"
	"github.com/felixgeelhaar/stepwise/internal/adapters/logging"
	"github.com/felixgeelhaar/stepwise/internal/ports"
	"github.com/google/uuid"
)

// Request is the value of the params message.
type Request struct {
	Capability string `json:"capability"`
	Method     string `json:"method"`
	Args       []any  `json:"args"`
}

// Options configures a Starter.
type Options struct {
	// Executable is the binary providing the worker subcommand.
	// Defaults to the running executable.
	Executable string
	// Args are passed before the worker subcommand.
	Args []string
	// Dir holds the channel files. Defaults to the system temp directory.
	Dir          string
	PollInterval time.Duration
	ReadTimeout  time.Duration
	Logger       ports.Logger
}

// Starter spawns worker processes.
type Starter struct {
	launcher ports.ProcessLauncher
	opts     Options
}

// NewStarter creates a starter that spawns workers through launcher.
func NewStarter(launcher ports.ProcessLauncher, opts Options) *Starter {
	if opts.PollInterval <= 0 {
		opts.PollInterval = ipc.DefaultPollInterval
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = ipc.DefaultReadTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	return &Starter{launcher: launcher, opts: opts}
}

// Start writes the parameters to a fresh channel and spawns the worker.
// The spawn is never retried.
func (s *Starter) Start(ctx context.Context, capability, method string, params []any) (ports.ResultHandle, error) {
	exe := s.opts.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			return nil, fmt.Errorf("failed to locate worker executable: %w", err)
		}
	}

	cfg, err := ipc.NewTempPair(s.opts.Dir)
	if err != nil {
		return nil, err
	}
	cfg.PollInterval = s.opts.PollInterval
	cfg.ReadTimeout = s.opts.ReadTimeout
	cfg.Logger = s.opts.Logger

	channel, err := ipc.NewChannel(cfg)
	if err != nil {
		_ = cfg.Remove()
		return nil, err
	}

	requestID := uuid.New().String()
	logger := s.opts.Logger.With(ports.F("request_id", requestID), ports.F("method", capability+"."+method))

	env, err := ipc.NewEnvelope(ipc.MessageParams, requestID, Request{Capability: capability, Method: method, Args: params})
	if err != nil {
		_ = cfg.Remove()
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}
	if err := channel.Write(ctx, env); err != nil {
		_ = cfg.Remove()
		return nil, err
	}

	inv := Invocation{
		InputPath:    cfg.OutputPath,
		OutputPath:   cfg.InputPath,
		Capability:   capability,
		Method:       method,
		PollInterval: s.opts.PollInterval,
		ReadTimeout:  s.opts.ReadTimeout,
	}
	args := append(append([]string(nil), s.opts.Args...), inv.Args()...)

	proc, err := s.launcher.Launch(ctx, exe, args...)
	if err != nil {
		_ = cfg.Remove()
		return nil, fmt.Errorf("failed to spawn worker for %s.%s: %w", capability, method, err)
	}
	logger.Debug(ctx, "worker started", ports.F("pid", proc.Pid()))

	return newHandle(requestID, capability, method, channel, proc, logger, s.opts.ReadTimeout, cfg.Remove), nil
}

// Handle is the controller's view of one spawned worker.
type Handle struct {
	requestID  string
	capability string
	method     string
	queue      ports.MessageQueue
	process    ports.Process
	logger     ports.Logger
	grace      time.Duration
	cleanup    func() error

	mu    sync.Mutex
	done  bool
	value any
	err   error
}

func newHandle(
	requestID, capability, method string,
	queue ports.MessageQueue,
	process ports.Process,
	logger ports.Logger,
	grace time.Duration,
	cleanup func() error,
) *Handle {
	return &Handle{
		requestID:  requestID,
		capability: capability,
		method:     method,
		queue:      queue,
		process:    process,
		logger:     logger,
		grace:      grace,
		cleanup:    cleanup,
	}
}

// RequestID returns the id the parameters were sent with.
func (h *Handle) RequestID() string {
	return h.requestID
}

// FetchResult reads the worker's result message. The first outcome is
// cached and returned by every later call without reading again.
// Cancellation of ctx is not cached.
func (h *Handle) FetchResult(ctx context.Context) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done {
		return h.value, h.err
	}

	value, err := h.fetch(ctx)
	if err != nil && ctx.Err() != nil {
		return nil, err
	}

	h.done = true
	h.value, h.err = value, err
	h.release(err != nil)
	return value, err
}

func (h *Handle) fetch(ctx context.Context) (any, error) {
	var env ipc.Envelope
	if err := h.queue.ReadInto(ctx, &env); err != nil {
		return nil, err
	}

	if env.Name != ipc.MessageResult {
		return nil, &ipc.ProtocolError{Op: "fetch", Err: fmt.Errorf("%w: want %q, got %q", ErrUnexpectedMessage, ipc.MessageResult, env.Name)}
	}
	if env.RequestID != h.requestID {
		return nil, &ipc.ProtocolError{Op: "fetch", Err: fmt.Errorf("%w: result for request %q", ErrUnexpectedMessage, env.RequestID)}
	}
	if err := ipc.CheckProtocol(env.Protocol); err != nil {
		return nil, err
	}

	if env.Error != "" {
		return nil, &RemoteError{
			Capability: h.capability,
			Method:     h.method,
			Message:    env.Error,
			Kind:       env.ErrorKind,
		}
	}

	var value any
	if err := env.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// release reaps the worker and deletes the channel files. A worker that
// does not exit within the grace period is killed.
func (h *Handle) release(failed bool) {
	if h.process != nil {
		if failed {
			_ = h.process.Kill()
		}

		exited := make(chan error, 1)
		go func() { exited <- h.process.Wait() }()

		select {
		case err := <-exited:
			if err != nil && !failed {
				h.logger.Debug(context.Background(), "worker exited with error", ports.F("error", err))
			}
		case <-time.After(h.grace):
			h.logger.Warn(context.Background(), "worker did not exit, killing it", ports.F("pid", h.process.Pid()))
			_ = h.process.Kill()
			<-exited
		}
	}

	if h.cleanup != nil {
		if err := h.cleanup(); err != nil {
			h.logger.Warn(context.Background(), "failed to remove channel files", ports.F("error", err))
		}
	}
}

// Ensure the controller types implement the ports.
var (
	_ ports.WorkerStarter = (*Starter)(nil)
	_ ports.ResultHandle  = (*Handle)(nil)
)
