package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/felixgeelhaar/stepwise/internal/adapters/logging"
	"github.com/felixgeelhaar/stepwise/internal/ports"
	"github.com/google/uuid"
)

// Defaults for the read loop.
const (
	DefaultPollInterval = 50 * time.Millisecond
	DefaultReadTimeout  = 3 * time.Second
)

// Config describes one side of a channel.
type Config struct {
	// InputPath is the file this side reads from.
	InputPath string
	// OutputPath is the file this side appends to.
	OutputPath string

	PollInterval time.Duration
	ReadTimeout  time.Duration
	Logger       ports.Logger
}

// Mirror returns the configuration of the peer: input and output swapped.
func (c Config) Mirror() Config {
	c.InputPath, c.OutputPath = c.OutputPath, c.InputPath
	return c
}

// Remove deletes both channel files, ignoring files that do not exist.
func (c Config) Remove() error {
	var errs []error
	for _, path := range []string{c.InputPath, c.OutputPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewTempPair creates two empty channel files in dir and returns the
// controller-side configuration.
func NewTempPair(dir string) (Config, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Config{}, fmt.Errorf("failed to create channel directory: %w", err)
	}

	id := uuid.New().String()
	cfg := Config{
		InputPath:  filepath.Join(dir, "stepwise-"+id+".in"),
		OutputPath: filepath.Join(dir, "stepwise-"+id+".out"),
	}
	for _, path := range []string{cfg.InputPath, cfg.OutputPath} {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err != nil {
			_ = cfg.Remove()
			return Config{}, fmt.Errorf("failed to create channel file: %w", err)
		}
		_ = f.Close()
	}
	return cfg, nil
}

// Channel reads frames from one file and appends frames to another.
// Reads advance a private cursor monotonically; it is never reset.
type Channel struct {
	inputPath    string
	outputPath   string
	pollInterval time.Duration
	readTimeout  time.Duration
	logger       ports.Logger

	mu         sync.Mutex
	readCursor int64
}

// NewChannel creates a channel for cfg, applying defaults.
func NewChannel(cfg Config) (*Channel, error) {
	if cfg.InputPath == "" || cfg.OutputPath == "" {
		return nil, errors.New("channel requires input and output paths")
	}
	if cfg.InputPath == cfg.OutputPath {
		return nil, errors.New("channel input and output must differ")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	return &Channel{
		inputPath:    cfg.InputPath,
		outputPath:   cfg.OutputPath,
		pollInterval: cfg.PollInterval,
		readTimeout:  cfg.ReadTimeout,
		logger:       cfg.Logger.With(ports.F("channel", filepath.Base(cfg.OutputPath))),
	}, nil
}

// ReadCursor returns the offset of the input file consumed so far.
func (c *Channel) ReadCursor() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readCursor
}

// Write encodes v as JSON and appends it as one frame under the lock.
func (c *Channel) Write(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	frame := EncodeFrame(payload)

	f, err := os.OpenFile(c.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.outputPath, err)
	}
	defer func() { _ = f.Close() }()

	if err := lockFile(f); err != nil {
		return fmt.Errorf("failed to lock %s: %w", c.outputPath, err)
	}
	defer func() { _ = unlockFile(f) }()

	if _, err := f.Write(frame); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	c.logger.Debug(ctx, "ipc frame written", ports.F("bytes", len(payload)))
	return nil
}

// Read waits for the next frame and returns its decoded payload.
func (c *Channel) Read(ctx context.Context) (any, error) {
	var v any
	if err := c.ReadInto(ctx, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ReadInto waits for the next frame and decodes its payload into v.
func (c *Channel) ReadInto(ctx context.Context, v any) error {
	payload, err := c.readFrame(ctx)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return &ProtocolError{Op: "decode", Path: c.inputPath, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
	}
	return nil
}

func (c *Channel) readFrame(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.waitForData(ctx); err != nil {
		return nil, err
	}

	f, err := os.Open(c.inputPath)
	if err != nil {
		return nil, &ProtocolError{Op: "read", Path: c.inputPath, Err: err}
	}
	defer func() { _ = f.Close() }()

	if err := lockFile(f); err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", c.inputPath, err)
	}
	defer func() { _ = unlockFile(f) }()

	if _, err := f.Seek(c.readCursor, io.SeekStart); err != nil {
		return nil, &ProtocolError{Op: "read", Path: c.inputPath, Err: err}
	}

	payload, consumed, err := ReadFrame(bufio.NewReader(f))
	if err != nil {
		return nil, &ProtocolError{Op: "read", Path: c.inputPath, Err: err}
	}
	c.readCursor += consumed

	c.logger.Debug(ctx, "ipc frame read", ports.F("bytes", len(payload)), ports.F("cursor", c.readCursor))
	return payload, nil
}

// waitForData polls the input size until it differs from the cursor.
// The lock is never held while waiting.
func (c *Channel) waitForData(ctx context.Context) error {
	deadline := time.Now().Add(c.readTimeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		size, err := fileSize(c.inputPath)
		if err != nil {
			return &ProtocolError{Op: "read", Path: c.inputPath, Err: err}
		}
		if size != c.readCursor {
			return nil
		}
		if !time.Now().Before(deadline) {
			return &ProtocolError{Op: "read", Path: c.inputPath, Err: fmt.Errorf("%w after %s", ErrReadTimeout, c.readTimeout)}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// fileSize treats a missing file as empty.
func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return info.Size(), nil
}

// Ensure Channel implements ports.MessageQueue.
var _ ports.MessageQueue = (*Channel)(nil)
