// Package config holds the stepwise configuration and loads it from YAML,
// TOML or INI files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/stepwise/internal/actor"
	"github.com/felixgeelhaar/stepwise/internal/adapters/ipc"
	"github.com/felixgeelhaar/stepwise/internal/adapters/logging"
	"github.com/felixgeelhaar/stepwise/internal/domain/step"
	"github.com/felixgeelhaar/stepwise/internal/domain/worker"
	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// Duration is a time.Duration written as "200ms" or "3s" in files.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the stepwise configuration.
type Config struct {
	Retry  RetryConfig  `yaml:"retry" toml:"retry"`
	IPC    IPCConfig    `yaml:"ipc" toml:"ipc"`
	Log    LogConfig    `yaml:"log" toml:"log"`
	Worker WorkerConfig `yaml:"worker" toml:"worker"`
}

// RetryConfig configures retry steps.
type RetryConfig struct {
	Count    int      `yaml:"count" toml:"count"`
	Interval Duration `yaml:"interval" toml:"interval"`
}

// IPCConfig configures worker channels.
type IPCConfig struct {
	PollInterval Duration `yaml:"poll_interval" toml:"poll_interval"`
	ReadTimeout  Duration `yaml:"read_timeout" toml:"read_timeout"`
	// Dir holds channel files. Empty means the system temp directory.
	Dir string `yaml:"dir" toml:"dir"`
}

// LogConfig configures the console logger.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// WorkerConfig configures worker processes.
type WorkerConfig struct {
	// Executable provides the worker subcommand. Empty means the running binary.
	Executable string `yaml:"executable" toml:"executable"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Retry: RetryConfig{
			Count:    step.DefaultRetryCount,
			Interval: Duration(step.DefaultRetryInterval),
		},
		IPC: IPCConfig{
			PollInterval: Duration(ipc.DefaultPollInterval),
			ReadTimeout:  Duration(ipc.DefaultReadTimeout),
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs ErrorList

	if c.Retry.Count < 0 {
		errs.AddValidation("retry.count", fmt.Sprintf("must not be negative, got %d", c.Retry.Count), "Use 0 to disable retries.")
	}
	if c.Retry.Interval <= 0 {
		errs.AddValidation("retry.interval", "must be positive", "For example: 200ms.")
	}
	if c.IPC.PollInterval <= 0 {
		errs.AddValidation("ipc.poll_interval", "must be positive", "For example: 50ms.")
	}
	if c.IPC.ReadTimeout <= 0 {
		errs.AddValidation("ipc.read_timeout", "must be positive", "For example: 3s.")
	}
	if c.IPC.PollInterval > 0 && c.IPC.ReadTimeout > 0 && c.IPC.PollInterval > c.IPC.ReadTimeout {
		errs.AddValidation("ipc.poll_interval", "must not exceed ipc.read_timeout", "Lower the poll interval.")
	}
	if _, err := ports.ParseLevel(c.Log.Level); err != nil {
		errs.AddValidation("log.level", err.Error(), "Use one of: debug, info, warn, error.")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		errs.AddValidation("log.format", fmt.Sprintf("unknown format %q", c.Log.Format), "Use text or json.")
	}

	return errs.AsError()
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() ports.Level {
	level, _ := ports.ParseLevel(c.Log.Level)
	return level
}

// WorkerOptions returns the starter options for worker processes.
func (c *Config) WorkerOptions() worker.Options {
	return worker.Options{
		Executable:   c.Worker.Executable,
		Dir:          c.IPC.Dir,
		PollInterval: c.IPC.PollInterval.Std(),
		ReadTimeout:  c.IPC.ReadTimeout.Std(),
	}
}

// ActorOptions returns the actor options derived from the retry settings.
func (c *Config) ActorOptions() []actor.Option {
	return []actor.Option{actor.WithRetry(c.Retry.Count, c.Retry.Interval.Std())}
}
