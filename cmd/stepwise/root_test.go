package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/stepwise/internal/config"
	"github.com/felixgeelhaar/stepwise/internal/ports"
	"github.com/felixgeelhaar/stepwise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_UseLine(t *testing.T) {
	assert.Equal(t, "stepwise", rootCmd.Use)
	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCommand_HasPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	t.Run("config flag exists", func(t *testing.T) {
		flag := flags.Lookup("config")
		require.NotNil(t, flag)
		assert.Empty(t, flag.DefValue)
	})

	t.Run("verbose flag exists", func(t *testing.T) {
		flag := flags.Lookup("verbose")
		require.NotNil(t, flag)
		assert.Equal(t, "false", flag.DefValue)
		assert.Equal(t, "v", flag.Shorthand)
	})
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"actions", "generate", "version", "worker"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestFormatError(t *testing.T) {
	userErr := &config.UserError{
		Code:       config.ErrCodeConfigParse,
		Message:    "failed to parse YAML configuration",
		Context:    "stepwise.yaml",
		Suggestion: "Check the file syntax.",
		Underlying: errors.New("line 3: mapping values are not allowed"),
	}

	tests := []struct {
		name     string
		err      error
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "plain error",
			err:      errors.New("boom"),
			contains: []string{"boom"},
		},
		{
			name:     "user error",
			err:      userErr,
			contains: []string{"failed to parse YAML configuration (at stepwise.yaml)", "Suggestion: Check the file syntax."},
			excludes: []string{"Technical details"},
		},
		{
			name:     "user error verbose",
			err:      userErr,
			verbose:  true,
			contains: []string{"Technical details: line 3"},
		},
		{
			name:     "wrapped user error",
			err:      errors.Join(errors.New("context"), userErr),
			contains: []string{"failed to parse YAML configuration"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := verbose
			verbose = tt.verbose
			defer func() { verbose = old }()

			msg := formatError(tt.err)
			for _, s := range tt.contains {
				assert.Contains(t, msg, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, msg, s)
			}
		})
	}
}

func TestFormatError_ErrorList(t *testing.T) {
	var list config.ErrorList
	list.AddValidation("retry.count", "must not be negative, got -1", "Use 0 to disable retries.")
	list.AddValidation("ipc.read_timeout", "must be positive", "For example: 3s.")

	msg := formatError(list.AsError())
	assert.Contains(t, msg, "Found 2 error(s)")
	assert.Contains(t, msg, "retry.count")
	assert.Contains(t, msg, "ipc.read_timeout")
}

func TestPrintErrorTo(t *testing.T) {
	var buf bytes.Buffer
	printErrorTo(&buf, errors.New("something went wrong"))

	assert.Contains(t, buf.String(), "Error:")
	assert.Contains(t, buf.String(), "something went wrong")
}

func TestLoadConfig(t *testing.T) {
	old := cfgFile
	defer func() { cfgFile = old }()

	t.Run("missing file", func(t *testing.T) {
		cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
		_, err := loadConfig()
		assert.ErrorIs(t, err, &config.UserError{Code: config.ErrCodeConfigNotFound})
	})

	t.Run("explicit file", func(t *testing.T) {
		cfgFile = testutil.WriteTempFile(t, t.TempDir(), "stepwise.toml", "[retry]\ncount = 4\ninterval = \"1s\"\n")

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Retry.Count)
	})
}

func TestNewLogger(t *testing.T) {
	old := verbose
	defer func() { verbose = old }()

	var buf bytes.Buffer
	cfg := config.Default()

	verbose = false
	assert.Equal(t, ports.LevelInfo, newLogger(cfg, &buf).Level())

	verbose = true
	assert.Equal(t, ports.LevelDebug, newLogger(cfg, &buf).Level())
}

func TestLoadConfig_DefaultFileInWorkingDir(t *testing.T) {
	old := cfgFile
	cfgFile = ""
	defer func() { cfgFile = old }()

	dir := t.TempDir()
	testutil.WriteTempFile(t, dir, "stepwise.yaml", "log:\n  level: debug\n  format: json\n")
	testutil.ChangeDir(t, dir)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, ports.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "json", cfg.Log.Format)
}
