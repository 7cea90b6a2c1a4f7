package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/felixgeelhaar/stepwise/internal/adapters/logging"
	"github.com/felixgeelhaar/stepwise/internal/config"
	"github.com/felixgeelhaar/stepwise/internal/ports"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "stepwise",
	Short: "A step-driven acceptance test toolkit",
	Long: `Stepwise runs acceptance test scenarios as sequences of steps.

Each step calls an action on a capability (Filesystem, Cli, Asserts).
Actions can run in a separate worker process that talks to the test
runner through a pair of files.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. An interrupt cancels the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: stepwise.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	registerFlagCompletions()

	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads --config, or a default file from the working directory.
func loadConfig() (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return config.LoadOrDefault(cfgFile, dir)
}

// newLogger builds the console logger described by cfg. --verbose lowers
// the level to debug.
func newLogger(cfg *config.Config, w io.Writer) ports.Logger {
	level := cfg.LogLevel()
	if verbose {
		level = ports.LevelDebug
	}
	return logging.NewConsoleLogger(
		logging.WithOutput(w),
		logging.WithLevel(level),
		logging.WithFormat(cfg.Log.Format),
	)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var list *config.ErrorList
	if errors.As(err, &list) {
		return list.Format()
	}

	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s %s\n", styles.errorLabel.Render("Error:"), formatError(err))
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml", "ini"}, cobra.ShellCompDirectiveFilterFileExt
	})
}
