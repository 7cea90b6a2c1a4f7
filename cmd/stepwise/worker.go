package main

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/stepwise/internal/capabilities"
	"github.com/felixgeelhaar/stepwise/internal/domain/worker"
	"github.com/spf13/cobra"
)

var workerInv worker.Invocation

var workerCmd = &cobra.Command{
	Use:   worker.Command,
	Short: "Serve one action call over a file channel",
	Long: `Run a single capability action on behalf of a test runner.

The worker reads the call parameters from --input, invokes the method and
writes its result to --output, then exits. It is started by the runner
and is not meant to be run by hand.`,
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runWorker,
}

func init() {
	flags := workerCmd.Flags()
	flags.StringVar(&workerInv.InputPath, "input", "", "file to read parameters from")
	flags.StringVar(&workerInv.OutputPath, "output", "", "file to write the result to")
	flags.StringVar(&workerInv.Capability, "capability", "", "capability providing the method")
	flags.StringVar(&workerInv.Method, "method", "", "method to invoke")
	flags.DurationVar(&workerInv.PollInterval, "poll-interval", 0, "channel poll interval (default: from config)")
	flags.DurationVar(&workerInv.ReadTimeout, "read-timeout", 0, "channel read timeout (default: from config)")

	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inv := workerInv
	if inv.PollInterval == 0 {
		inv.PollInterval = cfg.IPC.PollInterval.Std()
	}
	if inv.ReadTimeout == 0 {
		inv.ReadTimeout = cfg.IPC.ReadTimeout.Std()
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	registry, err := capabilities.Registry(capabilities.Options{Dir: dir})
	if err != nil {
		return err
	}

	// stdout may be forwarded to the runner's output, keep logs on stderr.
	logger := newLogger(cfg, cmd.ErrOrStderr())
	return worker.Run(cmd.Context(), inv, registry, logger)
}
