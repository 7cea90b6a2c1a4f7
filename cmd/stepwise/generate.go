package main

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/stepwise/internal/capabilities"
	"github.com/felixgeelhaar/stepwise/internal/domain/codegen"
	"github.com/spf13/cobra"
)

var (
	generateManifest string
	generatePackage  string
	generateOutput   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate actor step methods",
	Long: `Generate the actor's step methods from an action manifest.

Every action gets a base method. Derived methods are added where they
apply: retry<Action> for retried actions, tryTo<Action> for optional
ones and can<Action>/cant<Action> for conditional assertions.

Without --manifest the built-in actions are used.`,
	Example: `  stepwise generate --package actor --output steps_gen.go
  stepwise generate --manifest actions.yaml`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateManifest, "manifest", "", "action manifest (default: built-in actions)")
	generateCmd.Flags().StringVar(&generatePackage, "package", "actor", "package name of the generated file")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file (default: stdout)")

	_ = generateCmd.RegisterFlagCompletionFunc("manifest", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	var (
		manifest *codegen.Manifest
		err      error
	)
	if generateManifest != "" {
		manifest, err = codegen.LoadManifest(generateManifest)
	} else {
		manifest, err = capabilities.Manifest()
	}
	if err != nil {
		return err
	}

	src, err := codegen.GenerateFile(generatePackage, manifest)
	if err != nil {
		return err
	}

	if generateOutput == "" {
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}

	if err := os.WriteFile(generateOutput, src, 0o644); err != nil { //nolint:gosec // generated source is meant to be readable
		return fmt.Errorf("failed to write %s: %w", generateOutput, err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", styles.success.Render("Generated"), generateOutput)
	return nil
}
