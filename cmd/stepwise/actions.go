package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/stepwise/internal/capabilities"
	"github.com/felixgeelhaar/stepwise/internal/domain/capability"
	"github.com/felixgeelhaar/stepwise/internal/domain/codegen"
	"github.com/spf13/cobra"
)

var (
	actionsVariants bool
	actionsDocs     bool
)

var actionsCmd = &cobra.Command{
	Use:   "actions [capability...]",
	Short: "List the built-in actions",
	Long: `List the actions of the built-in capabilities.

Assertions (see*/dontSee*) are highlighted. Use --variants to also show
the generated retry, try and conditional methods of each action.`,
	Example: `  stepwise actions
  stepwise actions Filesystem --variants --docs`,
	RunE: runActions,
}

func init() {
	actionsCmd.Flags().BoolVar(&actionsVariants, "variants", false, "show generated variants")
	actionsCmd.Flags().BoolVar(&actionsDocs, "docs", false, "show action documentation")

	rootCmd.AddCommand(actionsCmd)
}

func runActions(cmd *cobra.Command, args []string) error {
	registry, err := capabilities.Registry(capabilities.Options{})
	if err != nil {
		return err
	}
	return printActions(cmd.OutOrStdout(), registry.Actions(), args)
}

func printActions(w io.Writer, infos []capability.ActionInfo, only []string) error {
	filter := make(map[string]bool, len(only))
	for _, name := range only {
		filter[strings.ToLower(name)] = true
	}

	_, _ = fmt.Fprintln(w, styles.title.Render("Actions"))

	current := ""
	shown := 0
	for _, info := range infos {
		if len(filter) > 0 && !filter[strings.ToLower(info.Capability)] {
			continue
		}
		if info.Capability != current {
			current = info.Capability
			_, _ = fmt.Fprintln(w, styles.capability.Render(current))
		}
		shown++

		spec := codegen.GeneratedStepSpec{Action: info.Action, Capability: info.Capability}
		line := styles.action.Render(info.Action)
		if spec.IsAssertion() {
			line = styles.assertion.Render(info.Action)
		}
		if actionsVariants {
			var names []string
			for _, tmpl := range codegen.Derive(spec) {
				names = append(names, tmpl.Method)
			}
			if len(names) > 0 {
				line += " " + styles.variant.Render(strings.Join(names, ", "))
			}
		}
		_, _ = fmt.Fprintln(w, line)

		if actionsDocs && info.Doc != "" {
			_, _ = fmt.Fprintln(w, styles.doc.Render(info.Doc))
		}
	}

	if shown == 0 {
		return fmt.Errorf("no capability named %s", strings.Join(only, ", "))
	}
	return nil
}
