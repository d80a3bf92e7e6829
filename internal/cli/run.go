package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/automatalib/automata/pkg/pipeline"
)

// newRunCmd creates the run command: recognition of one input word.
// Symbols are passed as separate arguments after the definition file, so
// multi-character symbols work without a delimiter convention.
func newRunCmd() *cobra.Command {
	var (
		trace       bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "run <definition> [symbol...]",
		Short: "Run recognition of an input word",
		Long: `Run recognition of an input word against a DFA definition.

Each argument after the definition file is one input symbol.

Examples:
  automata run machine.toml 0 1 1 1
  automata run machine.toml --trace 0 1 0
  automata run machine.toml --interactive 0 1 1 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(args[0])
			if err != nil {
				return err
			}
			input := args[1:]

			if interactive {
				return runStepper(def, input)
			}

			runner := pipeline.NewRunner(nil, loggerFromContext(cmd.Context()))
			visited, accepted, err := runner.Run(cmd.Context(), def, input)
			if err != nil {
				return err
			}
			if trace {
				printTrace(visited, input)
			}
			printVerdict(accepted)
			if !accepted {
				// Non-zero exit so shell pipelines can branch on rejection.
				return fmt.Errorf("input rejected after %d of %d symbols", len(visited)-1, len(input))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "print the visited states")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "step through the input interactively")

	return cmd
}

// newValidateCmd creates the validate command.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <definition>",
		Short: "Validate a definition against the construction invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(args[0])
			if err != nil {
				return err
			}
			if def.IsNFA() {
				_, err = def.ToNFA()
			} else {
				_, err = def.ToDFA()
			}
			if err != nil {
				return err
			}
			printSummary(def.Name, def.States, def.Symbols, def.Finals, def.Initial)
			fmt.Println(styleAccepted.Render("valid"))
			return nil
		},
	}
}
