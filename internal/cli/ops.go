package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/automatalib/automata/pkg/definition"
	"github.com/automatalib/automata/pkg/pipeline"
)

// opFlags holds the flags shared by every operation command.
type opFlags struct {
	output      string
	retainNames bool
	skipMinify  bool
}

func (f *opFlags) register(cmd *cobra.Command, withProductFlags bool) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (stdout if empty)")
	if withProductFlags {
		cmd.Flags().BoolVar(&f.retainNames, "retain-names", false, "keep composite state names through minimization")
		cmd.Flags().BoolVar(&f.skipMinify, "raw", false, "return the raw product without minimizing")
	}
}

// applyAndWrite runs one pipeline request and writes the result.
func applyAndWrite(cmd *cobra.Command, req pipeline.Request, flags *opFlags) error {
	logger := loggerFromContext(cmd.Context())
	c, err := fileCache(logger)
	if err != nil {
		return err
	}
	defer c.Close()

	p := newProgress(logger)
	result, err := pipeline.NewRunner(c, logger).Apply(cmd.Context(), req)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("%s produced %d states", req.Operation, len(result.States)))
	return writeResult(result, flags.output)
}

// newMinifyCmd creates the minify command.
func newMinifyCmd() *cobra.Command {
	flags := &opFlags{}
	cmd := &cobra.Command{
		Use:   "minify <definition>",
		Short: "Minimize a DFA, merging equivalent states",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(args[0])
			if err != nil {
				return err
			}
			return applyAndWrite(cmd, pipeline.Request{
				Operation:   pipeline.OpMinify,
				Left:        def,
				RetainNames: flags.retainNames,
			}, flags)
		},
	}
	flags.register(cmd, false)
	cmd.Flags().BoolVar(&flags.retainNames, "retain-names", true, "keep original state names for merged classes")
	return cmd
}

// newComplementCmd creates the complement command.
func newComplementCmd() *cobra.Command {
	flags := &opFlags{}
	cmd := &cobra.Command{
		Use:   "complement <definition>",
		Short: "Complement a DFA's language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(args[0])
			if err != nil {
				return err
			}
			return applyAndWrite(cmd, pipeline.Request{
				Operation: pipeline.OpComplement,
				Left:      def,
			}, flags)
		},
	}
	flags.register(cmd, false)
	return cmd
}

// newOpCmd creates the op command with one subcommand per binary operation.
func newOpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "op",
		Short: "Apply a binary language operation to two DFAs",
		Long: `Apply a binary language operation to two DFA definitions.

Both operands must share the same alphabet. Results are minimized unless
--raw is given.

Examples:
  automata op union a.toml b.toml -o out.toml
  automata op difference a.toml b.toml --retain-names --raw`,
	}

	for _, operation := range []string{
		pipeline.OpUnion,
		pipeline.OpIntersect,
		pipeline.OpDifference,
		pipeline.OpSymDiff,
	} {
		flags := &opFlags{}
		sub := &cobra.Command{
			Use:   fmt.Sprintf("%s <left> <right>", operation),
			Short: fmt.Sprintf("Compute the %s of two DFA languages", operation),
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				left, err := loadDefinition(args[0])
				if err != nil {
					return err
				}
				right, err := loadDefinition(args[1])
				if err != nil {
					return err
				}
				return applyAndWrite(cmd, pipeline.Request{
					Operation:   cmd.Name(),
					Left:        left,
					Right:       right,
					RetainNames: flags.retainNames,
					SkipMinify:  flags.skipMinify,
				}, flags)
			},
		}
		flags.register(sub, true)
		cmd.AddCommand(sub)
	}

	return cmd
}

// newConvertCmd creates the convert command: NFA to DFA.
func newConvertCmd() *cobra.Command {
	flags := &opFlags{}
	cmd := &cobra.Command{
		Use:   "convert <nfa-definition>",
		Short: "Convert an NFA definition to an equivalent DFA",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(args[0])
			if err != nil {
				return err
			}
			return applyAndWrite(cmd, pipeline.Request{
				Operation: pipeline.OpConvert,
				Left:      def,
			}, flags)
		},
	}
	flags.register(cmd, false)
	return cmd
}

// newCheckCmd creates the check command with one subcommand per predicate.
func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate language predicates",
	}

	binary := map[string]bool{
		pipeline.CheckSubset:   true,
		pipeline.CheckSuperset: true,
		pipeline.CheckDisjoint: true,
		pipeline.CheckEqual:    true,
		pipeline.CheckEmpty:    false,
		pipeline.CheckFinite:   false,
	}

	for _, predicate := range []string{
		pipeline.CheckSubset,
		pipeline.CheckSuperset,
		pipeline.CheckDisjoint,
		pipeline.CheckEqual,
		pipeline.CheckEmpty,
		pipeline.CheckFinite,
	} {
		use := fmt.Sprintf("%s <definition>", predicate)
		nargs := 1
		if binary[predicate] {
			use = fmt.Sprintf("%s <left> <right>", predicate)
			nargs = 2
		}
		sub := &cobra.Command{
			Use:   use,
			Short: fmt.Sprintf("Check the %s predicate", predicate),
			Args:  cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				left, err := loadDefinition(args[0])
				if err != nil {
					return err
				}
				var right *definition.Definition
				if len(args) == 2 {
					right, err = loadDefinition(args[1])
					if err != nil {
						return err
					}
				}
				runner := pipeline.NewRunner(nil, loggerFromContext(cmd.Context()))
				result, err := runner.Check(cmd.Context(), cmd.Name(), left, right)
				if err != nil {
					return err
				}
				fmt.Println(result)
				return nil
			},
		}
		cmd.AddCommand(sub)
	}

	return cmd
}
