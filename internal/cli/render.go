package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/automatalib/automata/pkg/render"
)

// newRenderCmd creates the render command: DOT, SVG, or PNG diagrams.
func newRenderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Render an automaton diagram",
		Long: `Render an automaton diagram.

The output format follows the output file extension: .dot writes the DOT
serialization, .svg and .png rasterize it through Graphviz. Without
--output, the DOT source is printed on stdout.

Examples:
  automata render machine.toml
  automata render machine.toml -o machine.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(args[0])
			if err != nil {
				return err
			}
			machine, err := def.ToDFA()
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Print(render.ToDOT(machine))
				return nil
			}

			p := newProgress(loggerFromContext(cmd.Context()))
			var data []byte
			switch strings.ToLower(filepath.Ext(output)) {
			case ".dot":
				data = []byte(render.ToDOT(machine))
			case ".svg":
				data, err = render.RenderSVG(cmd.Context(), machine)
			case ".png":
				data, err = render.RenderPNG(cmd.Context(), machine)
			default:
				return fmt.Errorf("unsupported output %s: want .dot, .svg, or .png", output)
			}
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			p.done("rendered " + output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot, .svg, or .png)")
	return cmd
}
