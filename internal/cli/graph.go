package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrnoize/pkg/config"
	"github.com/matzehuels/qrnoize/pkg/errors"
	"github.com/matzehuels/qrnoize/pkg/render"
)

// graphCommand creates the graph command that draws a config as a diagram.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		detailed bool
		legacy   bool
	)

	cmd := &cobra.Command{
		Use:   "graph <config>",
		Short: "Draw the stacks of a config file as a pipeline diagram",
		Long: `Draw every stack of a config file as a chain of layers from input to output.

Without -o the DOT source is printed to stdout. An output ending in .svg is
rendered with Graphviz; any other extension receives the DOT source.`,
		Example: `  qrnoize graph noise.cfg -o noise.svg
  qrnoize graph noise.cfg | dot -Tpng > noise.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := config.ParseFile(args[0], config.Options{LegacyLimits: legacy})
			if err != nil {
				return err
			}
			dot := render.ToDOT(tbl, render.Options{Detailed: detailed})

			if output == "" {
				fmt.Print(dot)
				return nil
			}

			data := []byte(dot)
			if filepath.Ext(output) == ".svg" {
				spinner := newSpinner(cmd.Context(), spinnerOutput(), "Rendering diagram...")
				spinner.Start()
				data, err = render.RenderSVG(cmd.Context(), dot)
				if err != nil {
					spinner.StopWithError("Rendering failed")
					return err
				}
				spinner.Stop()
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "write %s", output)
			}
			printSuccess("Diagram of %d stacks", len(tbl.Blocks))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg or .dot)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label layers with their directive text")
	cmd.Flags().BoolVar(&legacy, "legacy-limits", false, "read x_lim from the y_lim token and leave y_lim unbounded")
	return cmd
}
