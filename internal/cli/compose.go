package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	qio "github.com/matzehuels/qrnoize/pkg/io"
)

// composeCommand creates the compose command that places a code image on a
// blank canvas.
func (c *CLI) composeCommand() *cobra.Command {
	var opts qio.ComposeOptions

	cmd := &cobra.Command{
		Use:   "compose <code-image> <output>",
		Short: "Paste a code image onto a white canvas and print its bounding box",
		Long: `Paste a code image onto a white canvas and print its bounding box.

The image is resized by --scale, centred horizontally, shifted by --x-offset
and placed with its top edge at --y. The bounding box is printed as
"left top right bottom", each normalized by the canvas size.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			box, err := qio.ComposeFile(args[0], args[1], opts)
			if err != nil {
				return err
			}
			logger.Debug("composed", "input", args[0], "output", args[1], "box", box.String())
			fmt.Println(box.String())
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", qio.DefaultCanvasWidth, "canvas width")
	cmd.Flags().IntVar(&opts.Height, "height", qio.DefaultCanvasHeight, "canvas height")
	cmd.Flags().IntVar(&opts.XOffset, "x-offset", qio.DefaultXOffset, "horizontal shift from the centred position")
	cmd.Flags().IntVar(&opts.Y, "y", qio.DefaultY, "top edge of the pasted image")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 1, "resize factor applied before pasting")
	return cmd
}
