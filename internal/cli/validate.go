package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrnoize/pkg/codes"
)

// validateCommand creates the validate command that decodes a directory of
// code images.
func (c *CLI) validateCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "validate <dir>",
		Short: "Decode every code image in a directory and report the text found",
		Long: `Decode every .jpg/.jpeg file in a directory as a QR, Data Matrix or Aztec code.

The results are written to <dir>/validation.json, mapping each file name to
the decoded text or "unknown". Other files are skipped with a warning.`,
		Example: `  qrnoize run codes/ noisy/ noise.cfg
  qrnoize validate noisy/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			spinner := newSpinner(ctx, spinnerOutput(), "Decoding "+args[0])
			spinner.Start()
			rep, err := codes.Validate(ctx, args[0], logger)
			spinner.Stop()
			if err != nil {
				return err
			}

			for _, name := range rep.Files() {
				text := rep.Results[name]
				if text == codes.Unknown {
					text = StyleWarning.Render(text)
				}
				printKeyValue(name, text)
			}
			for _, name := range rep.Skipped {
				printWarning("not image: %s", name)
			}
			printSuccess("Decoded %d of %d images", rep.Decoded(), len(rep.Results))

			if dryRun {
				return nil
			}
			path, err := rep.Write()
			if err != nil {
				return err
			}
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, fmt.Sprintf("print results without writing %s", codes.ReportFile))
	return cmd
}
