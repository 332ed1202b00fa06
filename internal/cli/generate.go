package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrnoize/pkg/codes"
	"github.com/matzehuels/qrnoize/pkg/distort"
	"github.com/matzehuels/qrnoize/pkg/errors"
	qio "github.com/matzehuels/qrnoize/pkg/io"
)

// generateFlags holds flag values for the generate command.
type generateFlags struct {
	jobs        string
	count       int
	length      int
	symbologies []string
	size        int
	seed        uint64
	quality     int
}

// generateCommand creates the generate command that writes clean codes to
// distort later.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate <output-dir>",
		Short: "Write QR, Aztec and Data Matrix code images",
		Long: `Write code images to an output directory.

Without --jobs, --count codes are written with random alphanumeric payloads of
--length characters, each named by a UUID. The symbology of each code is drawn
from --symbology.

With --jobs, codes are read from a job file. Each job starts with a header
"type:amount[:None|:key=value...]" followed by amount payload lines, and the
codes are written as 0.jpg, 1.jpg and so on.`,
		Example: `  # Ten random codes
  qrnoize generate codes/

  # Reproducible QR codes only
  qrnoize generate codes/ --count 100 --symbology qrcode --seed 7

  # Codes listed in a job file
  qrnoize generate codes/ --jobs payloads.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			settings, err := c.loadSettings(logger)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			applyUint64(fs, "seed", &flags.seed, settings.Seed)
			applyInt(fs, "quality", &flags.quality, settings.JPEGQuality)

			syms, err := codes.ParseSymbologies(flags.symbologies)
			if err != nil {
				return err
			}
			opts := codes.Options{
				OutputDir:   args[0],
				Quality:     flags.quality,
				Encode:      codes.EncodeOptions{Size: flags.size},
				Logger:      logger,
				Count:       flags.count,
				Length:      flags.length,
				Symbologies: syms,
			}
			if flags.seed != 0 {
				opts.Source = distort.NewSource(flags.seed, 0)
			}

			prog := newProgress(logger)
			var out []codes.Generated
			if flags.jobs != "" {
				out, err = generateFromJobs(cmd, flags.jobs, opts)
			} else {
				out, err = codes.GenerateRandom(ctx, opts)
			}
			if err != nil {
				return err
			}
			prog.done("Generated codes")

			counts := map[codes.Symbology]int{}
			for _, g := range out {
				counts[g.Symbology]++
			}
			for _, s := range []codes.Symbology{codes.QRCode, codes.AztecCode, codes.DataMatrix} {
				if counts[s] > 0 {
					printKeyValue(s.String(), StyleNumber.Render(fmt.Sprint(counts[s])))
				}
			}
			printSuccess("Wrote %d codes", len(out))
			printFile(args[0])
			return nil
		},
	}

	names := make([]string, len(codes.Supported))
	for i, s := range codes.Supported {
		names[i] = s.String()
	}
	cmd.Flags().StringVar(&flags.jobs, "jobs", "", "job file listing symbologies and payloads")
	cmd.Flags().IntVarP(&flags.count, "count", "n", codes.DefaultCount, "number of random codes")
	cmd.Flags().IntVar(&flags.length, "length", codes.DefaultLength, "characters per random payload")
	cmd.Flags().StringSliceVar(&flags.symbologies, "symbology", names, "symbologies to draw from ("+strings.Join(names, ", ")+")")
	cmd.Flags().IntVar(&flags.size, "size", codes.DefaultSize, "approximate code size in pixels, without the quiet zone")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed for reproducible payloads (0 = random)")
	cmd.Flags().IntVarP(&flags.quality, "quality", "q", qio.DefaultQuality, "JPEG quality (1-100)")
	_ = cmd.RegisterFlagCompletionFunc("symbology", cobra.FixedCompletions(names, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func generateFromJobs(cmd *cobra.Command, path string, opts codes.Options) ([]codes.Generated, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	jobs, err := codes.ParseJobs(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "parse %s", path)
	}
	return codes.GenerateJobs(cmd.Context(), jobs, opts)
}
