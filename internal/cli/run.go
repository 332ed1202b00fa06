package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrnoize/pkg/errors"
	"github.com/matzehuels/qrnoize/pkg/pipeline"
)

// runFlags holds flag values for the run command.
type runFlags struct {
	workers int
	seed    uint64
	quality int
	legacy  bool
	eof     bool
	only    []string
	pick    bool
}

// runCommand creates the run command for batch processing.
func (c *CLI) runCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run <input> <output-dir> <config>",
		Short: "Apply every stack of a config to an image or a directory of images",
		Long: `Apply the noise stacks of a configuration file to an input image or to every
.jpg/.jpeg file in an input directory.

Each blank line in the config flushes the current stack: it is applied to the
input and the results are written as <output-dir>/<stem>_<stack><ext>.`,
		Example: `  # Apply every stack to a directory of scans
  qrnoize run scans/ out/ noise.cfg

  # Reproducible run with four workers
  qrnoize run scans/ out/ noise.cfg --seed 42 --workers 4

  # Only run selected stacks
  qrnoize run scans/ out/ noise.cfg --only lines,blobs`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 {
				return errors.New(errors.ErrCodeInvalidArgs, "run needs <input> <output-dir> <config>, got %d argument(s)", len(args))
			}
			return nil
		},
		ValidArgsFunction: completeRunArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd, args[0], args[1], args[2], flags)
		},
	}

	cmd.Flags().IntVarP(&flags.workers, "workers", "w", pipeline.DefaultWorkers, "images processed concurrently per stack")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed for reproducible noise (0 = random)")
	cmd.Flags().IntVarP(&flags.quality, "quality", "q", pipeline.DefaultJPEGQuality, "JPEG quality of outputs (1-100)")
	cmd.Flags().BoolVar(&flags.legacy, "legacy-limits", false, "read x_lim from the y_lim token and leave y_lim unbounded")
	cmd.Flags().BoolVar(&flags.eof, "flush-eof", false, "run layers left after the last blank line")
	cmd.Flags().StringSliceVar(&flags.only, "only", nil, "comma-separated stack names to run")
	cmd.Flags().BoolVar(&flags.pick, "pick", false, "choose stacks interactively")
	_ = cmd.RegisterFlagCompletionFunc("only", completeStackNames)

	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, input, outDir, cfgPath string, flags runFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	settings, err := c.loadSettings(logger)
	if err != nil {
		return err
	}
	fs := cmd.Flags()
	applyInt(fs, "workers", &flags.workers, settings.Workers)
	applyUint64(fs, "seed", &flags.seed, settings.Seed)
	applyInt(fs, "quality", &flags.quality, settings.JPEGQuality)
	applyBool(fs, "legacy-limits", &flags.legacy, settings.LegacyLimits)
	applyBool(fs, "flush-eof", &flags.eof, settings.FlushAtEOF)

	opts := pipeline.Options{
		Input:        input,
		OutputDir:    outDir,
		ConfigPath:   cfgPath,
		Workers:      flags.workers,
		Seed:         flags.seed,
		JPEGQuality:  flags.quality,
		LegacyLimits: flags.legacy,
		FlushAtEOF:   flags.eof,
		Only:         flags.only,
		Logger:       logger,
	}

	if flags.pick {
		picked, ok, err := pickStacks(cfgPath, opts.ConfigOptions(), flags.only)
		if err != nil {
			return err
		}
		if !ok || len(picked) == 0 {
			printInfo("No stacks selected")
			return nil
		}
		opts.Only = picked
	}

	prog := newProgress(logger)
	spinner := newSpinner(ctx, spinnerOutput(), "Reading "+cfgPath)
	restore := trackRun(spinner)
	spinner.Start()
	res, err := pipeline.NewRunner(logger).Execute(ctx, opts)
	spinner.Stop()
	restore()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Applied %d stacks", len(res.Flushes)))

	printRunSummary(res)
	return nil
}
