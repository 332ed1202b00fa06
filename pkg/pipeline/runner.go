package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/qrnoize/pkg/config"
	"github.com/matzehuels/qrnoize/pkg/distort"
	"github.com/matzehuels/qrnoize/pkg/errors"
	qio "github.com/matzehuels/qrnoize/pkg/io"
	"github.com/matzehuels/qrnoize/pkg/observability"
)

// Runner applies flushed stacks to input targets.
//
// The Runner holds no per-run state. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute interprets the configuration at opts.ConfigPath, flushing every
// selected stack over opts.Input.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", res.RunID[:8])
	opts.Logger = logger
	start := time.Now()

	if _, err := ResolveTarget(opts.Input); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create output directory %s", opts.OutputDir)
	}
	f, err := os.Open(opts.ConfigPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open config %s", opts.ConfigPath)
	}
	defer f.Close()

	in := config.NewInterpreter(opts.ConfigOptions(), func(ctx context.Context, b *config.Block, stack *distort.Stack) error {
		if !opts.Selected(b.Name) {
			logger.Debug("stack not selected", "stack", b.Name)
			res.Ignored = append(res.Ignored, b.Name)
			return nil
		}
		fr, err := r.Flush(ctx, opts, b, stack)
		res.Flushes = append(res.Flushes, fr)
		return err
	}, logger)
	in.SetSources(config.SeededSources(opts.Seed))

	err = in.Run(ctx, f)
	res.Warnings = in.Warnings()
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}
	logger.Info("run complete", "stacks", len(res.Flushes), "images", res.Images(), "warnings", len(res.Warnings))
	return res, nil
}

// Flush runs stack over every accepted image of opts.Input. With more than
// one worker, stack is left untouched and each worker builds its own from
// b.Layers instead.
//
// Inputs that fail to decode are reported in FlushResult.Failed and do not
// stop the flush. Write errors and cancellation do.
func (r *Runner) Flush(ctx context.Context, opts Options, b *config.Block, stack *distort.Stack) (FlushResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return FlushResult{}, err
	}
	logger := opts.Logger.With("stack", b.Name)
	res := FlushResult{Stack: b.Name, Layers: len(b.Layers)}

	target, err := ResolveTarget(opts.Input)
	if err != nil {
		return res, err
	}
	for _, p := range target.Skipped {
		r.skip(ctx, logger, p)
	}
	res.Skipped = target.Skipped

	hooks := observability.Pipeline()
	hooks.OnFlushStart(ctx, b.Name, len(b.Layers))
	start := time.Now()

	files := target.Files
	outs := make([]string, len(files))
	failed := make([]bool, len(files))

	process := func(ctx context.Context, s *distort.Stack, i int) error {
		out, err := r.apply(ctx, opts, b.Name, s, files[i])
		if errors.Is(err, errors.ErrCodeInvalidInput) {
			logger.Warn("skipping unreadable image", "path", files[i], "reason", errors.UserMessage(err))
			failed[i] = true
			return nil
		}
		outs[i] = out
		return err
	}

	workers := min(opts.Workers, len(files))
	if workers <= 1 {
		for i := range files {
			if err = ctx.Err(); err != nil {
				break
			}
			if err = process(ctx, stack, i); err != nil {
				break
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for w := range workers {
			g.Go(func() error {
				s := b.Build(workerSources(opts.Seed, w))
				for i := w; i < len(files); i += workers {
					if err := gctx.Err(); err != nil {
						return err
					}
					if err := process(gctx, s, i); err != nil {
						return err
					}
				}
				return nil
			})
		}
		err = g.Wait()
	}

	for i, f := range files {
		switch {
		case failed[i]:
			res.Failed = append(res.Failed, f)
		case outs[i] != "":
			res.Written = append(res.Written, outs[i])
		}
	}
	res.Duration = time.Since(start)
	hooks.OnFlushComplete(ctx, b.Name, len(res.Written), res.Duration, err)
	if err != nil {
		return res, err
	}

	logger.Info("flushed stack",
		"layers", res.Layers,
		"images", len(res.Written),
		"skipped", len(res.Skipped),
		"duration", res.Duration.Round(time.Millisecond))
	return res, nil
}

// apply distorts one image and writes the result, returning the output path.
func (r *Runner) apply(ctx context.Context, opts Options, name string, stack *distort.Stack, path string) (out string, err error) {
	hooks := observability.Pipeline()
	hooks.OnImageStart(ctx, name, path)
	start := time.Now()
	defer func() {
		hooks.OnImageComplete(ctx, name, path, time.Since(start), err)
	}()

	img, err := qio.ImportImage(path)
	if err != nil {
		return "", err
	}
	stack.ProcessImage(img)

	out = OutputPath(opts.OutputDir, path, name)
	if err := qio.ExportImage(out, img, opts.JPEGQuality); err != nil {
		return "", err
	}
	opts.Logger.Debug("wrote image", "input", path, "output", out, "duration", time.Since(start).Round(time.Millisecond))
	return out, nil
}

func (r *Runner) skip(ctx context.Context, logger *log.Logger, path string) {
	reason := "unsupported format: " + path
	logger.Warn("unsupported format", "ext", extOf(path), "path", path)
	observability.Config().OnWarning(ctx, string(errors.ErrCodeUnsupportedFormat), 0, reason)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// workerSources gives worker w its own deterministic streams. Worker 0 sees
// the same streams as a sequential run.
func workerSources(seed uint64, w int) config.SourceFunc {
	if seed == 0 {
		return nil
	}
	return func(i int) distort.Source {
		return distort.NewSource(seed, uint64(w)<<32|uint64(i))
	}
}
