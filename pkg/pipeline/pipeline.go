// Package pipeline runs named noise stacks over batches of images.
//
// A run pairs an input target (one image file or a directory of images)
// with a configuration file. The configuration is interpreted line by line;
// at every flush the current stack is applied to each accepted image of the
// target and the result is written to
//
//	<output_dir>/<input_stem>_<stack_name><input_extension>
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:      "scans/",
//	    OutputDir:  "out/",
//	    ConfigPath: "noise.cfg",
//	})
//
// Only ".jpg" and ".jpeg" inputs are processed; other files in a directory
// target are skipped with a warning. An input that is neither a file nor a
// directory fails with ErrCodeInvalidInput.
//
// # Concurrency
//
// With Workers > 1 the images of one flush are processed concurrently. Each
// worker builds its own stack from the flushed block's layer specs, so no
// printer cache is ever shared between goroutines.
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrnoize/pkg/config"
	"github.com/matzehuels/qrnoize/pkg/errors"
	qio "github.com/matzehuels/qrnoize/pkg/io"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWorkers processes images sequentially.
	DefaultWorkers = 1

	// MaxWorkers bounds the worker pool.
	MaxWorkers = 64

	// DefaultJPEGQuality is the quality of written JPEG outputs.
	DefaultJPEGQuality = qio.DefaultQuality
)

// =============================================================================
// Options - Batch Configuration
// =============================================================================

// Options configures a batch run.
type Options struct {
	Input      string // image file or directory of images
	OutputDir  string // created if missing
	ConfigPath string // noise configuration file

	Workers      int
	Seed         uint64 // 0 draws fresh random sources
	JPEGQuality  int
	LegacyLimits bool
	FlushAtEOF   bool     // run layers left after the last blank line
	Only         []string // stack names to run; empty runs every stack

	// Runtime options
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidArgs, "input path is required")
	}
	if o.OutputDir == "" {
		return errors.New(errors.ErrCodeInvalidArgs, "output directory is required")
	}
	if o.Workers < 0 || o.Workers > MaxWorkers {
		return errors.New(errors.ErrCodeInvalidOptions, "workers must be between 1 and %d, got %d", MaxWorkers, o.Workers)
	}
	if o.JPEGQuality < 0 || o.JPEGQuality > 100 {
		return errors.New(errors.ErrCodeInvalidOptions, "jpeg quality must be between 1 and 100, got %d", o.JPEGQuality)
	}
	for _, name := range o.Only {
		if err := errors.ValidateStackName(name); err != nil {
			return err
		}
	}

	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ConfigOptions returns the interpreter options implied by o.
func (o *Options) ConfigOptions() config.Options {
	return config.Options{LegacyLimits: o.LegacyLimits, FlushAtEOF: o.FlushAtEOF}
}

// Selected reports whether the stack called name should run.
func (o *Options) Selected(name string) bool {
	return len(o.Only) == 0 || slices.Contains(o.Only, name)
}

// =============================================================================
// Results
// =============================================================================

// FlushResult describes one flushed stack.
type FlushResult struct {
	Stack    string
	Layers   int
	Written  []string // output paths in input order
	Skipped  []string // inputs with unsupported extensions
	Failed   []string // inputs that could not be decoded
	Duration time.Duration
}

// Result summarizes a batch run.
type Result struct {
	RunID    string
	Flushes  []FlushResult
	Ignored  []string // stacks not selected by Options.Only
	Warnings []config.Warning
	Duration time.Duration
}

// Images returns the total number of images written.
func (r *Result) Images() int {
	n := 0
	for _, f := range r.Flushes {
		n += len(f.Written)
	}
	return n
}
