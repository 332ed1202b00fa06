package codes

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/qrnoize/pkg/distort"
	"github.com/matzehuels/qrnoize/pkg/errors"
	qio "github.com/matzehuels/qrnoize/pkg/io"
)

// Alphabet holds the characters random payloads are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Defaults for random generation.
const (
	DefaultCount  = 10
	DefaultLength = 10
)

// Generated describes one written code image.
type Generated struct {
	Path      string
	Symbology Symbology
	Data      string
}

// Options configures a generation batch.
type Options struct {
	OutputDir string
	Quality   int // JPEG quality; 0 uses qio.DefaultQuality
	Encode    EncodeOptions
	Logger    *log.Logger

	// Random mode only.
	Count       int
	Length      int
	Symbologies []Symbology // drawn from uniformly; empty means Supported
	Source      distort.Source
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Count <= 0 {
		o.Count = DefaultCount
	}
	if o.Length <= 0 {
		o.Length = DefaultLength
	}
	if len(o.Symbologies) == 0 {
		o.Symbologies = Supported
	}
	if o.Source == nil {
		o.Source = distort.RandomSource()
	}
}

// RandomData returns n characters drawn from Alphabet.
func RandomData(src distort.Source, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = Alphabet[src.IntN(len(Alphabet))]
	}
	return string(b)
}

// GenerateRandom writes opts.Count codes with random payloads to
// opts.OutputDir. Each file is named by a fresh UUID.
func GenerateRandom(ctx context.Context, opts Options) ([]Generated, error) {
	opts.setDefaults()
	if err := ensureDir(opts.OutputDir); err != nil {
		return nil, err
	}

	out := make([]Generated, 0, opts.Count)
	for range opts.Count {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		sym := opts.Symbologies[opts.Source.IntN(len(opts.Symbologies))]
		data := RandomData(opts.Source, opts.Length)
		path := filepath.Join(opts.OutputDir, uuid.New().String()+".jpg")
		if err := write(path, sym, data, opts.Encode, opts.Quality); err != nil {
			return out, err
		}
		opts.Logger.Debug("Generated code", "symbology", sym, "data", data, "path", path)
		out = append(out, Generated{Path: path, Symbology: sym, Data: data})
	}
	return out, nil
}

// GenerateJobs writes every payload of jobs to opts.OutputDir as
// <index>.jpg, counting from 0 across all jobs. Per-job options override
// opts.Encode field by field.
func GenerateJobs(ctx context.Context, jobs []Job, opts Options) ([]Generated, error) {
	opts.setDefaults()
	if err := ensureDir(opts.OutputDir); err != nil {
		return nil, err
	}

	var out []Generated
	for _, job := range jobs {
		enc := merge(opts.Encode, job.Options)
		opts.Logger.Info("Generating codes", "symbology", job.Symbology, "amount", len(job.Data), "line", job.Line)
		for _, data := range job.Data {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			path := filepath.Join(opts.OutputDir, strconv.Itoa(len(out))+".jpg")
			if err := write(path, job.Symbology, data, enc, opts.Quality); err != nil {
				return out, errors.Wrap(errors.GetCode(err), err, "job at line %d", job.Line)
			}
			out = append(out, Generated{Path: path, Symbology: job.Symbology, Data: data})
		}
	}
	return out, nil
}

func merge(base, over EncodeOptions) EncodeOptions {
	if over.Size > 0 {
		base.Size = over.Size
	}
	if over.QuietZone > 0 {
		base.QuietZone = over.QuietZone
	}
	if over.Level != "" {
		base.Level = over.Level
	}
	if over.ECPercent > 0 {
		base.ECPercent = over.ECPercent
	}
	if over.Layers > 0 {
		base.Layers = over.Layers
	}
	return base
}

func write(path string, sym Symbology, data string, enc EncodeOptions, quality int) error {
	r, err := Encode(sym, data, enc)
	if err != nil {
		return err
	}
	return qio.ExportImage(path, r, quality)
}

func ensureDir(dir string) error {
	if dir == "" {
		return errors.New(errors.ErrCodeInvalidArgs, "output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
	}
	return nil
}
