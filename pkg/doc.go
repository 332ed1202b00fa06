// Package pkg provides the core libraries for qrnoize document distortion.
//
// # Overview
//
// qrnoize synthesizes visual noise on top of grayscale document scans. A
// configuration file describes named stacks of layers; each stack is applied
// to every input image and the result is written next to the others. The pkg
// directory is organized into these areas:
//
//  1. [raster] and [distort] - pixel buffers, noise rules, printers and stacks
//  2. [config] - the line-oriented configuration interpreter
//  3. [pipeline] - batch orchestration (config → stacks → images)
//  4. [io], [render] and [server] - image files, stack graphs and HTTP access
//  5. [codes] - clean code images to distort, and decoding of the results
//
// # Architecture
//
// The typical data flow through qrnoize:
//
//	config file
//	     ↓
//	[config] package (directives → layer specs → stacks, flushed at blank lines)
//	     ↓
//	[pipeline] package (resolve inputs, apply stack per image, worker pool)
//	     ↓
//	[io] package (JPEG decode/encode)
//	     ↓
//	<output-dir>/<stem>_<stack>.jpg
//
// # Quick Start
//
// Run every stack of a configuration over a directory:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/qrnoize/pkg/pipeline"
//	)
//
//	res, err := pipeline.NewRunner(nil).Execute(context.Background(), pipeline.Options{
//	    Input:      "scans/",
//	    OutputDir:  "out/",
//	    ConfigPath: "noise.cfg",
//	    Seed:       42,
//	})
//
// Build a stack by hand:
//
//	stack := distort.NewStack()
//	stack.AddLayer(distort.NewPrinter(distort.Lines{Start: 10, End: 12}, distort.Params{
//	    Density: 100, Black: true, Intensity: 1,
//	}, nil))
//	stack.AddLayer(distort.NewBlur(0.01))
//	stack.ProcessImage(img)
//
// # Main Packages
//
// [raster] - 8-bit grayscale buffers addressed as (row, column), plus the
// saturating [raster.Normalize].
//
// [distort] - Noise rules (Lines, Blob, Sin), the Printer that samples them
// with tiling and limits, the Blur modifier and the ordered Stack.
//
// [cache] - Generic bounded memo used by printers to reuse tiled decisions.
//
// [config] - Interpreter for the configuration format and the [config.Table]
// view used by listing and graphing tools.
//
// [pipeline] - Batch runner: input resolution, output naming, seeded worker
// pool and run results.
//
// [io] - JPEG import/export and canvas composition with bounding boxes.
//
// [render] - Graphviz DOT and SVG views of the stacks of a configuration.
//
// [server] - HTTP API that applies named stacks to uploaded images.
//
// [codes] - QR, Aztec and Data Matrix generation, job files and the
// validation.json decoding report.
//
// [errors] - Error codes, wrapping and exit status mapping.
//
// [observability] - Hooks for flushes, images, config warnings and HTTP
// requests.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/distort/...   # Specific package
//	go test -run Example        # Examples only
//
// [raster]: https://pkg.go.dev/github.com/matzehuels/qrnoize/pkg/raster
// [distort]: https://pkg.go.dev/github.com/matzehuels/qrnoize/pkg/distort
// [cache]: https://pkg.go.dev/github.com/matzehuels/qrnoize/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/qrnoize/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/qrnoize/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/qrnoize/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/qrnoize/pkg/render
// [server]: https://pkg.go.dev/github.com/matzehuels/qrnoize/pkg/server
// [codes]: https://pkg.go.dev/github.com/matzehuels/qrnoize/pkg/codes
// [errors]: https://pkg.go.dev/github.com/matzehuels/qrnoize/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/qrnoize/pkg/observability
package pkg
