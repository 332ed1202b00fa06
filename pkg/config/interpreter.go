package config

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrnoize/pkg/distort"
	"github.com/matzehuels/qrnoize/pkg/errors"
	"github.com/matzehuels/qrnoize/pkg/observability"
)

// CommentMarker starts a comment line.
const CommentMarker = "/"

// State is the interpreter's position in the collect/flush cycle.
type State int

const (
	// StateCollecting accumulates layers into the current stack.
	StateCollecting State = iota
	// StateFlushing runs the current stack; lines are not consumed.
	StateFlushing
)

func (s State) String() string {
	if s == StateFlushing {
		return "flushing"
	}
	return "collecting"
}

// Block is one flushed stack: the name in effect at the flush and the
// layers collected since the previous flush.
type Block struct {
	Name   string
	Layers []LayerSpec
	Line   int // line of the flush marker, 0 when flushed at end of input
}

// Kinds lists the layer kinds in order.
func (b *Block) Kinds() []distort.Kind {
	kinds := make([]distort.Kind, len(b.Layers))
	for i, l := range b.Layers {
		kinds[i] = l.Kind
	}
	return kinds
}

// Build constructs an independent stack from the block's layers. sources
// supplies the random source for layer i; nil uses fresh random sources.
func (b *Block) Build(sources SourceFunc) *distort.Stack {
	s := distort.NewStack()
	for i, l := range b.Layers {
		s.AddLayer(l.Build(sources.source(i)))
	}
	return s
}

// SourceFunc returns the random source for the layer at index i of a block.
type SourceFunc func(i int) distort.Source

func (f SourceFunc) source(i int) distort.Source {
	if f == nil {
		return distort.RandomSource()
	}
	return f(i)
}

// SeededSources derives one deterministic stream per layer from seed. A zero
// seed returns nil, meaning unseeded.
func SeededSources(seed uint64) SourceFunc {
	if seed == 0 {
		return nil
	}
	return func(i int) distort.Source {
		return distort.NewSource(seed, uint64(i))
	}
}

// FlushFunc runs a flushed block. stack is the interpreter's own stack,
// built incrementally from b.Layers; it is cleared after FlushFunc returns.
// A returned error aborts interpretation.
type FlushFunc func(ctx context.Context, b *Block, stack *distort.Stack) error

// Warning is a recoverable problem found while interpreting.
type Warning struct {
	Code   errors.Code
	Line   int
	Text   string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s  (%s)", w.Line, w.Text, w.Reason)
}

// Interpreter streams a configuration, building the current stack as layer
// directives arrive and flushing it at blank lines.
type Interpreter struct {
	opts    Options
	onFlush FlushFunc
	sources SourceFunc
	logger  *log.Logger

	state    State
	name     string
	specs    []LayerSpec
	stack    *distort.Stack
	line     int
	flushes  int
	warnings []Warning
}

// NewInterpreter creates an interpreter. onFlush may be nil, in which case
// flushes only clear the stack.
func NewInterpreter(opts Options, onFlush FlushFunc, logger *log.Logger) *Interpreter {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Interpreter{
		opts:    opts,
		onFlush: onFlush,
		logger:  logger,
		stack:   distort.NewStack(),
	}
}

// SetSources sets the random sources used for the interpreter's own stack.
func (in *Interpreter) SetSources(f SourceFunc) {
	in.sources = f
}

// State returns the current state.
func (in *Interpreter) State() State { return in.state }

// Name returns the current stack name.
func (in *Interpreter) Name() string { return in.name }

// Stack returns the stack being collected.
func (in *Interpreter) Stack() *distort.Stack { return in.stack }

// Pending returns the layers collected since the last flush.
func (in *Interpreter) Pending() []LayerSpec {
	out := make([]LayerSpec, len(in.specs))
	copy(out, in.specs)
	return out
}

// Flushes returns how many flushes have run.
func (in *Interpreter) Flushes() int { return in.flushes }

// Warnings returns every warning reported so far.
func (in *Interpreter) Warnings() []Warning {
	out := make([]Warning, len(in.warnings))
	copy(out, in.warnings)
	return out
}

// Run interprets r to the end. Layers left after the last blank line are
// handled by Finish.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := in.Step(ctx, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "read config")
	}
	return in.Finish(ctx)
}

// Step consumes one line.
func (in *Interpreter) Step(ctx context.Context, line string) error {
	in.line++
	line = strings.TrimRight(line, "\r\n")

	if strings.HasPrefix(line, CommentMarker) {
		return nil
	}

	tokens := strings.Fields(line)
	switch len(tokens) {
	case 0:
		return in.flush(ctx, in.line)
	case 1:
		if err := errors.ValidateStackName(tokens[0]); err != nil {
			in.warn(ctx, line, err)
			return nil
		}
		in.name = tokens[0]
		in.logger.Debug("stack name", "line", in.line, "name", in.name)
		return nil
	}

	spec, err := ParseLayer(tokens, in.opts)
	if err != nil {
		in.warn(ctx, line, err)
		return nil
	}
	spec.Line = in.line
	in.specs = append(in.specs, spec)
	in.stack.AddLayer(spec.Build(in.sources.source(len(in.specs) - 1)))
	in.logger.Debug("layer added", "line", in.line, "layer", spec.String())
	return nil
}

// Finish handles layers still pending at end of input. With
// Options.FlushAtEOF they run as a final block; otherwise they are dropped
// with a warning, since only a blank line flushes.
func (in *Interpreter) Finish(ctx context.Context) error {
	if len(in.specs) == 0 {
		return nil
	}
	if in.opts.FlushAtEOF {
		return in.flush(ctx, 0)
	}
	n := len(in.specs)
	in.stack.Clear()
	in.specs = nil
	in.warn(ctx, "<end of input>", errors.New(errors.ErrCodeConfigSyntax,
		"%d layer(s) after the last blank line were not flushed", n))
	return nil
}

func (in *Interpreter) flush(ctx context.Context, line int) error {
	in.state = StateFlushing
	defer func() {
		in.stack.Clear()
		in.specs = nil
		in.state = StateCollecting
	}()

	in.flushes++
	b := &Block{Name: in.name, Layers: in.Pending(), Line: line}
	in.logger.Debug("flush", "line", line, "name", b.Name, "layers", len(b.Layers))
	if in.onFlush == nil {
		return nil
	}
	return in.onFlush(ctx, b, in.stack)
}

func (in *Interpreter) warn(ctx context.Context, text string, err error) {
	w := Warning{
		Code:   errors.GetCode(err),
		Line:   in.line,
		Text:   text,
		Reason: errors.UserMessage(err),
	}
	in.warnings = append(in.warnings, w)
	in.logger.Warn("skipping config line", "line", w.Line, "text", w.Text, "reason", w.Reason)
	observability.Config().OnWarning(ctx, string(w.Code), w.Line, w.Reason)
}
