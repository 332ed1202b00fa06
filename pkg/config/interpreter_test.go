package config

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrnoize/pkg/distort"
	qerrors "github.com/matzehuels/qrnoize/pkg/errors"
	"github.com/matzehuels/qrnoize/pkg/raster"
)

const sample = `/ two stacks
lines
Line 0 0 0 0 100 0 1 0 9 1
Blur 0.02

blob
Blob 0 0 0 0 100 1 1 5 5 3 3

`

type flushRecord struct {
	name   string
	layers int
	stack  int
	state  State
}

func recordFlushes(in **Interpreter, out *[]flushRecord) FlushFunc {
	return func(_ context.Context, b *Block, s *distort.Stack) error {
		*out = append(*out, flushRecord{name: b.Name, layers: len(b.Layers), stack: s.Len(), state: (*in).State()})
		return nil
	}
}

func TestInterpreterFlushesOnBlankLines(t *testing.T) {
	var got []flushRecord
	var in *Interpreter
	in = NewInterpreter(Options{}, recordFlushes(&in, &got), nil)

	if err := in.Run(context.Background(), strings.NewReader(sample)); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := []flushRecord{
		{name: "lines", layers: 2, stack: 2, state: StateFlushing},
		{name: "blob", layers: 1, stack: 1, state: StateFlushing},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d flushes, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flush %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if in.State() != StateCollecting {
		t.Errorf("state after run = %v, want collecting", in.State())
	}
	if in.Stack().Len() != 0 {
		t.Error("stack should be cleared after the last flush")
	}
	if len(in.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", in.Warnings())
	}
}

func TestInterpreterMalformedLineIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	var got []flushRecord
	var in *Interpreter
	in = NewInterpreter(Options{}, recordFlushes(&in, &got), logger)

	ctx := context.Background()
	for _, line := range []string{"noisy", "Line 1 2 3"} {
		if err := in.Step(ctx, line); err != nil {
			t.Fatalf("Step(%q) error: %v", line, err)
		}
	}
	if in.Stack().Len() != 0 {
		t.Fatal("malformed line must not change the stack")
	}

	if err := in.Step(ctx, "Line 0 0 0 0 100 0 1 0 9 1"); err != nil {
		t.Fatal(err)
	}
	if in.Stack().Len() != 1 {
		t.Error("valid line after a malformed one should still be processed")
	}

	warnings := in.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Line != 2 || warnings[0].Code != qerrors.ErrCodeConfigSyntax {
		t.Errorf("warning = %+v", warnings[0])
	}
	if !strings.Contains(buf.String(), "Line 1 2 3") {
		t.Errorf("warning should be logged, got %q", buf.String())
	}
}

func TestInterpreterCommentsAndNames(t *testing.T) {
	in := NewInterpreter(Options{}, nil, nil)
	ctx := context.Background()

	for _, line := range []string{"/ comment", "/Line 0 0 0 0 100 0 1 0 9 1", "first", "second"} {
		if err := in.Step(ctx, line); err != nil {
			t.Fatal(err)
		}
	}
	if in.Stack().Len() != 0 {
		t.Error("commented directives must be ignored")
	}
	if in.Name() != "second" {
		t.Errorf("Name = %q, want the last single-token line", in.Name())
	}
}

func TestInterpreterNamePersistsAcrossFlushes(t *testing.T) {
	var got []flushRecord
	var in *Interpreter
	in = NewInterpreter(Options{}, recordFlushes(&in, &got), nil)

	cfg := "tag\nBlur 0.1\n\nBlur 0.2\n\n"
	if err := in.Run(context.Background(), strings.NewReader(cfg)); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].name != "tag" || got[1].name != "tag" {
		t.Errorf("flushes = %+v, want both named tag", got)
	}
}

func TestInterpreterEmptyFlushStillRuns(t *testing.T) {
	var got []flushRecord
	var in *Interpreter
	in = NewInterpreter(Options{}, recordFlushes(&in, &got), nil)

	if err := in.Run(context.Background(), strings.NewReader("plain\n\n")); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].layers != 0 {
		t.Errorf("blank line should flush an empty stack, got %+v", got)
	}
}

func TestInterpreterDropsPendingAtEOF(t *testing.T) {
	var got []flushRecord
	var in *Interpreter
	in = NewInterpreter(Options{}, recordFlushes(&in, &got), nil)

	if err := in.Run(context.Background(), strings.NewReader("tail\nBlur 0.1\nBlur 0.2")); err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("layers without a trailing blank line should not flush, got %+v", got)
	}
	if in.Stack().Len() != 0 || len(in.Pending()) != 0 {
		t.Error("dropped layers should be cleared")
	}
	warnings := in.Warnings()
	if len(warnings) != 1 || warnings[0].Code != qerrors.ErrCodeConfigSyntax || !strings.Contains(warnings[0].Reason, "2 layer(s)") {
		t.Errorf("warnings = %+v, want one about 2 unflushed layers", warnings)
	}
}

func TestInterpreterFlushAtEOF(t *testing.T) {
	var got []flushRecord
	var in *Interpreter
	in = NewInterpreter(Options{FlushAtEOF: true}, recordFlushes(&in, &got), nil)

	if err := in.Run(context.Background(), strings.NewReader("tail\nBlur 0.1")); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].name != "tail" || got[0].layers != 1 {
		t.Errorf("pending layers should flush at EOF, got %+v", got)
	}

	got = nil
	in = NewInterpreter(Options{FlushAtEOF: true}, recordFlushes(&in, &got), nil)
	if err := in.Run(context.Background(), strings.NewReader("tail\nBlur 0.1\n\n")); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("EOF after a flush should not flush again, got %d", len(got))
	}
	if len(in.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", in.Warnings())
	}
}

func TestInterpreterCRLF(t *testing.T) {
	tbl, err := Parse(strings.NewReader("crlf\r\nBlur 0.1\r\n\r\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Blocks) != 1 || tbl.Blocks[0].Name != "crlf" || len(tbl.Blocks[0].Layers) != 1 {
		t.Errorf("CRLF config parsed as %+v", tbl.Blocks)
	}
}

func TestInterpreterRejectsUnsafeNames(t *testing.T) {
	in := NewInterpreter(Options{}, nil, nil)
	ctx := context.Background()
	_ = in.Step(ctx, "safe")
	_ = in.Step(ctx, "../escape")

	if in.Name() != "safe" {
		t.Errorf("Name = %q, unsafe names should be ignored", in.Name())
	}
	if len(in.Warnings()) != 1 || in.Warnings()[0].Code != qerrors.ErrCodeInvalidStackName {
		t.Errorf("warnings = %+v", in.Warnings())
	}
}

func TestInterpreterFlushErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	in := NewInterpreter(Options{}, func(context.Context, *Block, *distort.Stack) error {
		calls++
		return boom
	}, nil)

	err := in.Run(context.Background(), strings.NewReader("a\n\nb\n\n"))
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want boom", err)
	}
	if calls != 1 {
		t.Errorf("flush called %d times, want 1", calls)
	}
	if in.State() != StateCollecting || in.Stack().Len() != 0 {
		t.Error("failed flush should still reset the interpreter")
	}
}

func TestInterpreterContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := NewInterpreter(Options{}, nil, nil)
	if err := in.Run(ctx, strings.NewReader("a\n\n")); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestInterpreterStackAppliesLayers(t *testing.T) {
	var out *raster.Raster
	in := NewInterpreter(Options{}, func(_ context.Context, _ *Block, s *distort.Stack) error {
		out = raster.New(10, 10)
		s.ProcessImage(out)
		return nil
	}, nil)

	cfg := "white\nLine 0 0 0 0 100 0 1.0 0 9 1\n\n"
	if err := in.Run(context.Background(), strings.NewReader(cfg)); err != nil {
		t.Fatal(err)
	}
	for i, v := range out.Pix {
		if v != 255 {
			t.Fatalf("pixel %d = %d, want 255", i, v)
		}
	}
}

func TestParseTable(t *testing.T) {
	tbl, err := Parse(strings.NewReader(sample+"lines\nBlur 0.5\n\nbroken\nSin 1\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(tbl.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(tbl.Blocks))
	}
	names := tbl.Names()
	if len(names) != 2 || names[0] != "lines" || names[1] != "blob" {
		t.Errorf("Names = %v, want [lines blob]", names)
	}

	b, ok := tbl.Lookup("lines")
	if !ok || len(b.Layers) != 2 {
		t.Errorf("Lookup(lines) = %+v, %v; want the first block", b, ok)
	}
	if kinds := b.Kinds(); kinds[0] != distort.KindLines || kinds[1] != distort.KindBlur {
		t.Errorf("Kinds = %v", kinds)
	}
	if _, ok := tbl.Lookup("missing"); ok {
		t.Error("Lookup of unknown name should fail")
	}
	if len(tbl.Warnings) != 1 || tbl.Warnings[0].Line != 13 {
		t.Errorf("Warnings = %+v, want one at line 13", tbl.Warnings)
	}
}

func TestBlockBuildSeeded(t *testing.T) {
	tbl, err := Parse(strings.NewReader("half\nLine 0 0 0 0 50 0 1 0 99 1\nLine 0 0 0 0 50 1 0.5 0 99 0\n\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b := &tbl.Blocks[0]

	x := raster.Filled(16, 16, 128)
	y := x.Clone()
	b.Build(SeededSources(7)).ProcessImage(x)
	b.Build(SeededSources(7)).ProcessImage(y)
	if !x.Equal(y) {
		t.Error("same seed should reproduce the same output")
	}

	if SeededSources(0) != nil {
		t.Error("zero seed should mean unseeded")
	}
}
