package config

import (
	"strings"
	"testing"

	"github.com/matzehuels/qrnoize/pkg/distort"
	"github.com/matzehuels/qrnoize/pkg/errors"
)

func parse(t *testing.T, line string, opts Options) LayerSpec {
	t.Helper()
	spec, err := ParseLayer(strings.Fields(line), opts)
	if err != nil {
		t.Fatalf("ParseLayer(%q) error: %v", line, err)
	}
	return spec
}

func TestParseLine(t *testing.T) {
	spec := parse(t, "Line 1 2 3 4 50 1 0.5 8 12 1", Options{})

	want := distort.Params{RadiusX: 1, RadiusY: 2, XLim: 3, YLim: 4, Density: 50, Black: true, Intensity: 0.5}
	if spec.Params != want {
		t.Errorf("Params = %+v, want %+v", spec.Params, want)
	}
	if spec.Rule != (distort.Lines{Start: 8, End: 12, Horizontal: true}) {
		t.Errorf("Rule = %+v", spec.Rule)
	}
	if spec.Kind != distort.KindLines {
		t.Errorf("Kind = %q", spec.Kind)
	}

	spec = parse(t, "Line 1 2 3 4 50 1 0.5 8 12 1 1", Options{})
	if !spec.Params.UseMemory {
		t.Error("trailing use_memory token should enable memoization")
	}
	spec = parse(t, "Line 1 2 3 4 50 1 0.5 8 12 1 0", Options{})
	if spec.Params.UseMemory {
		t.Error("use_memory 0 should disable memoization")
	}
}

func TestParseBooleans(t *testing.T) {
	spec := parse(t, "Line 0 0 0 0 100 0 1 0 9 0", Options{})
	if spec.Params.Black {
		t.Error(`"0" should parse as false`)
	}
	if spec.Rule.(distort.Lines).Horizontal {
		t.Error(`"0" should parse as false`)
	}

	spec = parse(t, "Line 0 0 0 0 100 yes 1 0 9 2", Options{})
	if !spec.Params.Black || !spec.Rule.(distort.Lines).Horizontal {
		t.Error("any token other than \"0\" should parse as true")
	}
}

func TestParseLegacyLimits(t *testing.T) {
	line := "Line 0 0 3 7 100 0 1 0 9 1"

	spec := parse(t, line, Options{})
	if spec.Params.XLim != 3 || spec.Params.YLim != 7 {
		t.Errorf("limits = (%d, %d), want (3, 7)", spec.Params.XLim, spec.Params.YLim)
	}

	spec = parse(t, line, Options{LegacyLimits: true})
	if spec.Params.XLim != 7 || spec.Params.YLim != 0 {
		t.Errorf("legacy limits = (%d, %d), want (7, 0)", spec.Params.XLim, spec.Params.YLim)
	}
}

func TestParseBlob(t *testing.T) {
	spec := parse(t, "Blob 0 0 0 0 60 1 0.8 50 40 20 30 1", Options{})

	if spec.Rule != (distort.Blob{CenterX: 50, CenterY: 40, RadiusA: 20, RadiusB: 30}) {
		t.Errorf("Rule = %+v", spec.Rule)
	}
	if spec.Params.Density != 60 || spec.Params.Intensity != 0.8 || !spec.Params.UseMemory {
		t.Errorf("Params = %+v", spec.Params)
	}
}

func TestParseSin(t *testing.T) {
	spec := parse(t, "Sin 10 0 0 0 80 0 0.3 5 2 15 3.5 1", Options{})

	want := distort.Sin{Start: 5, Shift: 2, Amplitude: 15, Period: 3.5, Horizontal: true}
	if spec.Rule != want {
		t.Errorf("Rule = %+v, want %+v", spec.Rule, want)
	}
	if spec.Params.RadiusX != 10 || spec.Params.UseMemory {
		t.Errorf("Params = %+v", spec.Params)
	}
}

func TestParseBlur(t *testing.T) {
	spec := parse(t, "Blur 0.02", Options{})
	if spec.Kind != distort.KindBlur || spec.Blur != 0.02 {
		t.Errorf("spec = %+v", spec)
	}
	if _, ok := spec.Build(nil).(*distort.Blur); !ok {
		t.Error("Blur spec should build a *distort.Blur")
	}
}

func TestParseLayerErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"line too short", "Line 1 2 3"},
		{"blob too short", "Blob 0 0 0 0 60 1 0.8 50 40 20"},
		{"sin too short", "Sin 0 0 0 0 60 1 0.8 5 2 15 3.5"},
		{"blur too short", "Blur"},
		{"unknown kind", "Wave 1 2 3"},
		{"lowercase kind", "line 0 0 0 0 100 0 1 0 9 1"},
		{"bad integer", "Line a 0 0 0 100 0 1 0 9 1"},
		{"trailing garbage integer", "Line 0 0 0 0 100x 0 1 0 9 1"},
		{"bad float", "Line 0 0 0 0 100 0 strong 0 9 1"},
		{"bad blur", "Blur wide"},
		{"negative blur", "Blur -0.1"},
		{"zero period", "Sin 0 0 0 0 60 1 0.8 5 2 15 0 1"},
		{"infinite intensity", "Line 0 0 0 0 100 0 inf 0 9 1"},
		{"nan intensity", "Line 0 0 0 0 100 0 NaN 0 9 1"},
		{"overflowing intensity", "Blob 0 0 0 0 60 1 1e400 50 40 20 30"},
		{"infinite period", "Sin 0 0 0 0 60 1 0.8 5 2 15 -Inf 1"},
		{"nan blur", "Blur nan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayer(strings.Fields(tt.line), Options{})
			if err == nil {
				t.Fatalf("ParseLayer(%q) should fail", tt.line)
			}
			if !errors.Is(err, errors.ErrCodeConfigSyntax) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeConfigSyntax)
			}
		})
	}
}

func TestLayerSpecBuildIsIndependent(t *testing.T) {
	spec := parse(t, "Line 2 2 0 0 100 0 1 0 9 1 1", Options{})

	a := spec.Build(nil).(*distort.Printer)
	b := spec.Build(nil).(*distort.Printer)
	if a == b {
		t.Fatal("Build should return a new printer every time")
	}
	a.Distortion(0, 0)
	if b.CacheStats().Misses != 0 {
		t.Error("printers built from one spec must not share caches")
	}
}

func TestLayerSpecString(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Line 0 0 0 0 100 1 1 8 12 1", "Line[8..12 h] d=100 -255"},
		{"Blob 0 0 0 0 60 0 1 5 5 3 4", "Blob[(5,5) 3x4] d=60 +255"},
		{"Blur 0.02", "Blur[0.02]"},
	}
	for _, tt := range tests {
		if got := parse(t, tt.line, Options{}).String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseHugeIntensityKeepsPolarity(t *testing.T) {
	spec := parse(t, "Line 0 0 0 0 100 0 1e300 0 9 1", Options{})
	if d := spec.Params.Delta(); d != 255 {
		t.Errorf("white layer delta = %d, want 255", d)
	}
	spec = parse(t, "Line 0 0 0 0 100 1 1e300 0 9 1", Options{})
	if d := spec.Params.Delta(); d != -255 {
		t.Errorf("black layer delta = %d, want -255", d)
	}
}
