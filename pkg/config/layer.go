package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/qrnoize/pkg/distort"
	"github.com/matzehuels/qrnoize/pkg/errors"
)

// Token counts required per layer kind, including the kind itself.
const (
	lineTokens = 11
	blobTokens = 12
	sinTokens  = 13
	blurTokens = 2
)

// Options controls how directives are interpreted.
type Options struct {
	// LegacyLimits reads x_lim from the y_lim token and leaves y_lim
	// unbounded, matching configurations written for older releases.
	LegacyLimits bool

	// FlushAtEOF runs layers left after the last blank line as a final
	// block. Without it they are reported and dropped.
	FlushAtEOF bool
}

// LayerSpec is a parsed layer directive. It is immutable and can build any
// number of independent modifiers.
type LayerSpec struct {
	Kind   distort.Kind
	Params distort.Params // zero for Blur
	Rule   distort.Rule   // nil for Blur
	Blur   float64        // Blur intensity
	Line   int            // 1-based source line, 0 if unknown
	Text   string         // directive as written
}

// Build constructs a fresh modifier. src seeds rule-driven printers and is
// ignored for Blur.
func (s LayerSpec) Build(src distort.Source) distort.Modifier {
	if s.Kind == distort.KindBlur {
		return distort.NewBlur(s.Blur)
	}
	return distort.NewPrinter(s.Rule, s.Params, src)
}

// String returns a compact description such as "Line[8..12 h] d=100 -255".
func (s LayerSpec) String() string {
	switch r := s.Rule.(type) {
	case distort.Lines:
		dir := "v"
		if r.Horizontal {
			dir = "h"
		}
		return fmt.Sprintf("Line[%d..%d %s] d=%d %+d", r.Start, r.End, dir, s.Params.Density, s.Params.Delta())
	case distort.Blob:
		return fmt.Sprintf("Blob[(%d,%d) %dx%d] d=%d %+d", r.CenterX, r.CenterY, r.RadiusA, r.RadiusB, s.Params.Density, s.Params.Delta())
	case distort.Sin:
		return fmt.Sprintf("Sin[start=%d amp=%d T=%g] d=%d %+d", r.Start, r.Amplitude, r.Period, s.Params.Density, s.Params.Delta())
	}
	if s.Kind == distort.KindBlur {
		return fmt.Sprintf("Blur[%g]", s.Blur)
	}
	return string(s.Kind)
}

// ParseLayer parses the tokens of a layer directive. The returned error
// carries ErrCodeConfigSyntax.
func ParseLayer(tokens []string, opts Options) (LayerSpec, error) {
	if len(tokens) == 0 {
		return LayerSpec{}, syntaxError("empty directive")
	}
	p := tokenParser{tokens: tokens}
	spec := LayerSpec{Kind: distort.Kind(tokens[0]), Text: strings.Join(tokens, " ")}

	switch spec.Kind {
	case distort.KindBlur:
		if len(tokens) < blurTokens {
			return spec, syntaxError("doesn't satisfy format: Blur needs %d tokens, got %d", blurTokens, len(tokens))
		}
		spec.Blur = p.floatAt(1)
		if p.err == nil && spec.Blur < 0 {
			return spec, syntaxError("blur intensity must not be negative")
		}
		return spec, p.err

	case distort.KindLines:
		if len(tokens) < lineTokens {
			return spec, syntaxError("doesn't satisfy format: Line needs %d tokens, got %d", lineTokens, len(tokens))
		}
		spec.Params = p.common(opts)
		spec.Rule = distort.Lines{Start: p.intAt(8), End: p.intAt(9), Horizontal: p.boolAt(10)}
		spec.Params.UseMemory = p.optBoolAt(11)

	case distort.KindBlob:
		if len(tokens) < blobTokens {
			return spec, syntaxError("doesn't satisfy format: Blob needs %d tokens, got %d", blobTokens, len(tokens))
		}
		spec.Params = p.common(opts)
		spec.Rule = distort.Blob{CenterX: p.intAt(8), CenterY: p.intAt(9), RadiusA: p.intAt(10), RadiusB: p.intAt(11)}
		spec.Params.UseMemory = p.optBoolAt(12)

	case distort.KindSin:
		if len(tokens) < sinTokens {
			return spec, syntaxError("doesn't satisfy format: Sin needs %d tokens, got %d", sinTokens, len(tokens))
		}
		spec.Params = p.common(opts)
		sin := distort.Sin{Start: p.intAt(8), Shift: p.intAt(9), Amplitude: p.intAt(10), Period: p.floatAt(11), Horizontal: p.boolAt(12)}
		spec.Params.UseMemory = p.optBoolAt(13)
		if p.err == nil && sin.Period == 0 {
			return spec, syntaxError("sin period must be non-zero")
		}
		spec.Rule = sin

	default:
		return spec, syntaxError("unknown layer kind %q", tokens[0])
	}
	return spec, p.err
}

// tokenParser converts positional tokens, keeping the first failure.
type tokenParser struct {
	tokens []string
	err    error
}

func (p *tokenParser) intAt(i int) int {
	v, err := strconv.Atoi(p.tokens[i])
	if err != nil && p.err == nil {
		p.err = syntaxError("token %d (%q) is not an integer", i, p.tokens[i])
	}
	return v
}

func (p *tokenParser) floatAt(i int) float64 {
	v, err := strconv.ParseFloat(p.tokens[i], 64)
	if p.err != nil {
		return v
	}
	switch {
	case err != nil:
		p.err = syntaxError("token %d (%q) is not a number", i, p.tokens[i])
	case math.IsInf(v, 0) || math.IsNaN(v):
		p.err = syntaxError("token %d (%q) is not a finite number", i, p.tokens[i])
	}
	return v
}

func (p *tokenParser) boolAt(i int) bool {
	return p.tokens[i] != "0"
}

func (p *tokenParser) optBoolAt(i int) bool {
	return i < len(p.tokens) && p.boolAt(i)
}

func (p *tokenParser) common(opts Options) distort.Params {
	params := distort.Params{
		RadiusX:   p.intAt(1),
		RadiusY:   p.intAt(2),
		XLim:      p.intAt(3),
		YLim:      p.intAt(4),
		Density:   p.intAt(5),
		Black:     p.boolAt(6),
		Intensity: p.floatAt(7),
	}
	if opts.LegacyLimits {
		params.XLim = params.YLim
		params.YLim = 0
	}
	return params
}

func syntaxError(format string, args ...any) error {
	return errors.New(errors.ErrCodeConfigSyntax, format, args...)
}
