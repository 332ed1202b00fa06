package distort

import (
	"math"

	"github.com/matzehuels/qrnoize/pkg/cache"
	"github.com/matzehuels/qrnoize/pkg/raster"
)

// Modifier mutates a raster in place.
type Modifier interface {
	ModifyImage(r *raster.Raster)
}

// Params holds the settings shared by every rule-driven printer.
type Params struct {
	// RadiusX and RadiusY tile the coordinate space; values below 1 disable
	// tiling on that axis.
	RadiusX int
	RadiusY int

	// XLim and YLim bound the affected rows and columns (inclusive).
	// Values <= 0 mean unbounded.
	XLim int
	YLim int

	// Density is the firing probability as an integer percentage.
	Density int

	// Black darkens pixels instead of brightening them.
	Black bool

	// Intensity scales the full-range delta of ±255.
	Intensity float64

	// UseMemory memoizes decisions per tiled coordinate. Ignored when
	// both radii are zero.
	UseMemory bool
}

// Delta returns the signed value a firing rule adds to a pixel, clamped to
// ±MaxIntensity. A NaN intensity yields 0.
func (p Params) Delta() int {
	base := float64(raster.MaxIntensity)
	if p.Black {
		base = -base
	}
	d := base * p.Intensity
	if math.IsNaN(d) {
		return 0
	}
	return int(math.Max(-raster.MaxIntensity, math.Min(d, raster.MaxIntensity)))
}

// Memoizes reports whether a printer built from p caches its decisions.
// Memoization is forced off only when both radii are zero; a negative
// radius leaves its axis untiled but still memoizes per coordinate.
func (p Params) Memoizes() bool {
	return p.UseMemory && (p.RadiusX != 0 || p.RadiusY != 0)
}

// Printer applies a Rule to every pixel of a raster.
type Printer struct {
	rule  Rule
	p     Params
	delta int
	xLim  int
	yLim  int
	src   Source
	cache cache.Cache
}

// NewPrinter builds a printer for rule. A nil src draws from a fresh
// random source.
func NewPrinter(rule Rule, p Params, src Source) *Printer {
	if src == nil {
		src = RandomSource()
	}
	pr := &Printer{
		rule:  rule,
		p:     p,
		delta: p.Delta(),
		xLim:  p.XLim,
		yLim:  p.YLim,
		src:   src,
		cache: cache.NewNullCache(),
	}
	if pr.xLim <= 0 {
		pr.xLim = math.MaxInt
	}
	if pr.yLim <= 0 {
		pr.yLim = math.MaxInt
	}
	if p.Memoizes() {
		pr.cache = cache.NewMapCache()
	}
	return pr
}

// Rule returns the printer's rule.
func (pr *Printer) Rule() Rule { return pr.rule }

// Params returns the settings the printer was built with.
func (pr *Printer) Params() Params { return pr.p }

// Delta returns the value added to selected pixels.
func (pr *Printer) Delta() int { return pr.delta }

// Memoized reports whether decisions are cached.
func (pr *Printer) Memoized() bool {
	_, null := pr.cache.(*cache.NullCache)
	return !null
}

// CacheStats returns memoization counters.
func (pr *Printer) CacheStats() cache.Stats { return pr.cache.Stats() }

// ModifyImage implements Modifier.
func (pr *Printer) ModifyImage(r *raster.Raster) {
	for x := 0; x < r.Rows && x <= pr.xLim; x++ {
		row := r.Row(x)
		for y := 0; y < r.Cols && y <= pr.yLim; y++ {
			row[y] = raster.Normalize(row[y], pr.Distortion(x, y))
		}
	}
}

// Distortion returns the delta for image coordinate (x, y) after tiling.
func (pr *Printer) Distortion(x, y int) int {
	if pr.p.RadiusX >= 1 {
		x %= pr.p.RadiusX
	}
	if pr.p.RadiusY >= 1 {
		y %= pr.p.RadiusY
	}
	return cache.Resolve(pr.cache, cache.Key{X: x, Y: y}, func() int {
		return pr.evaluate(x, y)
	})
}

func (pr *Printer) evaluate(x, y int) int {
	if pr.rule.Fires(x, y, pr.p.Density, pr.src) {
		return pr.delta
	}
	return 0
}

// Ensure Printer implements Modifier.
var _ Modifier = (*Printer)(nil)
