package distort

import "math"

// Kind names a layer type as it appears in configuration files.
type Kind string

// Layer kinds.
const (
	KindLines Kind = "Line"
	KindBlob  Kind = "Blob"
	KindSin   Kind = "Sin"
	KindBlur  Kind = "Blur"
)

// Rule decides whether a printer's delta applies at a tiled coordinate.
// x is the row index and y the column index.
type Rule interface {
	Kind() Kind
	Fires(x, y, density int, src Source) bool
}

// Lines selects a band of rows (Horizontal) or columns between Start and
// End inclusive.
type Lines struct {
	Start      int
	End        int
	Horizontal bool
}

// Kind returns KindLines.
func (Lines) Kind() Kind { return KindLines }

// Fires implements Rule.
func (l Lines) Fires(x, y, density int, src Source) bool {
	c := y
	if l.Horizontal {
		c = x
	}
	return c >= l.Start && c <= l.End && src.IntN(100) < density
}

// Blob selects the interior of an axis-aligned ellipse centred at
// (CenterX, CenterY) with semi-axes RadiusA (rows) and RadiusB (columns).
type Blob struct {
	CenterX int
	CenterY int
	RadiusA int
	RadiusB int
}

// Kind returns KindBlob.
func (Blob) Kind() Kind { return KindBlob }

// Fires implements Rule. Points on the boundary never fire. The density
// draw covers [0,100] and is compared with <=, unlike the other rules.
func (b Blob) Fires(x, y, density int, src Source) bool {
	a2 := b.RadiusA * b.RadiusA
	b2 := b.RadiusB * b.RadiusB
	dx := x - b.CenterX
	dy := y - b.CenterY
	length := dx*dx*b2 + dy*dy*a2
	return length < a2*b2 && src.IntN(101) <= density
}

// Sin selects the area between the line at Start and a rectified sine wave
// of the given Amplitude and Period, phase-shifted by Shift. Horizontal
// swaps the roles of rows and columns.
type Sin struct {
	Start      int
	Shift      int
	Amplitude  int
	Period     float64
	Horizontal bool
}

// Kind returns KindSin.
func (Sin) Kind() Kind { return KindSin }

// Fires implements Rule.
func (s Sin) Fires(x, y, density int, src Source) bool {
	if s.Horizontal {
		x, y = y, x
	}
	if y <= s.Start {
		return false
	}
	wave := math.Abs(math.Sin(float64(x-s.Shift)/s.Period)) * float64(s.Amplitude)
	return wave > float64(y-s.Start) && src.IntN(100) < density
}
