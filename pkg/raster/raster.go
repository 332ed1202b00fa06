// Package raster provides the single-channel intensity grid that every
// distortion layer mutates in place.
//
// A [Raster] is addressed the way scanned documents are read: x is the row
// (vertical) index and y is the column (horizontal) index. Samples are
// unsigned bytes, and all arithmetic applied through [Normalize] saturates
// at 0 and 255.
//
// The backing slice is shared with [Raster.Gray], so a raster can be handed to
// any image/draw based library without copying.
package raster

import (
	"image"
	"image/color"
	"image/draw"
)

const (
	// MaxIntensity is the brightest sample value.
	MaxIntensity = 255
	// MinIntensity is the darkest sample value.
	MinIntensity = 0
)

// Raster is a rows×cols grid of grayscale samples stored row-major.
type Raster struct {
	Rows int
	Cols int
	Pix  []uint8
}

// New allocates an all-black raster.
func New(rows, cols int) *Raster {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Raster{Rows: rows, Cols: cols, Pix: make([]uint8, rows*cols)}
}

// Filled allocates a raster with every sample set to v.
func Filled(rows, cols int, v uint8) *Raster {
	r := New(rows, cols)
	for i := range r.Pix {
		r.Pix[i] = v
	}
	return r
}

// At returns the sample at row x, column y.
func (r *Raster) At(x, y int) uint8 {
	return r.Pix[x*r.Cols+y]
}

// Set stores v at row x, column y.
func (r *Raster) Set(x, y int, v uint8) {
	r.Pix[x*r.Cols+y] = v
}

// Row returns the samples of row x. The slice aliases the raster.
func (r *Raster) Row(x int) []uint8 {
	return r.Pix[x*r.Cols : (x+1)*r.Cols]
}

// Clone returns a deep copy.
func (r *Raster) Clone() *Raster {
	c := &Raster{Rows: r.Rows, Cols: r.Cols, Pix: make([]uint8, len(r.Pix))}
	copy(c.Pix, r.Pix)
	return c
}

// Equal reports whether both rasters have the same shape and samples.
func (r *Raster) Equal(o *Raster) bool {
	if r.Rows != o.Rows || r.Cols != o.Cols || len(r.Pix) != len(o.Pix) {
		return false
	}
	for i := range r.Pix {
		if r.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Gray exposes the raster as an *image.Gray sharing the same samples.
// Width is Cols and height is Rows.
func (r *Raster) Gray() *image.Gray {
	return &image.Gray{
		Pix:    r.Pix,
		Stride: r.Cols,
		Rect:   image.Rect(0, 0, r.Cols, r.Rows),
	}
}

// CopyFrom overwrites the raster with the luminance of img. img must have
// the same dimensions as the raster; extra pixels are ignored.
func (r *Raster) CopyFrom(img image.Image) {
	b := img.Bounds()
	for x := 0; x < r.Rows && x < b.Dy(); x++ {
		row := r.Row(x)
		for y := 0; y < r.Cols && y < b.Dx(); y++ {
			row[y] = color.GrayModel.Convert(img.At(b.Min.X+y, b.Min.Y+x)).(color.Gray).Y
		}
	}
}

// FromImage converts any image to a raster using the standard luma weights.
func FromImage(img image.Image) *Raster {
	if g, ok := img.(*image.Gray); ok && g.Stride == g.Rect.Dx() && g.Rect.Min == (image.Point{}) {
		c := &Raster{Rows: g.Rect.Dy(), Cols: g.Rect.Dx(), Pix: make([]uint8, len(g.Pix))}
		copy(c.Pix, g.Pix)
		return c
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return &Raster{Rows: b.Dy(), Cols: b.Dx(), Pix: gray.Pix}
}

// Normalize adds delta to pixel, clamping the result to
// [MinIntensity, MaxIntensity].
func Normalize(pixel uint8, delta int) uint8 {
	v := int(pixel) + delta
	if delta > 0 {
		return uint8(min(v, MaxIntensity))
	}
	return uint8(max(v, MinIntensity))
}
