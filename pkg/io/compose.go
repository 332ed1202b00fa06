package io

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/matzehuels/qrnoize/pkg/errors"
)

// ComposeOptions places a code image on a blank canvas.
type ComposeOptions struct {
	Width   int     // canvas width
	Height  int     // canvas height
	XOffset int     // horizontal shift from the centred position
	Y       int     // top edge of the pasted image
	Scale   float64 // resize factor applied before pasting
}

// Default canvas geometry.
const (
	DefaultCanvasWidth  = 484
	DefaultCanvasHeight = 884
	DefaultXOffset      = 20
	DefaultY            = 40
)

// ValidateAndSetDefaults fills zero fields and rejects impossible geometry.
func (o *ComposeOptions) ValidateAndSetDefaults() error {
	if o.Width == 0 {
		o.Width = DefaultCanvasWidth
	}
	if o.Height == 0 {
		o.Height = DefaultCanvasHeight
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "canvas size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "scale must be positive, got %g", o.Scale)
	}
	return nil
}

// BBox is a rectangle in canvas coordinates normalized to [0,1] when the
// paste lies inside the canvas.
type BBox struct {
	Left, Top, Right, Bottom float64
}

func (b BBox) String() string {
	return fmt.Sprintf("%g %g %g %g", b.Left, b.Top, b.Right, b.Bottom)
}

// Placement returns where an image of size w×h lands on the canvas.
func (o ComposeOptions) Placement(w, h int) image.Point {
	return image.Pt(floorDiv(o.Width-w, 2)+o.XOffset, o.Y)
}

// Box returns the normalized bounding box of an image of size w×h pasted
// at the canvas position given by [ComposeOptions.Placement].
func (o ComposeOptions) Box(w, h int) BBox {
	pos := o.Placement(w, h)
	return BBox{
		Left:   float64(pos.X) / float64(o.Width),
		Top:    float64(pos.Y) / float64(o.Height),
		Right:  float64(pos.X+w) / float64(o.Width),
		Bottom: float64(pos.Y+h) / float64(o.Height),
	}
}

// Compose resizes code by opts.Scale and pastes it onto a white canvas.
// opts must already be validated.
func Compose(code image.Image, opts ComposeOptions) (*image.NRGBA, BBox) {
	if opts.Scale != 1 {
		b := code.Bounds()
		w := uint(max(int(float64(b.Dx())*opts.Scale), 1))
		code = resize.Resize(w, 0, code, resize.Lanczos3)
	}
	b := code.Bounds()
	canvas := imaging.New(opts.Width, opts.Height, color.White)
	canvas = imaging.Paste(canvas, code, opts.Placement(b.Dx(), b.Dy()))
	return canvas, opts.Box(b.Dx(), b.Dy())
}

// ComposeFile reads the code image at src, composes it and saves the
// canvas to dst.
func ComposeFile(src, dst string, opts ComposeOptions) (BBox, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return BBox{}, err
	}
	code, err := imaging.Open(src)
	if err != nil {
		return BBox{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", src)
	}
	canvas, box := Compose(code, opts)
	if err := imaging.Save(canvas, dst, imaging.JPEGQuality(DefaultQuality)); err != nil {
		return BBox{}, errors.Wrap(errors.ErrCodeIO, err, "write %s", dst)
	}
	return box, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
