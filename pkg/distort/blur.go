package distort

import (
	"github.com/anthonynsimon/bild/convolution"

	"github.com/matzehuels/qrnoize/pkg/raster"
)

// Blur smooths a raster with a normalized box kernel sized relative to the
// image: the kernel is Rows·Intensity wide and Cols·Intensity high.
// Averages round to the nearest sample value. Edges are extended, so the
// output keeps the input dimensions.
type Blur struct {
	Intensity float64
}

// NewBlur creates a blur modifier.
func NewBlur(intensity float64) *Blur {
	return &Blur{Intensity: intensity}
}

// KernelSize returns the kernel width and height for a rows×cols raster,
// never smaller than 1×1.
func (b *Blur) KernelSize(rows, cols int) (w, h int) {
	w = max(int(float64(rows)*b.Intensity), 1)
	h = max(int(float64(cols)*b.Intensity), 1)
	return w, h
}

// ModifyImage implements Modifier.
func (b *Blur) ModifyImage(r *raster.Raster) {
	w, h := b.KernelSize(r.Rows, r.Cols)
	if w == 1 && h == 1 {
		return
	}

	k := convolution.NewKernel(w, h)
	weight := 1 / float64(w*h)
	for i := range k.Matrix {
		k.Matrix[i] = weight
	}

	out := convolution.Convolve(r.Gray(), k, &convolution.Options{Bias: 0.5, Wrap: false, KeepAlpha: false})
	for x := 0; x < r.Rows; x++ {
		row := r.Row(x)
		for y := range row {
			row[y] = out.Pix[out.PixOffset(y, x)]
		}
	}
}

// Ensure Blur implements Modifier.
var _ Modifier = (*Blur)(nil)
