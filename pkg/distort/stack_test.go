package distort

import (
	"testing"

	"github.com/matzehuels/qrnoize/pkg/raster"
)

// recorder appends its id to a shared log and writes it into pixel 0.
type recorder struct {
	id  int
	log *[]int
}

func (r recorder) ModifyImage(img *raster.Raster) {
	*r.log = append(*r.log, r.id)
	img.Pix[0] = uint8(r.id)
}

func TestStackAppliesInOrder(t *testing.T) {
	var log []int
	s := NewStack()
	for i := 1; i <= 3; i++ {
		s.AddLayer(recorder{id: i, log: &log})
	}

	img := raster.New(1, 1)
	s.ProcessImage(img)

	if len(log) != 3 || log[0] != 1 || log[1] != 2 || log[2] != 3 {
		t.Errorf("layers ran in order %v, want [1 2 3]", log)
	}
	if img.Pix[0] != 3 {
		t.Errorf("last layer should win, pixel = %d", img.Pix[0])
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestStackCompositionOrderMatters(t *testing.T) {
	lines := func() Modifier {
		return NewPrinter(Lines{Start: 0, End: 3, Horizontal: true}, Params{Density: 100, Intensity: 1}, nil)
	}

	ab := NewStack()
	ab.AddLayer(lines())
	ab.AddLayer(NewBlur(0.125))

	ba := NewStack()
	ba.AddLayer(NewBlur(0.125))
	ba.AddLayer(lines())

	x := raster.New(32, 16)
	y := raster.New(32, 16)
	ab.ProcessImage(x)
	ba.ProcessImage(y)

	if x.Equal(y) {
		t.Error("[Lines, Blur] and [Blur, Lines] should differ")
	}
}

func TestStackClear(t *testing.T) {
	s := NewStack()

	// Clearing an empty stack is a no-op.
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len = %d after clearing empty stack", s.Len())
	}

	s.AddLayer(NewPrinter(Lines{Start: 0, End: 9, Horizontal: true}, Params{Density: 100, Intensity: 1}, nil))
	s.Clear()
	s.Clear()

	img := raster.Filled(5, 5, 17)
	before := img.Clone()
	s.ProcessImage(img)
	if !img.Equal(before) {
		t.Error("ProcessImage after Clear should leave the raster unmodified")
	}

	// Stack is reusable after Clear.
	s.AddLayer(NewPrinter(Lines{Start: 0, End: 9, Horizontal: true}, Params{Density: 100, Intensity: 1}, nil))
	s.ProcessImage(img)
	if img.At(0, 0) != 255 {
		t.Error("stack should be usable after Clear")
	}
}

func TestStackLayersIsCopy(t *testing.T) {
	s := NewStack()
	s.AddLayer(NewBlur(0.1))
	layers := s.Layers()
	layers[0] = nil
	if s.Layers()[0] == nil {
		t.Error("Layers should return a copy")
	}
}

func TestBlurKernelSize(t *testing.T) {
	b := NewBlur(0.125)
	w, h := b.KernelSize(32, 16)
	if w != 4 || h != 2 {
		t.Errorf("KernelSize(32,16) = %dx%d, want 4x2", w, h)
	}

	w, h = NewBlur(0.001).KernelSize(10, 10)
	if w != 1 || h != 1 {
		t.Errorf("tiny kernels should clamp to 1x1, got %dx%d", w, h)
	}
}

func TestBlurKeepsDimensionsAndConstants(t *testing.T) {
	img := raster.Filled(32, 16, 100)
	NewBlur(0.125).ModifyImage(img)

	if img.Rows != 32 || img.Cols != 16 || len(img.Pix) != 32*16 {
		t.Fatalf("dimensions changed to %dx%d", img.Rows, img.Cols)
	}
	for i, v := range img.Pix {
		if v != 100 {
			t.Fatalf("pixel %d = %d, constant image should stay constant", i, v)
		}
	}
}

func TestBlurSpreadsEdges(t *testing.T) {
	img := raster.New(32, 16)
	for y := 0; y < 16; y++ {
		img.Set(16, y, 255)
	}
	NewBlur(0.125).ModifyImage(img)

	if img.At(16, 8) == 255 {
		t.Error("a one-row line should be softened by a two-row kernel")
	}
	if img.At(0, 8) != 0 {
		t.Error("distant rows should stay black")
	}
}

func TestBlurRoundsAverages(t *testing.T) {
	// 16 rows at 0.125 give a two-column, one-row kernel.
	img := raster.New(16, 8)
	for x := range img.Rows {
		for y := 4; y < img.Cols; y++ {
			img.Set(x, y, 255)
		}
	}
	NewBlur(0.125).ModifyImage(img)

	mid := 0
	for i, v := range img.Pix {
		switch v {
		case 0, 255:
		case 128:
			mid++
		default:
			t.Fatalf("pixel %d = %d, want 0, 128 or 255", i, v)
		}
	}
	if mid != img.Rows {
		t.Errorf("got %d rounded midpoints, want one per row (%d)", mid, img.Rows)
	}
}

func TestBlurNoopForUnitKernel(t *testing.T) {
	img := raster.New(4, 4)
	img.Set(1, 1, 200)
	before := img.Clone()
	NewBlur(0.1).ModifyImage(img)
	if !img.Equal(before) {
		t.Error("1x1 kernel should leave the raster unchanged")
	}
}
