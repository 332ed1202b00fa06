package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestNormalizeSaturates(t *testing.T) {
	deltas := []int{-1000, -255, -128, -1, 0, 1, 128, 255, 1000}
	for p := 0; p <= 255; p++ {
		for _, d := range deltas {
			got := int(Normalize(uint8(p), d))
			want := p + d
			if want > MaxIntensity {
				want = MaxIntensity
			}
			if want < MinIntensity {
				want = MinIntensity
			}
			if got != want {
				t.Fatalf("Normalize(%d, %d) = %d, want %d", p, d, got, want)
			}
		}
	}
}

func TestRasterIndexing(t *testing.T) {
	r := New(3, 4)
	r.Set(2, 1, 7)

	if r.At(2, 1) != 7 {
		t.Errorf("At(2,1) = %d, want 7", r.At(2, 1))
	}
	if r.Pix[2*4+1] != 7 {
		t.Error("samples should be stored row-major")
	}
	if len(r.Row(1)) != 4 {
		t.Errorf("Row length = %d, want 4", len(r.Row(1)))
	}
}

func TestGraySharesSamples(t *testing.T) {
	r := New(2, 5)
	g := r.Gray()

	if g.Bounds().Dx() != 5 || g.Bounds().Dy() != 2 {
		t.Fatalf("Gray bounds = %v, want 5x2", g.Bounds())
	}

	g.SetGray(3, 1, color.Gray{Y: 99})
	if r.At(1, 3) != 99 {
		t.Errorf("write through Gray not visible at row 1 col 3: %d", r.At(1, 3))
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.White)

	r := FromImage(img)
	if r.Rows != 2 || r.Cols != 3 {
		t.Fatalf("dimensions = %dx%d, want 2x3", r.Rows, r.Cols)
	}
	if r.At(1, 2) != 255 {
		t.Errorf("white pixel converted to %d", r.At(1, 2))
	}
	if r.At(0, 0) != 0 {
		t.Errorf("transparent black converted to %d", r.At(0, 0))
	}
}

func TestFromImageCopiesGray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 2))
	r := FromImage(g)
	r.Set(0, 0, 10)
	if g.Pix[0] != 0 {
		t.Error("FromImage should not alias the source image")
	}
}

func TestCloneAndEqual(t *testing.T) {
	r := Filled(4, 4, 12)
	c := r.Clone()
	if !r.Equal(c) {
		t.Fatal("clone should equal source")
	}
	c.Set(0, 0, 13)
	if r.Equal(c) {
		t.Error("modified clone should differ")
	}
	if r.Equal(New(4, 5)) {
		t.Error("different shapes should not be equal")
	}
}
