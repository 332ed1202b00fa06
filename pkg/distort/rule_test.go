package distort

import "testing"

// fixedSource always returns the same draw, clamped to [0, n).
type fixedSource int

func (f fixedSource) IntN(n int) int {
	return min(max(int(f), 0), n-1)
}

func TestLinesFires(t *testing.T) {
	tests := []struct {
		name    string
		rule    Lines
		x, y    int
		density int
		want    bool
	}{
		{"horizontal inside", Lines{Start: 2, End: 4, Horizontal: true}, 3, 99, 100, true},
		{"horizontal start inclusive", Lines{Start: 2, End: 4, Horizontal: true}, 2, 0, 100, true},
		{"horizontal end inclusive", Lines{Start: 2, End: 4, Horizontal: true}, 4, 0, 100, true},
		{"horizontal outside", Lines{Start: 2, End: 4, Horizontal: true}, 5, 3, 100, false},
		{"vertical uses column", Lines{Start: 2, End: 4}, 99, 3, 100, true},
		{"vertical ignores row", Lines{Start: 2, End: 4}, 3, 99, 100, false},
		{"density zero never fires", Lines{Start: 0, End: 9, Horizontal: true}, 1, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, draw := range []fixedSource{0, 50, 99} {
				if got := tt.rule.Fires(tt.x, tt.y, tt.density, draw); got != tt.want {
					t.Errorf("Fires(%d, %d) with draw %d = %v, want %v", tt.x, tt.y, draw, got, tt.want)
				}
			}
		})
	}
}

func TestLinesDensityIsStrict(t *testing.T) {
	l := Lines{Start: 0, End: 0, Horizontal: true}
	if l.Fires(0, 0, 50, fixedSource(50)) {
		t.Error("draw equal to density should not fire")
	}
	if !l.Fires(0, 0, 50, fixedSource(49)) {
		t.Error("draw below density should fire")
	}
}

func TestBlobBoundary(t *testing.T) {
	b := Blob{CenterX: 5, CenterY: 5, RadiusA: 3, RadiusB: 3}
	src := fixedSource(0)

	// length == a²b² exactly on the circle
	for _, p := range [][2]int{{5, 8}, {8, 5}, {2, 5}, {5, 2}} {
		if b.Fires(p[0], p[1], 100, src) {
			t.Errorf("boundary point %v should not fire", p)
		}
	}
	for _, p := range [][2]int{{5, 5}, {5, 7}, {7, 6}, {3, 4}} {
		if !b.Fires(p[0], p[1], 100, src) {
			t.Errorf("interior point %v should fire", p)
		}
	}
	if b.Fires(9, 9, 100, src) {
		t.Error("exterior point should not fire")
	}
}

func TestBlobEllipseAxes(t *testing.T) {
	// RadiusA spans rows, RadiusB spans columns.
	b := Blob{CenterX: 0, CenterY: 0, RadiusA: 2, RadiusB: 5}
	if !b.Fires(0, 4, 100, fixedSource(0)) {
		t.Error("(0,4) lies inside the wide axis")
	}
	if b.Fires(3, 0, 100, fixedSource(0)) {
		t.Error("(3,0) lies outside the narrow axis")
	}
}

func TestBlobDensityIsInclusive(t *testing.T) {
	b := Blob{CenterX: 0, CenterY: 0, RadiusA: 1, RadiusB: 1}

	if !b.Fires(0, 0, 50, fixedSource(50)) {
		t.Error("draw equal to density should fire for blobs")
	}
	if b.Fires(0, 0, 50, fixedSource(51)) {
		t.Error("draw above density should not fire")
	}
	// The draw range includes 100, so density 100 always fires.
	if !b.Fires(0, 0, 100, fixedSource(100)) {
		t.Error("density 100 should always fire")
	}
	if b.Fires(0, 0, 0, fixedSource(1)) {
		t.Error("density 0 should only fire on a zero draw")
	}
}

func TestSinFires(t *testing.T) {
	s := Sin{Start: 0, Shift: 0, Amplitude: 10, Period: 1}
	src := fixedSource(0)

	// |sin(2)|·10 ≈ 9.09
	for y := 1; y <= 9; y++ {
		if !s.Fires(2, y, 100, src) {
			t.Errorf("(2,%d) should be under the wave", y)
		}
	}
	if s.Fires(2, 0, 100, src) {
		t.Error("y == start should not fire")
	}
	if s.Fires(2, 10, 100, src) {
		t.Error("(2,10) is above the wave")
	}
	// sin(0) == 0 never fires
	if s.Fires(0, 1, 100, src) {
		t.Error("zero crossing should not fire")
	}
}

func TestSinHorizontalSwaps(t *testing.T) {
	v := Sin{Start: 0, Shift: 0, Amplitude: 10, Period: 1}
	h := v
	h.Horizontal = true

	for x := 0; x < 12; x++ {
		for y := 0; y < 12; y++ {
			if v.Fires(x, y, 100, fixedSource(0)) != h.Fires(y, x, 100, fixedSource(0)) {
				t.Fatalf("horizontal rule should mirror vertical at (%d,%d)", x, y)
			}
		}
	}
}

func TestSinDensity(t *testing.T) {
	s := Sin{Start: 0, Shift: 0, Amplitude: 10, Period: 1}
	if s.Fires(2, 1, 0, fixedSource(0)) {
		t.Error("density 0 should never fire")
	}
	if s.Fires(2, 1, 30, fixedSource(30)) {
		t.Error("draw equal to density should not fire")
	}
}

func TestKinds(t *testing.T) {
	rules := map[Kind]Rule{
		KindLines: Lines{},
		KindBlob:  Blob{},
		KindSin:   Sin{Period: 1},
	}
	for want, r := range rules {
		if r.Kind() != want {
			t.Errorf("Kind() = %q, want %q", r.Kind(), want)
		}
	}
}
