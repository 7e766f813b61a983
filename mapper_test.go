package gradmesh

import (
	"math"
	"testing"
)

func pointsClose(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestToDisplayToCanvas(t *testing.T) {
	canvas := Sz(3840, 2160)
	display := Sz(1280, 720)

	tests := []struct {
		logical, screen Point
	}{
		{Pt(0, 0), Pt(0, 0)},
		{Pt(1920, 1080), Pt(640, 360)},
		{Pt(3840, 2160), Pt(1280, 720)},
		{Pt(300, 90), Pt(100, 30)},
	}

	for _, tt := range tests {
		if got := ToDisplay(tt.logical, canvas, display); !pointsClose(got, tt.screen) {
			t.Errorf("ToDisplay(%v) = %v, want %v", tt.logical, got, tt.screen)
		}
		if got := ToCanvas(tt.screen, canvas, display); !pointsClose(got, tt.logical) {
			t.Errorf("ToCanvas(%v) = %v, want %v", tt.screen, got, tt.logical)
		}
	}
}

func TestToDisplayNonUniform(t *testing.T) {
	// Axes scale independently when aspect ratios differ.
	got := ToDisplay(Pt(100, 100), Sz(200, 200), Sz(400, 100))
	if !pointsClose(got, Pt(200, 50)) {
		t.Errorf("ToDisplay = %v, want (200,50)", got)
	}
}

func TestRescaleEdgeIsExact(t *testing.T) {
	for from := 1; from <= 64; from++ {
		for _, to := range []int{1, 25, 27, 29, 50, 58, 3840} {
			got := Rescale(Pt(float64(from), float64(from)), Sz(from, from), Sz(to, to))
			if got != Pt(float64(to), float64(to)) {
				t.Fatalf("Rescale(edge, %d -> %d) = %v", from, to, got)
			}
		}
	}
}

func TestRescaleZeroSource(t *testing.T) {
	got := ToCanvas(Pt(10, 10), Sz(100, 100), Sz(0, 50))
	if got.X != 0 || !pointsClose(got, Pt(0, 20)) {
		t.Errorf("ToCanvas with zero-width display = %v, want (0,20)", got)
	}
}

func TestRescaleAllDoublesPositions(t *testing.T) {
	points := []ControlPoint{
		{Position: Pt(0, 0), Color: Red},
		{Position: Pt(12.5, 7), Color: Green},
		{Position: Pt(100, 50), Color: Blue},
	}
	got := RescaleAll(points, Sz(100, 50), Sz(200, 100))

	for i, cp := range got {
		want := points[i].Position.Mul(2)
		if !pointsClose(cp.Position, want) || cp.Color != points[i].Color {
			t.Errorf("point %d = %+v, want position %v", i, cp, want)
		}
	}
	if points[1].Position != Pt(12.5, 7) {
		t.Error("RescaleAll modified its input")
	}
}

func TestSamplesIn(t *testing.T) {
	points := []ControlPoint{
		{Position: Pt(50, 50), Color: Red},
		{Position: Pt(100, 0), Color: Blue},
	}
	got := SamplesIn(points, Sz(100, 100), Sz(10, 20))

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !pointsClose(got[0].Position, Pt(5, 10)) || got[0].Color != Red {
		t.Errorf("sample 0 = %+v", got[0])
	}
	if !pointsClose(got[1].Position, Pt(10, 0)) || got[1].Color != Blue {
		t.Errorf("sample 1 = %+v", got[1])
	}
}
