package overlay

import (
	"image/color"
	"testing"

	"github.com/google/uuid"

	"github.com/gogpu/gradmesh"
)

func TestDrawMarkers(t *testing.T) {
	pm := gradmesh.NewPixmap(100, 50)
	pm.Fill(gradmesh.White)
	id := uuid.New()
	points := []gradmesh.ControlPoint{
		{ID: id, Position: gradmesh.Pt(100, 50), Color: gradmesh.Red},
	}

	img := Draw(pm, points, gradmesh.Sz(200, 100), Options{})

	// Canvas (100,50) maps to display (50,25).
	if got := img.RGBAAt(50, 25); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("marker center = %v, want red", got)
	}
	if got := img.RGBAAt(50+MarkerRadius-1, 25); got != (color.RGBA{A: 255}) {
		t.Errorf("marker ring = %v, want black over a white background", got)
	}
	if got := img.RGBAAt(5, 5); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("background = %v, want white", got)
	}
	if pm.Pixel(50, 25) != gradmesh.White {
		t.Error("Draw modified the source pixmap")
	}
}

func TestDrawSelectedAndLabels(t *testing.T) {
	pm := gradmesh.NewPixmap(64, 64)
	pm.Fill(gradmesh.White)
	id := uuid.New()
	points := []gradmesh.ControlPoint{
		{ID: id, Position: gradmesh.Pt(20, 20), Color: gradmesh.Blue},
	}

	img := Draw(pm, points, gradmesh.Sz(64, 64), Options{Selected: id, Labels: true})
	if got := img.RGBAAt(20+MarkerRadius-1, 20); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("selected ring = %v, want inverted (white)", got)
	}

	inked := false
	for y := 10; y < 30 && !inked; y++ {
		for x := 20 + MarkerRadius + 2; x < 40; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("label was not drawn")
	}
}

func TestDrawClipsAtEdges(t *testing.T) {
	pm := gradmesh.NewPixmap(10, 10)
	points := []gradmesh.ControlPoint{
		{ID: uuid.New(), Position: gradmesh.Pt(10, 10), Color: gradmesh.Green},
		{ID: uuid.New(), Position: gradmesh.Pt(0, 0), Color: gradmesh.Green},
	}
	img := Draw(pm, points, gradmesh.Sz(10, 10), Options{Labels: true})
	if img.Bounds().Dx() != 10 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got.G != 255 || got.R != 0 {
		t.Errorf("corner marker = %v, want green", got)
	}
}
