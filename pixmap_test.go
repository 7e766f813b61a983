package gradmesh

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestNewPixmap(t *testing.T) {
	pm := NewPixmap(4, 3)
	if pm.Width() != 4 || pm.Height() != 3 || len(pm.Data()) != 48 {
		t.Errorf("NewPixmap(4,3) = %dx%d with %d bytes", pm.Width(), pm.Height(), len(pm.Data()))
	}

	empty := NewPixmap(-2, 5)
	if empty.Width() != 0 || len(empty.Data()) != 0 {
		t.Errorf("negative width should yield an empty pixmap, got %v", empty.Size())
	}
}

func TestPixmapSetPixel(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.SetPixel(3, 7, RGB(10, 20, 30))

	i := (7*10 + 3) * 4
	data := pm.Data()
	if data[i] != 10 || data[i+1] != 20 || data[i+2] != 30 || data[i+3] != 255 {
		t.Errorf("raw data = %v, want [10 20 30 255]", data[i:i+4])
	}
	if got := pm.Pixel(3, 7); got != RGB(10, 20, 30) {
		t.Errorf("Pixel(3,7) = %v", got)
	}
	if got := pm.At(3, 7); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("At(3,7) = %v", got)
	}
}

func TestPixmapSetPixel_OutOfBounds(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.Fill(Black)
	original := bytes.Clone(pm.Data())

	oob := []struct{ x, y int }{
		{-1, 5}, {10, 5}, {5, -1}, {5, 10},
		{-100, -100}, {100, 100},
	}
	for _, c := range oob {
		pm.SetPixel(c.x, c.y, Red)
		if got := pm.Pixel(c.x, c.y); got != Black {
			t.Errorf("Pixel(%d,%d) out of bounds = %v, want black", c.x, c.y, got)
		}
	}
	if !bytes.Equal(pm.Data(), original) {
		t.Fatal("out-of-bounds write modified data")
	}
}

func TestPixmapFill(t *testing.T) {
	for _, size := range []Size{{1, 1}, {3, 5}, {17, 9}, {64, 64}} {
		pm := NewPixmap(size.Width, size.Height)
		pm.Fill(PreviewFallback)
		for y := range size.Height {
			for x := range size.Width {
				if got := pm.Pixel(x, y); got != PreviewFallback {
					t.Fatalf("%v: Pixel(%d,%d) = %v after Fill", size, x, y, got)
				}
			}
		}
		if pm.Data()[len(pm.Data())-1] != 255 {
			t.Errorf("%v: last alpha not opaque", size)
		}
	}

	// Filling an empty pixmap is a no-op.
	NewPixmap(0, 0).Fill(Red)
}

func TestPixmapClone(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.Fill(Red)
	c := pm.Clone()
	c.SetPixel(0, 0, Blue)

	if pm.Pixel(0, 0) != Red {
		t.Error("Clone shares pixel data with the original")
	}
}

func TestPixmapPNG(t *testing.T) {
	pm := NewPixmap(3, 2)
	pm.Fill(RGB(9, 8, 7))
	pm.SetPixel(2, 1, Green)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := pm.SavePNG(path); err != nil {
		t.Fatalf("SavePNG error: %v", err)
	}

	var buf bytes.Buffer
	if err := pm.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode error: %v", err)
	}
	if img.Bounds() != pm.Bounds() {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), pm.Bounds())
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if r != 0 || g != 0xffff || b != 0 {
		t.Errorf("decoded (2,1) = (%d,%d,%d), want green", r, g, b)
	}
}
