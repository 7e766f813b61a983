// Package overlay draws control point markers over a rendered preview.
package overlay

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/gradmesh"
)

// Marker geometry in display pixels.
const (
	MarkerRadius = 6
	RingWidth    = 2
)

// Options controls marker drawing.
type Options struct {
	// Labels draws the 1-based point index beside each marker.
	Labels bool
	// Selected is drawn with an inverted ring.
	Selected gradmesh.PointID
}

// Draw returns a copy of pm with a marker for each point. Positions are
// given in logical canvas coordinates and mapped into pm's pixel space.
func Draw(pm *gradmesh.Pixmap, points []gradmesh.ControlPoint, canvas gradmesh.Size, opts Options) *image.RGBA {
	img := pm.ToImage()
	display := pm.Size()
	for i, cp := range points {
		at := gradmesh.ToDisplay(cp.Position, canvas, display)
		label := rgba(pm.Pixel(int(at.X), int(at.Y)).Contrast())
		ring := label
		if cp.ID == opts.Selected {
			ring = invert(ring)
		}
		drawDisc(img, at, MarkerRadius, ring)
		drawDisc(img, at, MarkerRadius-RingWidth, rgba(cp.Color))
		if opts.Labels {
			drawLabel(img, at, strconv.Itoa(i+1), label)
		}
	}
	return img
}

func drawDisc(img *image.RGBA, c gradmesh.Point, r float64, col color.RGBA) {
	b := img.Bounds()
	x0, x1 := max(int(c.X-r), b.Min.X), min(int(c.X+r)+1, b.Max.X)
	y0, y1 := max(int(c.Y-r), b.Min.Y), min(int(c.Y+r)+1, b.Max.Y)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dx, dy := float64(x)+0.5-c.X, float64(y)+0.5-c.Y
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

func drawLabel(img *image.RGBA, at gradmesh.Point, text string, col color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(at.X) + MarkerRadius + 2),
			Y: fixed.I(int(at.Y) + face.Ascent/2),
		},
	}
	d.DrawString(text)
}

func rgba(c gradmesh.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func invert(c color.RGBA) color.RGBA {
	return color.RGBA{R: 0xff - c.R, G: 0xff - c.G, B: 0xff - c.B, A: c.A}
}
