package gesture

import (
	"math"

	"github.com/gogpu/gradmesh"
)

// Hue strip geometry in display pixels.
const (
	PickerWidth  = 260
	PickerHeight = 20
	pickerGap    = 8
)

// Picker is an open hue strip attached to one control point.
// Bounds are in display coordinates.
type Picker struct {
	Point  gradmesh.PointID
	X, Y   float64
	Width  float64
	Height float64
}

// newPicker places the strip below the marker at anchor, shifted to stay
// inside the display where possible.
func newPicker(id gradmesh.PointID, anchor gradmesh.Point, display gradmesh.Size) Picker {
	p := Picker{
		Point:  id,
		X:      anchor.X - PickerWidth/2,
		Y:      anchor.Y + HitRadius + pickerGap,
		Width:  PickerWidth,
		Height: PickerHeight,
	}
	if dw := float64(display.Width); p.X+p.Width > dw {
		p.X = dw - p.Width
	}
	if dh := float64(display.Height); p.Y+p.Height > dh {
		// Flip above the marker when there is no room below.
		p.Y = anchor.Y - HitRadius - pickerGap - p.Height
	}
	p.X = math.Max(p.X, 0)
	p.Y = math.Max(p.Y, 0)
	return p
}

// Contains reports whether the display position lies inside the strip.
func (p Picker) Contains(pos gradmesh.Point) bool {
	return pos.X >= p.X && pos.X <= p.X+p.Width &&
		pos.Y >= p.Y && pos.Y <= p.Y+p.Height
}

// HueAt maps a horizontal display position to a hue in [0,360].
func (p Picker) HueAt(x float64) float64 {
	if p.Width <= 0 {
		return 0
	}
	t := (x - p.X) / p.Width
	return math.Max(0, math.Min(1, t)) * 360
}

// ColorAt returns the fully saturated color under x.
func (p Picker) ColorAt(x float64) gradmesh.Color {
	return gradmesh.Hue(p.HueAt(x))
}
