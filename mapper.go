package gradmesh

// Coordinate mapping between the three resolution spaces.
//
// Positions are stored in logical canvas space. The live preview renders in
// display space and exports render in export space. Every mapping is an
// origin-anchored, per-axis scale; there is no rotation or offset.

// Rescale maps p from a space of size from to a space of size to.
// An axis with a zero extent in from maps to 0. The edge of from maps
// exactly onto the edge of to.
func Rescale(p Point, from, to Size) Point {
	return Point{
		X: scaleAxis(p.X, from.Width, to.Width),
		Y: scaleAxis(p.Y, from.Height, to.Height),
	}
}

func scaleAxis(v float64, from, to int) float64 {
	if from == 0 {
		return 0
	}
	return v * float64(to) / float64(from)
}

// ToDisplay maps a logical canvas position into display space,
// for example to draw a point marker over the live preview.
func ToDisplay(p Point, canvas, display Size) Point {
	return Rescale(p, canvas, display)
}

// ToCanvas maps a display (pointer) position back into logical canvas space.
func ToCanvas(p Point, canvas, display Size) Point {
	return Rescale(p, display, canvas)
}

// RescaleAll returns a copy of points with every position remapped from
// oldDims to newDims. Ids and colors are preserved, as is the order.
//
// It is used only when the logical canvas itself changes size; display
// resizes and exports project points with SamplesIn instead.
func RescaleAll(points []ControlPoint, oldDims, newDims Size) []ControlPoint {
	out := make([]ControlPoint, len(points))
	for i, cp := range points {
		cp.Position = Rescale(cp.Position, oldDims, newDims)
		out[i] = cp
	}
	return out
}

// SamplesIn projects logical points into a target buffer space, keeping
// insertion order so summation stays reproducible.
func SamplesIn(points []ControlPoint, canvas, target Size) []Sample {
	samples := make([]Sample, len(points))
	for i, cp := range points {
		samples[i] = Sample{
			Position: Rescale(cp.Position, canvas, target),
			Color:    cp.Color,
		}
	}
	return samples
}
