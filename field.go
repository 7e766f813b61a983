package gradmesh

import "math"

// Field constants.
const (
	// DefaultPower is the distance exponent used when none is configured.
	DefaultPower = 2.0

	// CoincidenceRadius is the distance below which a query is treated as
	// sitting exactly on a point.
	CoincidenceRadius = 1e-3

	// CoincidentWeight replaces 1/d^p for coincident points so the point's
	// own color dominates without dividing by zero.
	CoincidentWeight = 1e6
)

// Sample is a colored point expressed in the coordinate space of the buffer
// being rendered.
type Sample struct {
	Position Point
	Color    Color
}

// Field evaluates an inverse-distance-weighted color field.
//
// The color at q is the weighted mean of the sample colors with weights
// 1/distance^Power, rounded per channel to the nearest integer. Samples are
// summed in slice order, which makes the result bit-reproducible.
//
// Field is a value type and is safe for concurrent use.
type Field struct {
	// Power is the distance exponent. Non-positive or non-finite values
	// fall back to DefaultPower.
	Power float64

	// Fallback is returned when there are no samples.
	Fallback Color
}

// FieldOption configures a Field during creation.
type FieldOption func(*Field)

// WithPower sets the distance exponent.
func WithPower(p float64) FieldOption {
	return func(f *Field) {
		f.Power = p
	}
}

// WithFallback sets the color returned for an empty sample set.
func WithFallback(c Color) FieldOption {
	return func(f *Field) {
		f.Fallback = c
	}
}

// NewField creates a field with power 2 and the export fallback (white).
//
// Example:
//
//	preview := gradmesh.NewField(gradmesh.WithFallback(gradmesh.PreviewFallback))
//	c := preview.ColorAt(gradmesh.Pt(10, 10), samples)
func NewField(opts ...FieldOption) Field {
	f := Field{Power: DefaultPower, Fallback: ExportFallback}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// power returns the effective exponent.
func (f Field) power() float64 {
	if f.Power <= 0 || math.IsNaN(f.Power) || math.IsInf(f.Power, 0) {
		return DefaultPower
	}
	return f.Power
}

// weight returns the contribution of a sample at distance d.
func weight(d, power float64) float64 {
	if d < CoincidenceRadius {
		return CoincidentWeight
	}
	return 1 / math.Pow(d, power)
}

// ColorAt returns the field color at q. Complexity is O(len(samples)).
func (f Field) ColorAt(q Point, samples []Sample) Color {
	if len(samples) == 0 {
		return f.Fallback
	}

	power := f.power()
	var total, r, g, b float64
	for _, s := range samples {
		dx := q.X - s.Position.X
		dy := q.Y - s.Position.Y
		w := weight(math.Sqrt(dx*dx+dy*dy), power)

		total += w
		r += float64(s.Color.R) * w
		g += float64(s.Color.G) * w
		b += float64(s.Color.B) * w
	}

	// Extreme exponents can underflow or overflow every weight. The limit of
	// the weighted mean as the exponent grows is the nearest sample's color.
	if total == 0 || math.IsInf(total, 0) || math.IsInf(r+g+b, 0) {
		return nearest(q, samples).Color
	}

	return Color{
		R: roundChannel(r / total),
		G: roundChannel(g / total),
		B: roundChannel(b / total),
	}
}

// roundChannel rounds half away from zero and clamps to [0, 255].
func roundChannel(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// nearest returns the first sample with minimal distance to q.
func nearest(q Point, samples []Sample) Sample {
	best := samples[0]
	bestDist := q.Distance(best.Position)
	for _, s := range samples[1:] {
		if d := q.Distance(s.Position); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}
