package gradmesh

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point represents a 2D position.
// The coordinate space (logical canvas, display, export) is implied by context.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Size is a pair of pixel dimensions.
type Size struct {
	Width, Height int
}

// Sz is a convenience function to create a Size.
func Sz(width, height int) Size {
	return Size{Width: width, Height: height}
}

// Empty reports whether the size covers no pixels.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Area returns the number of pixels covered, or 0 for an empty size.
func (s Size) Area() int {
	if s.Empty() {
		return 0
	}
	return s.Width * s.Height
}

// Contains reports whether p lies within [0,Width]x[0,Height].
// Both edges are inclusive, matching drag clamping.
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.X <= float64(s.Width) &&
		p.Y >= 0 && p.Y <= float64(s.Height)
}

// Center returns the midpoint of the area.
func (s Size) Center() Point {
	return Point{X: float64(s.Width) / 2, Y: float64(s.Height) / 2}
}

// Clamp limits p to [0,Width]x[0,Height]. NaN coordinates clamp to 0.
func (s Size) Clamp(p Point) Point {
	return Point{
		X: clampAxis(p.X, float64(s.Width)),
		Y: clampAxis(p.Y, float64(s.Height)),
	}
}

func clampAxis(v, limit float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > limit:
		return limit
	default:
		return v
	}
}

// String returns the size formatted as "WxH".
func (s Size) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// ParseSize parses a "WxH" string such as "3840x2160".
func ParseSize(str string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(str)), "x")
	if !ok {
		return Size{}, fmt.Errorf("%w: size %q, want WxH", ErrInvalidArgument, str)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Size{}, fmt.Errorf("%w: size %q: %v", ErrInvalidArgument, str, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Size{}, fmt.Errorf("%w: size %q: %v", ErrInvalidArgument, str, err)
	}
	s := Size{Width: width, Height: height}
	if s.Empty() {
		return Size{}, fmt.Errorf("%w: %s", ErrInvalidSize, s)
	}
	return s, nil
}
