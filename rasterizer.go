package gradmesh

import (
	"github.com/gogpu/gradmesh/internal/parallel"
)

// SampleOrigin selects where inside a pixel the field is evaluated.
type SampleOrigin int

const (
	// PixelCorner evaluates pixel (x, y) at (x, y), its top-left corner.
	// This is the default.
	PixelCorner SampleOrigin = iota

	// PixelCenter evaluates pixel (x, y) at (x+0.5, y+0.5).
	PixelCenter
)

// String returns the sample origin name.
func (o SampleOrigin) String() string {
	switch o {
	case PixelCorner:
		return "Corner"
	case PixelCenter:
		return "Center"
	default:
		return "Unknown"
	}
}

func (o SampleOrigin) offset() float64 {
	if o == PixelCenter {
		return 0.5
	}
	return 0
}

// RasterizerOption configures a Rasterizer during creation.
type RasterizerOption func(*rasterizerOptions)

type rasterizerOptions struct {
	origin  SampleOrigin
	workers int
}

// WithSampleOrigin sets the per-pixel sampling convention.
func WithSampleOrigin(o SampleOrigin) RasterizerOption {
	return func(opts *rasterizerOptions) {
		opts.origin = o
	}
}

// WithWorkers sets the number of goroutines used for a render pass.
// Values below 2 render on the calling goroutine. The output does not depend
// on the worker count.
func WithWorkers(n int) RasterizerOption {
	return func(opts *rasterizerOptions) {
		opts.workers = n
	}
}

// Rasterizer evaluates a Field at every pixel of a buffer.
//
// Rendering is synchronous: Render returns once every pixel is written.
// A Rasterizer created with more than one worker owns a goroutine pool;
// call Close to release it.
type Rasterizer struct {
	field  Field
	origin SampleOrigin
	pool   *parallel.WorkerPool
}

// NewRasterizer creates a rasterizer for the given field.
//
// Example:
//
//	r := gradmesh.NewRasterizer(gradmesh.NewField(), gradmesh.WithWorkers(4))
//	defer r.Close()
//	pm := r.Render(800, 600, samples)
func NewRasterizer(field Field, opts ...RasterizerOption) *Rasterizer {
	o := rasterizerOptions{origin: PixelCorner, workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Rasterizer{field: field, origin: o.origin}
	if o.workers > 1 {
		r.pool = parallel.NewWorkerPool(o.workers)
	}
	return r
}

// Field returns the field the rasterizer evaluates.
func (r *Rasterizer) Field() Field {
	return r.field
}

// Origin returns the sampling convention.
func (r *Rasterizer) Origin() SampleOrigin {
	return r.origin
}

// Render allocates a width x height pixmap and fills it from samples, which
// must already be expressed in that pixmap's coordinate space.
// A zero or negative dimension yields an empty pixmap.
func (r *Rasterizer) Render(width, height int, samples []Sample) *Pixmap {
	pm := NewPixmap(width, height)
	r.RenderInto(pm, samples)
	return pm
}

// RenderInto overwrites every pixel of dst, in row-major order.
func (r *Rasterizer) RenderInto(dst *Pixmap, samples []Sample) {
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return
	}

	// With no samples every pixel is the fallback; skip per-pixel work.
	if len(samples) == 0 {
		dst.Fill(r.field.Fallback)
		return
	}

	if r.pool == nil || h == 1 {
		r.renderRows(dst, samples, 0, h)
		return
	}

	// More bands than workers lets the pool balance rows of uneven cost.
	r.pool.ForEachBand(h, r.pool.Workers()*4, func(b parallel.Band) {
		r.renderRows(dst, samples, b.Start, b.End)
	})
}

// renderRows writes rows [y0, y1). Each pixel depends only on its own
// coordinates, so disjoint row ranges can be rendered concurrently.
func (r *Rasterizer) renderRows(dst *Pixmap, samples []Sample, y0, y1 int) {
	w := dst.width
	off := r.origin.offset()
	data := dst.data
	for y := y0; y < y1; y++ {
		qy := float64(y) + off
		i := y * w * 4
		for x := 0; x < w; x++ {
			c := r.field.ColorAt(Point{X: float64(x) + off, Y: qy}, samples)
			data[i+0] = c.R
			data[i+1] = c.G
			data[i+2] = c.B
			data[i+3] = 255
			i += 4
		}
	}
}

// Close releases the worker pool, if any. The rasterizer keeps working
// afterwards, on the calling goroutine.
func (r *Rasterizer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
