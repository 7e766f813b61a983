// Package gradmesh renders gradient meshes: smooth color fields interpolated
// from a sparse set of colored control points.
//
// # Overview
//
// Control points live in a logical canvas space. The color of any location
// is the inverse-distance-weighted mean of the point colors, so each point
// pulls nearby pixels toward its own color and a single point paints the
// whole canvas. The field is previewed at display resolution and exported at
// any target resolution without changing the stored points.
//
// # Quick Start
//
//	import "github.com/gogpu/gradmesh"
//
//	s, _ := gradmesh.NewSession(
//	    gradmesh.WithCanvas(gradmesh.Sz(3840, 2160)),
//	    gradmesh.WithDisplay(gradmesh.Sz(960, 540)),
//	)
//	defer s.Close()
//
//	s.AddPoint(gradmesh.Pt(800, 600), gradmesh.Red)
//	s.AddPoint(gradmesh.Pt(3000, 1500), gradmesh.Blue)
//
//	preview := s.PreviewBuffer() // 960x540 RGBA
//	art, _ := s.RequestExport(gradmesh.Sz(3840, 2160), nil)
//	_ = os.WriteFile(art.Name, art.Data, 0o644)
//
// # Architecture
//
// The package is organized leaf-first:
//   - Store: authoritative control points in logical canvas coordinates
//   - ToDisplay, ToCanvas, RescaleAll, SamplesIn: coordinate mapping
//   - Field: inverse-distance-weighted color at a query point
//   - Rasterizer: evaluates a Field over every pixel of a Pixmap
//   - Exporter: independent render pass at export resolution, encoded and
//     handed to a Sink
//   - Session: the surface a user interface drives
//
// Pointer gesture handling lives in the gesture sub-package.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Mapping
// between spaces is a per-axis scale anchored at the origin.
//
// # Determinism
//
// Points are summed in insertion order, so a render is bit-reproducible.
// Parallel rendering splits rows between workers and produces the same bytes
// as a single worker.
package gradmesh

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
