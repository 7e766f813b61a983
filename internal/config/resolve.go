package config

import (
	"fmt"

	"github.com/gogpu/gradmesh"
)

// exportCacheSize is the number of distinct exports an editing session keeps.
const exportCacheSize = 4

// Resolved is a validated scene with every string field parsed.
type Resolved struct {
	Canvas          gradmesh.Size
	Display         gradmesh.Size
	ExportSize      gradmesh.Size
	Format          gradmesh.ImageFormat
	Dir             string
	Workers         int
	Power           float64
	PreviewFallback gradmesh.Color
	ExportFallback  gradmesh.Color
	Origin          gradmesh.SampleOrigin
	Points          []gradmesh.Sample
}

// Resolve parses and validates the scene. Point positions are checked
// against the canvas; the export size defaults to the canvas size.
func (s Scene) Resolve() (Resolved, error) {
	var (
		r   Resolved
		err error
	)
	if r.Canvas, err = gradmesh.ParseSize(s.Canvas); err != nil {
		return Resolved{}, fmt.Errorf("canvas: %w", err)
	}
	if s.Display != "" {
		if r.Display, err = gradmesh.ParseSize(s.Display); err != nil {
			return Resolved{}, fmt.Errorf("display: %w", err)
		}
	}
	r.ExportSize = r.Canvas
	if s.Export.Size != "" {
		if r.ExportSize, err = gradmesh.ParseSize(s.Export.Size); err != nil {
			return Resolved{}, fmt.Errorf("export.size: %w", err)
		}
	}
	if r.Format, err = gradmesh.ParseImageFormat(s.Export.Format); err != nil {
		return Resolved{}, fmt.Errorf("export.format: %w", err)
	}
	r.Dir = s.Export.Dir
	if r.Dir == "" {
		r.Dir = "."
	}
	r.Workers = max(s.Export.Workers, 1)

	r.Power = s.Field.Power
	if r.PreviewFallback, err = gradmesh.ParseHex(s.Field.PreviewFallback); err != nil {
		return Resolved{}, fmt.Errorf("field.preview_fallback: %w", err)
	}
	if r.ExportFallback, err = gradmesh.ParseHex(s.Field.ExportFallback); err != nil {
		return Resolved{}, fmt.Errorf("field.export_fallback: %w", err)
	}
	if s.Field.PixelCenter {
		r.Origin = gradmesh.PixelCenter
	}

	r.Points = make([]gradmesh.Sample, 0, len(s.Points))
	for i, p := range s.Points {
		c, err := gradmesh.ParseHex(p.Color)
		if err != nil {
			return Resolved{}, fmt.Errorf("points[%d]: %w", i, err)
		}
		pos := gradmesh.Pt(p.X, p.Y)
		if !pos.IsFinite() || !r.Canvas.Contains(pos) {
			return Resolved{}, fmt.Errorf("points[%d]: %w: (%g, %g) on %s canvas",
				i, gradmesh.ErrInvalidPosition, p.X, p.Y, r.Canvas)
		}
		r.Points = append(r.Points, gradmesh.Sample{Position: pos, Color: c})
	}
	return r, nil
}

// Exporter builds the export pipeline described by the scene.
func (r Resolved) Exporter(sink gradmesh.Sink) *gradmesh.Exporter {
	if sink == nil {
		sink = gradmesh.DirSink{Dir: r.Dir}
	}
	return gradmesh.NewExporter(
		gradmesh.WithExportField(gradmesh.NewField(
			gradmesh.WithPower(r.Power),
			gradmesh.WithFallback(r.ExportFallback),
		)),
		gradmesh.WithFormat(r.Format),
		gradmesh.WithSink(sink),
		gradmesh.WithExportSampleOrigin(r.Origin),
		gradmesh.WithExportWorkers(r.Workers),
		gradmesh.WithExportCache(exportCacheSize),
	)
}

// NewSession creates a session from the scene and places its points in
// file order. Extra options are applied after the scene's own.
func (r Resolved) NewSession(sink gradmesh.Sink, opts ...gradmesh.SessionOption) (*gradmesh.Session, error) {
	base := []gradmesh.SessionOption{
		gradmesh.WithCanvas(r.Canvas),
		gradmesh.WithDisplay(r.Display),
		gradmesh.WithPreviewField(gradmesh.NewField(
			gradmesh.WithPower(r.Power),
			gradmesh.WithFallback(r.PreviewFallback),
		)),
		gradmesh.WithPreviewSampleOrigin(r.Origin),
		gradmesh.WithExporter(r.Exporter(sink)),
	}
	s, err := gradmesh.NewSession(append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	for _, p := range r.Points {
		if _, err := s.AddPoint(p.Position, p.Color); err != nil {
			s.Close()
			return nil, err
		}
	}
	s.ClearSelection()
	return s, nil
}

// Capture records the current state of a session as a scene, keeping the
// field and export settings of base.
func Capture(s *gradmesh.Session, base Scene) Scene {
	out := base
	out.Canvas = s.Canvas().String()
	if d := s.Display(); !d.Empty() {
		out.Display = d.String()
	}
	points := s.ListPoints()
	out.Points = make([]Point, len(points))
	for i, cp := range points {
		out.Points[i] = Point{X: cp.Position.X, Y: cp.Position.Y, Color: cp.Color.Hex()}
	}
	return out
}
