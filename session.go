package gradmesh

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SessionOption configures a Session during creation.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	canvas   Size
	display  Size
	field    Field
	origin   SampleOrigin
	workers  int
	exporter *Exporter
	hook     func(*Pixmap)
}

// WithCanvas sets the initial logical canvas. The default is DefaultCanvas.
func WithCanvas(s Size) SessionOption {
	return func(o *sessionOptions) {
		o.canvas = s
	}
}

// WithDisplay sets the initial display size. The default is 0x0, which keeps
// the preview empty until NotifyDisplayResize is called.
func WithDisplay(s Size) SessionOption {
	return func(o *sessionOptions) {
		o.display = s
	}
}

// WithPreviewField sets the field used for the live preview. The default
// has power 2 and the PreviewFallback color.
func WithPreviewField(f Field) SessionOption {
	return func(o *sessionOptions) {
		o.field = f
	}
}

// WithPreviewSampleOrigin sets the sampling convention of the live preview.
func WithPreviewSampleOrigin(origin SampleOrigin) SessionOption {
	return func(o *sessionOptions) {
		o.origin = origin
	}
}

// WithPreviewWorkers sets the worker count of live preview passes.
func WithPreviewWorkers(n int) SessionOption {
	return func(o *sessionOptions) {
		o.workers = n
	}
}

// WithExporter sets the export pipeline. The default is NewExporter().
func WithExporter(e *Exporter) SessionOption {
	return func(o *sessionOptions) {
		o.exporter = e
	}
}

// WithPreviewHook registers a function called with every new preview buffer.
// The hook runs on the goroutine that triggered the pass, after the session
// lock is released, so it may call back into the Session.
func WithPreviewHook(fn func(*Pixmap)) SessionOption {
	return func(o *sessionOptions) {
		o.hook = fn
	}
}

// Session ties the point store, the live preview and the export pipeline
// together. It is the surface a user interface drives: every point mutation
// and every display resize triggers one full preview pass.
//
// Preview buffers are never modified after they are published; each pass
// renders into a fresh Pixmap. Treat the result of PreviewBuffer as read-only.
//
// Thread safety: Session is safe for concurrent use. Exports read an atomic
// snapshot of the store and may run concurrently with mutations.
type Session struct {
	mu       sync.Mutex
	store    *Store
	display  Size
	preview  *Pixmap
	raster   *Rasterizer
	exporter *Exporter
	hook     func(*Pixmap)
	selected PointID
	placed   int
}

// NewSession creates a session and renders its first preview.
//
// Example:
//
//	s, err := gradmesh.NewSession(
//	    gradmesh.WithCanvas(gradmesh.Sz(3840, 2160)),
//	    gradmesh.WithDisplay(gradmesh.Sz(1280, 720)),
//	)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	id, _ := s.AddPoint(gradmesh.Pt(1920, 1080), gradmesh.Red)
func NewSession(opts ...SessionOption) (*Session, error) {
	o := sessionOptions{
		canvas:  DefaultCanvas,
		field:   NewField(WithFallback(PreviewFallback)),
		origin:  PixelCorner,
		workers: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.display.Width < 0 || o.display.Height < 0 {
		return nil, fmt.Errorf("%w: display %s", ErrInvalidSize, o.display)
	}
	store, err := NewStore(o.canvas)
	if err != nil {
		return nil, err
	}
	if o.exporter == nil {
		o.exporter = NewExporter()
	}

	s := &Session{
		store:    store,
		display:  o.display,
		raster:   NewRasterizer(o.field, WithSampleOrigin(o.origin), WithWorkers(o.workers)),
		exporter: o.exporter,
		hook:     o.hook,
	}
	s.mu.Lock()
	pm := s.renderLocked("init")
	s.mu.Unlock()
	s.publish(pm)
	return s, nil
}

// Store returns the underlying point store.
// Mutating it directly bypasses preview updates.
func (s *Session) Store() *Store {
	return s.store
}

// Exporter returns the export pipeline.
func (s *Session) Exporter() *Exporter {
	return s.exporter
}

// Canvas returns the logical canvas dimensions.
func (s *Session) Canvas() Size {
	return s.store.Canvas()
}

// Display returns the current display dimensions.
func (s *Session) Display() Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

// ListPoints returns a snapshot of the points in insertion order, in logical
// canvas coordinates. Map them with ToDisplay to draw markers.
func (s *Session) ListPoints() []ControlPoint {
	return s.store.List()
}

// PreviewBuffer returns the latest live preview, sized to the display.
// The returned pixmap must not be modified.
func (s *Session) PreviewBuffer() *Pixmap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// AddPoint places a point at a logical position with the given color.
func (s *Session) AddPoint(pos Point, c Color) (PointID, error) {
	return s.add(pos, c)
}

// AddPointAt places a point at a logical position with the next palette
// color and selects it.
func (s *Session) AddPointAt(pos Point) (PointID, error) {
	s.mu.Lock()
	c := PaletteColor(s.placed)
	s.mu.Unlock()
	return s.add(pos, c)
}

// AddCenterPoint places a palette-colored point at the canvas center.
func (s *Session) AddCenterPoint() (PointID, error) {
	return s.AddPointAt(s.store.Canvas().Center())
}

func (s *Session) add(pos Point, c Color) (PointID, error) {
	s.mu.Lock()
	id, err := s.store.Add(pos, c)
	if err != nil {
		s.mu.Unlock()
		return uuid.Nil, reject("add", err)
	}
	s.placed++
	s.selected = id
	pm := s.renderLocked("add")
	s.mu.Unlock()

	s.publish(pm)
	return id, nil
}

// MovePoint moves a point to a logical position.
// Callers dragging a marker should pass the position through Store().Clamp.
func (s *Session) MovePoint(id PointID, pos Point) error {
	return s.mutate("move", func() error { return s.store.Move(id, pos) })
}

// RecolorPoint changes the color of a point.
func (s *Session) RecolorPoint(id PointID, c Color) error {
	return s.mutate("recolor", func() error { return s.store.Recolor(id, c) })
}

// RemovePoint deletes a point, clearing the selection if it was selected.
func (s *Session) RemovePoint(id PointID) error {
	return s.mutate("remove", func() error {
		if err := s.store.Remove(id); err != nil {
			return err
		}
		if s.selected == id {
			s.selected = uuid.Nil
		}
		return nil
	})
}

// Select marks a point as selected.
func (s *Session) Select(id PointID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.store.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrPointNotFound, id)
	}
	s.selected = id
	return nil
}

// ClearSelection deselects any selected point.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	s.selected = uuid.Nil
	s.mu.Unlock()
}

// Selected returns the selected point id, if any.
func (s *Session) Selected() (PointID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.selected != uuid.Nil
}

// RemoveSelected deletes the selected point, the action bound to the
// Delete and Backspace keys.
func (s *Session) RemoveSelected() error {
	id, ok := s.Selected()
	if !ok {
		return ErrNoSelection
	}
	return s.RemovePoint(id)
}

// NotifyDisplayResize records a new display size and re-renders the preview.
// Stored positions are never modified. A zero dimension yields an empty
// preview; negative dimensions are rejected.
func (s *Session) NotifyDisplayResize(display Size) error {
	if display.Width < 0 || display.Height < 0 {
		return reject("resize display", fmt.Errorf("%w: display %s", ErrInvalidSize, display))
	}
	s.mu.Lock()
	s.display = display
	pm := s.renderLocked("resize display")
	s.mu.Unlock()

	s.publish(pm)
	return nil
}

// ChangeLogicalResolution changes the logical canvas size, rescaling every
// stored point so the layout is preserved.
func (s *Session) ChangeLogicalResolution(canvas Size) error {
	old := s.store.Canvas()
	if err := s.mutate("change resolution", func() error { return s.store.Resize(canvas) }); err != nil {
		return err
	}
	Logger().Info("logical resolution changed", "from", old.String(), "to", canvas.String())
	return nil
}

// RequestExport renders the current points at target resolution through the
// export pipeline. onComplete, if non-nil, is called exactly once after the
// artifact has been handed to the exporter's sink.
func (s *Session) RequestExport(target Size, onComplete func(Artifact)) (Artifact, error) {
	return s.exporter.Export(s.store, target, onComplete)
}

// Close releases the preview and export worker pools.
func (s *Session) Close() {
	s.raster.Close()
	s.exporter.Close()
}

// mutate runs op under the session lock and re-renders on success.
func (s *Session) mutate(name string, op func() error) error {
	s.mu.Lock()
	if err := op(); err != nil {
		s.mu.Unlock()
		return reject(name, err)
	}
	pm := s.renderLocked(name)
	s.mu.Unlock()

	s.publish(pm)
	return nil
}

// renderLocked runs a full preview pass. s.mu must be held.
func (s *Session) renderLocked(trigger string) *Pixmap {
	points, canvas := s.store.Snapshot()
	samples := SamplesIn(points, canvas, s.display)
	s.preview = s.raster.Render(s.display.Width, s.display.Height, samples)

	if debugEnabled() {
		Logger().Debug("preview rendered",
			"trigger", trigger,
			"size", s.display.String(),
			"points", len(samples))
	}
	return s.preview
}

func (s *Session) publish(pm *Pixmap) {
	if s.hook != nil {
		s.hook(pm)
	}
}

func reject(op string, err error) error {
	Logger().Warn("mutation rejected", "op", op, "err", err)
	return err
}
