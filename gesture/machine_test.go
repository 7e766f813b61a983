package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gradmesh"
)

// newSession returns a session whose canvas is twice the display on both
// axes, so display (x,y) maps to canvas (2x,2y).
func newSession(t *testing.T) *gradmesh.Session {
	t.Helper()
	s, err := gradmesh.NewSession(
		gradmesh.WithCanvas(gradmesh.Sz(400, 200)),
		gradmesh.WithDisplay(gradmesh.Sz(200, 100)),
	)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func press(x, y float64) Event   { return Event{ID: 1, X: x, Y: y, Phase: Down} }
func drag(x, y float64) Event    { return Event{ID: 1, X: x, Y: y, Phase: Move} }
func release(x, y float64) Event { return Event{ID: 1, X: x, Y: y, Phase: Up} }

func tap(t *testing.T, m *Machine, x, y float64) {
	t.Helper()
	require.NoError(t, m.Handle(press(x, y)))
	require.NoError(t, m.Handle(release(x, y)))
}

func TestTapEmptyCanvasAddsPoint(t *testing.T) {
	s := newSession(t)
	m := New(s)

	tap(t, m, 50, 25)

	points := s.ListPoints()
	require.Len(t, points, 1)
	assert.Equal(t, gradmesh.Pt(100, 50), points[0].Position)
	assert.Equal(t, gradmesh.PaletteColor(0), points[0].Color)
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, points[0].ID, sel)
	assert.Equal(t, Idle, m.State())
}

func TestSmallMotionOpensPicker(t *testing.T) {
	s := newSession(t)
	id, err := s.AddPoint(gradmesh.Pt(200, 60), gradmesh.Red)
	require.NoError(t, err)
	m := New(s)

	require.NoError(t, m.Handle(press(100, 30)))
	assert.Equal(t, DraggingPoint, m.State())
	require.NoError(t, m.Handle(drag(103, 34)))
	require.NoError(t, m.Handle(release(103, 34)))

	cp, _ := s.Store().Get(id)
	assert.Equal(t, gradmesh.Pt(200, 60), cp.Position, "motion within threshold must not move the point")
	p, ok := m.Picker()
	require.True(t, ok)
	assert.Equal(t, id, p.Point)
	assert.Equal(t, Idle, m.State())
}

func TestDragMovesPoint(t *testing.T) {
	s := newSession(t)
	id, err := s.AddPoint(gradmesh.Pt(200, 60), gradmesh.Red)
	require.NoError(t, err)
	m := New(s)

	require.NoError(t, m.Handle(press(100, 30)))
	require.NoError(t, m.Handle(drag(110, 30)))
	cp, _ := s.Store().Get(id)
	assert.Equal(t, gradmesh.Pt(220, 60), cp.Position)

	require.NoError(t, m.Handle(drag(60, 50)))
	require.NoError(t, m.Handle(release(60, 50)))
	cp, _ = s.Store().Get(id)
	assert.Equal(t, gradmesh.Pt(120, 100), cp.Position)
	assert.Equal(t, Idle, m.State())

	_, open := m.Picker()
	assert.False(t, open, "a drag must not open the picker")
	assert.Len(t, s.ListPoints(), 1)
}

func TestDragClampsToCanvas(t *testing.T) {
	s := newSession(t)
	id, _ := s.AddPoint(gradmesh.Pt(200, 100), gradmesh.Red)
	m := New(s)

	require.NoError(t, m.Handle(press(100, 50)))
	require.NoError(t, m.Handle(drag(500, -40)))
	require.NoError(t, m.Handle(release(500, -40)))

	cp, _ := s.Store().Get(id)
	assert.Equal(t, gradmesh.Pt(400, 0), cp.Position)
}

func TestSecondaryButtonRemovesMarker(t *testing.T) {
	s := newSession(t)
	keep, _ := s.AddPoint(gradmesh.Pt(20, 20), gradmesh.Blue)
	_, _ = s.AddPoint(gradmesh.Pt(300, 150), gradmesh.Red)
	m := New(s)

	require.NoError(t, m.Handle(Event{ID: 1, X: 151, Y: 74, Phase: Down, Button: Secondary}))

	points := s.ListPoints()
	require.Len(t, points, 1)
	assert.Equal(t, keep, points[0].ID)

	// Secondary on empty canvas is a no-op.
	require.NoError(t, m.Handle(Event{ID: 1, X: 190, Y: 5, Phase: Down, Button: Secondary}))
	assert.Len(t, s.ListPoints(), 1)
}

func TestTapWithOpenPickerClosesIt(t *testing.T) {
	s := newSession(t)
	_, _ = s.AddPoint(gradmesh.Pt(200, 60), gradmesh.Red)
	m := New(s)

	tap(t, m, 100, 30)
	_, open := m.Picker()
	require.True(t, open)

	tap(t, m, 190, 10)
	_, open = m.Picker()
	assert.False(t, open)
	assert.Len(t, s.ListPoints(), 1, "closing the picker must not add a point")
	_, selected := s.Selected()
	assert.False(t, selected)

	tap(t, m, 190, 10)
	assert.Len(t, s.ListPoints(), 2)
}

func TestHueStripRecolors(t *testing.T) {
	s := newSession(t)
	id, _ := s.AddPoint(gradmesh.Pt(200, 60), gradmesh.Green)
	m := New(s)
	tap(t, m, 100, 30)

	p, ok := m.Picker()
	require.True(t, ok)
	y := p.Y + p.Height/2

	require.NoError(t, m.Handle(press(p.X, y)))
	assert.Equal(t, DraggingColorHandle, m.State())
	cp, _ := s.Store().Get(id)
	assert.Equal(t, gradmesh.RGB(255, 0, 0), cp.Color)

	x := p.X + p.Width*2/3
	require.NoError(t, m.Handle(drag(x, y+200)))
	cp, _ = s.Store().Get(id)
	assert.Equal(t, gradmesh.Hue(p.HueAt(x)), cp.Color)
	assert.Equal(t, gradmesh.Pt(200, 60), cp.Position)

	require.NoError(t, m.Handle(release(x, y)))
	assert.Equal(t, Idle, m.State())
	_, open := m.Picker()
	assert.True(t, open, "the picker stays open after a hue drag")
}

func TestOtherPointerIgnored(t *testing.T) {
	s := newSession(t)
	id, _ := s.AddPoint(gradmesh.Pt(200, 60), gradmesh.Red)
	m := New(s)

	require.NoError(t, m.Handle(press(100, 30)))
	require.NoError(t, m.Handle(Event{ID: 2, X: 10, Y: 10, Phase: Down}))
	require.NoError(t, m.Handle(Event{ID: 2, X: 150, Y: 90, Phase: Move}))
	require.NoError(t, m.Handle(Event{ID: 2, X: 150, Y: 90, Phase: Up}))

	cp, _ := s.Store().Get(id)
	assert.Equal(t, gradmesh.Pt(200, 60), cp.Position)
	assert.Equal(t, DraggingPoint, m.State())
	assert.Len(t, s.ListPoints(), 1)

	require.NoError(t, m.Handle(release(100, 30)))
	assert.Equal(t, Idle, m.State())
}

func TestStrayEventsWhileIdle(t *testing.T) {
	s := newSession(t)
	m := New(s)

	require.NoError(t, m.Handle(drag(10, 10)))
	require.NoError(t, m.Handle(release(10, 10)))
	assert.Empty(t, s.ListPoints())
	assert.Equal(t, Idle, m.State())
}

func TestHitTestPrefersTopmost(t *testing.T) {
	s := newSession(t)
	_, _ = s.AddPoint(gradmesh.Pt(200, 100), gradmesh.Red)
	top, _ := s.AddPoint(gradmesh.Pt(204, 100), gradmesh.Blue)
	m := New(s)

	id, ok := m.HitTest(gradmesh.Pt(101, 50))
	require.True(t, ok)
	assert.Equal(t, top, id)

	_, ok = m.HitTest(gradmesh.Pt(101+HitRadius+3, 50))
	assert.False(t, ok)
}

func TestPickerPlacement(t *testing.T) {
	display := gradmesh.Sz(400, 100)

	p := newPicker(gradmesh.PointID{}, gradmesh.Pt(200, 20), display)
	assert.Equal(t, 70.0, p.X)
	assert.Equal(t, 20.0+HitRadius+pickerGap, p.Y)

	p = newPicker(gradmesh.PointID{}, gradmesh.Pt(390, 90), display)
	assert.Equal(t, 140.0, p.X, "strip shifts left to stay on screen")
	assert.Less(t, p.Y, 90.0, "strip flips above the marker near the bottom edge")

	assert.InDelta(t, 0, p.HueAt(p.X-50), 1e-9)
	assert.InDelta(t, 180, p.HueAt(p.X+p.Width/2), 1e-9)
	assert.InDelta(t, 360, p.HueAt(p.X+p.Width+50), 1e-9)
}
