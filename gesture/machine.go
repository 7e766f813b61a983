package gesture

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/gogpu/gradmesh"
)

const (
	// DragThreshold is the distance in display pixels, on either axis, a
	// press must travel before it counts as a drag.
	DragThreshold = 5

	// HitRadius is the marker hit radius in display pixels.
	HitRadius = 12
)

// Phase is the stage of a pointer event.
type Phase int

const (
	// Down starts a gesture: a mouse press or a touch start.
	Down Phase = iota
	// Move reports motion while the pointer is down.
	Move
	// Up ends a gesture.
	Up
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Down:
		return "Down"
	case Move:
		return "Move"
	case Up:
		return "Up"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Button identifies the pointer button.
type Button int

const (
	// Primary is the main button or a touch contact.
	Primary Button = iota
	// Secondary is the context button. A press on a marker removes it.
	Secondary
)

// Event is a pointer event in display coordinates.
type Event struct {
	ID     int
	X, Y   float64
	Phase  Phase
	Button Button
}

// Pos returns the event position.
func (e Event) Pos() gradmesh.Point {
	return gradmesh.Pt(e.X, e.Y)
}

// State is the gesture state.
type State int

const (
	// Idle waits for a Down event. The hue picker may be open.
	Idle State = iota
	// DraggingPoint follows a pointer that went down on a marker or on
	// empty canvas. Motion past DragThreshold moves the point.
	DraggingPoint
	// DraggingColorHandle follows a pointer that went down on the open
	// hue picker and recolors its point.
	DraggingColorHandle
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case DraggingPoint:
		return "DraggingPoint"
	case DraggingColorHandle:
		return "DraggingColorHandle"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Target is the editing surface a Machine drives. *gradmesh.Session
// satisfies it.
type Target interface {
	Canvas() gradmesh.Size
	Display() gradmesh.Size
	ListPoints() []gradmesh.ControlPoint
	AddPointAt(pos gradmesh.Point) (gradmesh.PointID, error)
	MovePoint(id gradmesh.PointID, pos gradmesh.Point) error
	RecolorPoint(id gradmesh.PointID, c gradmesh.Color) error
	RemovePoint(id gradmesh.PointID) error
	Select(id gradmesh.PointID) error
	ClearSelection()
}

var _ Target = (*gradmesh.Session)(nil)

// Machine is the pointer gesture state machine. It is not safe for
// concurrent use; feed it from a single event loop.
type Machine struct {
	target Target

	state   State
	pointer int
	pressed bool // a pointer is down, even on empty canvas
	start   gradmesh.Point
	point   gradmesh.PointID
	dragged bool

	picker *Picker
}

// New returns an idle machine driving t.
func New(t Target) *Machine {
	return &Machine{target: t}
}

// State returns the current gesture state.
func (m *Machine) State() State {
	return m.state
}

// Picker returns the open hue picker, if any.
func (m *Machine) Picker() (Picker, bool) {
	if m.picker == nil {
		return Picker{}, false
	}
	return *m.picker, true
}

// ClosePicker closes the hue picker.
func (m *Machine) ClosePicker() {
	m.picker = nil
}

// Handle advances the machine by one event. Events from a pointer other
// than the one that started the current gesture are ignored. The returned
// error comes from the target; the machine returns to Idle on release
// regardless.
func (m *Machine) Handle(ev Event) error {
	if m.pressed && ev.ID != m.pointer {
		return nil
	}
	switch ev.Phase {
	case Down:
		if m.pressed {
			return nil
		}
		return m.down(ev)
	case Move:
		if !m.pressed {
			return nil
		}
		return m.move(ev)
	case Up:
		if !m.pressed {
			return nil
		}
		return m.up(ev)
	default:
		return nil
	}
}

func (m *Machine) down(ev Event) error {
	pos := ev.Pos()
	hit, onMarker := m.HitTest(pos)

	if ev.Button == Secondary {
		if !onMarker {
			return nil
		}
		if m.picker != nil && m.picker.Point == hit {
			m.picker = nil
		}
		return m.target.RemovePoint(hit)
	}

	m.pressed = true
	m.pointer = ev.ID
	m.start = pos
	m.dragged = false
	m.point = uuid.Nil

	switch {
	case m.picker != nil && m.picker.Contains(pos):
		m.state = DraggingColorHandle
		m.point = m.picker.Point
		return m.recolor(pos.X)
	case onMarker:
		m.state = DraggingPoint
		m.point = hit
		return m.target.Select(hit)
	default:
		m.state = Idle
		return nil
	}
}

func (m *Machine) move(ev Event) error {
	pos := ev.Pos()
	switch m.state {
	case DraggingColorHandle:
		return m.recolor(pos.X)
	case DraggingPoint:
		if !m.dragged {
			if math.Abs(pos.X-m.start.X) <= DragThreshold && math.Abs(pos.Y-m.start.Y) <= DragThreshold {
				return nil
			}
			m.dragged = true
			m.picker = nil
		}
		return m.target.MovePoint(m.point, m.toCanvas(pos))
	default:
		return nil
	}
}

func (m *Machine) up(ev Event) error {
	state, id, dragged := m.state, m.point, m.dragged
	m.reset()

	switch state {
	case DraggingPoint:
		if dragged {
			return m.target.MovePoint(id, m.toCanvas(ev.Pos()))
		}
		p := newPicker(id, m.markerPos(id), m.target.Display())
		m.picker = &p
		return nil
	case DraggingColorHandle:
		return m.recolor(ev.X)
	default:
		if m.picker != nil {
			m.picker = nil
			m.target.ClearSelection()
			return nil
		}
		_, err := m.target.AddPointAt(m.toCanvas(ev.Pos()))
		return err
	}
}

func (m *Machine) reset() {
	m.state = Idle
	m.pressed = false
	m.point = uuid.Nil
	m.dragged = false
}

func (m *Machine) recolor(x float64) error {
	if m.picker == nil {
		return nil
	}
	err := m.target.RecolorPoint(m.picker.Point, m.picker.ColorAt(x))
	if errors.Is(err, gradmesh.ErrPointNotFound) {
		m.picker = nil
	}
	return err
}

// HitTest returns the topmost marker within HitRadius of a display
// position. Later points are drawn on top and win ties.
func (m *Machine) HitTest(pos gradmesh.Point) (gradmesh.PointID, bool) {
	canvas, display := m.target.Canvas(), m.target.Display()
	points := m.target.ListPoints()
	for i := len(points) - 1; i >= 0; i-- {
		at := gradmesh.ToDisplay(points[i].Position, canvas, display)
		if at.Distance(pos) <= HitRadius {
			return points[i].ID, true
		}
	}
	return uuid.Nil, false
}

func (m *Machine) toCanvas(pos gradmesh.Point) gradmesh.Point {
	canvas := m.target.Canvas()
	return canvas.Clamp(gradmesh.ToCanvas(pos, canvas, m.target.Display()))
}

func (m *Machine) markerPos(id gradmesh.PointID) gradmesh.Point {
	for _, cp := range m.target.ListPoints() {
		if cp.ID == id {
			return gradmesh.ToDisplay(cp.Position, m.target.Canvas(), m.target.Display())
		}
	}
	return gradmesh.Point{}
}
