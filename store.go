package gradmesh

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// PointID identifies a control point for the lifetime of a session.
// Ids are random UUIDs and are never reused.
type PointID = uuid.UUID

// DefaultCanvas is the logical canvas used when none is configured.
var DefaultCanvas = Size{Width: 3840, Height: 2160}

// ControlPoint is a user-placed color anchor.
// Position is expressed in logical canvas units.
type ControlPoint struct {
	ID       PointID
	Position Point
	Color    Color
}

// Sample returns the point as a field sample in logical canvas space.
func (cp ControlPoint) Sample() Sample {
	return Sample{Position: cp.Position, Color: cp.Color}
}

// Store holds the authoritative set of control points in logical canvas
// coordinates together with the canvas dimensions they are relative to.
//
// Mutations validate their arguments and fail with an error wrapping
// ErrInvalidArgument or ErrPointNotFound; the stored state never changes
// on failure. Reads return copies, so callers can never observe a
// half-applied mutation.
//
// Thread safety: Store is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	canvas Size
	points []ControlPoint
	index  map[PointID]int
}

// NewStore creates an empty store for a logical canvas of the given size.
func NewStore(canvas Size) (*Store, error) {
	if canvas.Empty() {
		return nil, fmt.Errorf("%w: canvas %s", ErrInvalidSize, canvas)
	}
	return &Store{
		canvas: canvas,
		index:  make(map[PointID]int),
	}, nil
}

// Canvas returns the current logical canvas dimensions.
func (s *Store) Canvas() Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canvas
}

// Len returns the number of stored points.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// Add stores a new point and returns its fresh id.
func (s *Store) Add(pos Point, c Color) (PointID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkPosition(pos, s.canvas); err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()

	s.index[id] = len(s.points)
	s.points = append(s.points, ControlPoint{ID: id, Position: pos, Color: c})
	return id, nil
}

// Move sets the position of an existing point.
func (s *Store) Move(id PointID, pos Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPointNotFound, id)
	}
	if err := checkPosition(pos, s.canvas); err != nil {
		return err
	}
	s.points[i].Position = pos
	return nil
}

// Recolor sets the color of an existing point.
func (s *Store) Recolor(id PointID, c Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPointNotFound, id)
	}
	s.points[i].Color = c
	return nil
}

// Remove deletes a point. Removing an unknown id returns ErrPointNotFound.
func (s *Store) Remove(id PointID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPointNotFound, id)
	}

	s.points = append(s.points[:i], s.points[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.points); j++ {
		s.index[s.points[j].ID] = j
	}
	return nil
}

// Get returns a copy of the point with the given id.
func (s *Store) Get(id PointID) (ControlPoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return ControlPoint{}, false
	}
	return s.points[i], true
}

// List returns a snapshot of all points in insertion order.
func (s *Store) List() []ControlPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePoints(s.points)
}

// Snapshot returns the points together with the canvas they are relative to,
// read under a single lock.
func (s *Store) Snapshot() ([]ControlPoint, Size) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePoints(s.points), s.canvas
}

// Resize changes the logical canvas dimensions and rescales every stored
// point so that the relative layout is preserved.
func (s *Store) Resize(canvas Size) error {
	if canvas.Empty() {
		return fmt.Errorf("%w: canvas %s", ErrInvalidSize, canvas)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.points = RescaleAll(s.points, s.canvas, canvas)
	for i := range s.points {
		s.points[i].Position = canvas.Clamp(s.points[i].Position)
	}
	s.canvas = canvas
	return nil
}

// Clamp returns pos limited to the current canvas bounds.
// Non-finite coordinates clamp to 0.
func (s *Store) Clamp(pos Point) Point {
	return s.Canvas().Clamp(pos)
}

func checkPosition(pos Point, canvas Size) error {
	if !pos.IsFinite() || !canvas.Contains(pos) {
		return fmt.Errorf("%w: (%g, %g) on %s canvas", ErrInvalidPosition, pos.X, pos.Y, canvas)
	}
	return nil
}

func clonePoints(points []ControlPoint) []ControlPoint {
	out := make([]ControlPoint, len(points))
	copy(out, points)
	return out
}
