package gradmesh

import (
	"errors"
	"fmt"
)

// Errors returned by the store, the session and the export pipeline.
var (
	// ErrInvalidArgument is the parent of every argument validation error.
	ErrInvalidArgument = errors.New("gradmesh: invalid argument")

	// ErrInvalidPosition is returned when a position is not finite or lies
	// outside the logical canvas.
	ErrInvalidPosition = fmt.Errorf("%w: position outside canvas", ErrInvalidArgument)

	// ErrInvalidSize is returned for canvas or export dimensions that are
	// not strictly positive.
	ErrInvalidSize = fmt.Errorf("%w: non-positive size", ErrInvalidArgument)

	// ErrPointNotFound is returned when an id does not name a stored point.
	ErrPointNotFound = errors.New("gradmesh: point not found")

	// ErrNoSelection is returned by RemoveSelected when nothing is selected.
	ErrNoSelection = errors.New("gradmesh: no point selected")
)
