package carplan

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidNetwork is returned when road geometry does not agree with intersections extents or an object is added twice
	ErrInvalidNetwork = errors.New("Network is invalid")
	// ErrUnknownRoad is returned when road is not a part of the graph
	ErrUnknownRoad = errors.New("Road is not known")
	// ErrNoRoute is returned when destination is not reachable from the road
	ErrNoRoute = errors.New("No route to destination")
	// ErrSearchDeadEnd is returned when destination is reachable but greedy search has given up
	ErrSearchDeadEnd = errors.New("Path search met dead end")
)

// IsNoRoute reports whether err means that route has not been found (for any reason)
func IsNoRoute(err error) bool {
	cause := errors.Cause(err)
	return cause == ErrNoRoute || cause == ErrSearchDeadEnd
}
