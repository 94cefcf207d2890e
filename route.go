package carplan

import (
	"github.com/paulmach/orb"
)

// Route is a planned list of intersections with a cursor: consumed intersections are popped from the front
type Route struct {
	currentRoute         []*Node
	destination          orb.Point
	previousNodePosition orb.Point
	hasPrevious          bool
}

func NewRoute(nodes []*Node, destination orb.Point) *Route {
	currentRoute := make([]*Node, len(nodes))
	copy(currentRoute, nodes)
	return &Route{
		currentRoute: currentRoute,
		destination:  destination,
	}
}

func (route *Route) Destination() orb.Point {
	return route.destination
}

// Remaining returns intersections which have not been handed out yet
func (route *Route) Remaining() []*Node {
	return route.currentRoute
}

// DistanceToDestination estimates remaining distance: orthogonal distances between remaining intersections,
// plus distance from the most recently handed out intersection to the first remaining one,
// plus max(|dx|, |dy|) from the last intersection to destination.
// Estimation is relative to the most recently handed out intersection, so it is meaningful only
// after NextIntersectionPosition has been called at least once
func (route *Route) DistanceToDestination() float64 {
	total := 0.0
	for i := 0; i < len(route.currentRoute)-1; i++ {
		total += orthogonalDistance(route.currentRoute[i].pos, route.currentRoute[i+1].pos)
	}
	finalNodePosition := route.previousNodePosition
	if len(route.currentRoute) > 0 {
		total += orthogonalDistance(route.currentRoute[0].pos, route.previousNodePosition)
		finalNodePosition = route.currentRoute[len(route.currentRoute)-1].pos
	}
	total += chebyshevDistance(finalNodePosition, route.destination)
	return total
}

// EstimatedDistance is the same estimation as DistanceToDestination, but anchored on the first remaining
// intersection when none has been handed out yet, so it is meaningful for a freshly planned route
func (route *Route) EstimatedDistance() float64 {
	if route.hasPrevious || len(route.currentRoute) == 0 {
		return route.DistanceToDestination()
	}
	total := RouteLength(route.currentRoute)
	total += chebyshevDistance(route.currentRoute[len(route.currentRoute)-1].pos, route.destination)
	return total
}

// NextIntersectionPosition pops the next intersection. False is returned when route has no intersections left
func (route *Route) NextIntersectionPosition() (orb.Point, bool) {
	if len(route.currentRoute) == 0 {
		return orb.Point{}, false
	}
	next := route.currentRoute[0]
	route.currentRoute = route.currentRoute[1:]
	route.previousNodePosition = next.pos
	route.hasPrevious = true
	return next.pos, true
}

// LineString returns geometry of the rest of the route: last handed out intersection (if any),
// remaining intersections and destination
func (route *Route) LineString() orb.LineString {
	line := make(orb.LineString, 0, len(route.currentRoute)+2)
	if route.hasPrevious {
		line = append(line, route.previousNodePosition)
	}
	for _, node := range route.currentRoute {
		line = append(line, node.pos)
	}
	line = append(line, route.destination)
	return line
}
