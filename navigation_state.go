package carplan

import (
	"math"

	"github.com/paulmach/orb"
)

// NavigationState is a tag of navigation state machine
type NavigationState uint16

const (
	STATE_IDLE = NavigationState(iota + 1)
	STATE_DRIVING
	STATE_TURNING
	STATE_ARRIVED
)

func (iotaIdx NavigationState) String() string {
	if iotaIdx < STATE_IDLE || iotaIdx > STATE_ARRIVED {
		return "unknown"
	}
	return [...]string{"idle", "driving", "turning", "arrived"}[iotaIdx-1]
}

// intersectionSource hands out intersections of the route one by one
type intersectionSource interface {
	NextIntersectionPosition() (orb.Point, bool)
}

// navigation is a snapshot of navigation state machine.
// Current is heading car holds, Next is heading it turns to when leaving STATE_TURNING
type navigation struct {
	State       NavigationState
	Current     Direction
	Next        Direction
	HookPending bool

	Destination         orb.Point
	NextIntersection    orb.Point
	HasNextIntersection bool
	PrevIntersection    orb.Point
}

type navigationConfig struct {
	intersectionSize float64
	hookTolerance    float64
	arrivalTolerance float64
	logger           Logger
}

// hookTurnRequired reports whether car has to drive halfway through intersection before turning.
// Heading north always requires it
func hookTurnRequired(current, next Direction) bool {
	switch current {
	case DIRECTION_EAST:
		return next == DIRECTION_SOUTH
	case DIRECTION_WEST:
		return next == DIRECTION_NORTH
	case DIRECTION_SOUTH:
		return next == DIRECTION_WEST
	case DIRECTION_NORTH:
		return true
	default:
		return false
	}
}

// reachedIntersection compares single coordinate keyed by heading. Second value is false for unknown heading
func reachedIntersection(heading Direction, pos, target orb.Point) (bool, bool) {
	switch heading {
	case DIRECTION_EAST:
		return pos.X() >= target.X(), true
	case DIRECTION_WEST:
		return pos.X() <= target.X(), true
	case DIRECTION_NORTH:
		return pos.Y() >= target.Y(), true
	case DIRECTION_SOUTH:
		return pos.Y() <= target.Y(), true
	default:
		return false, false
	}
}

// directionFromAngle returns cardinal direction nearest to the heading angle (degrees)
func directionFromAngle(angle float64) Direction {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	switch {
	case angle >= 45 && angle < 135:
		return DIRECTION_NORTH
	case angle >= 135 && angle < 225:
		return DIRECTION_WEST
	case angle >= 225 && angle < 315:
		return DIRECTION_SOUTH
	default:
		return DIRECTION_EAST
	}
}

// startNavigation takes the first intersection of a fresh route and heads toward it
func startNavigation(pos orb.Point, headingAngle float64, destination orb.Point, route intersectionSource, cfg *navigationConfig) navigation {
	nav := navigation{
		State:       STATE_DRIVING,
		Destination: destination,
	}
	first, ok := route.NextIntersectionPosition()
	if !ok {
		nav.Current = dominantDirection(pos, destination)
		nav.Next = nav.Current
		return nav
	}
	nav.NextIntersection = first
	nav.HasNextIntersection = true
	nav.Current = thresholdDirection(pos, first, cfg.intersectionSize)
	if nav.Current == DIRECTION_UNDEFINED {
		nav.Current = directionFromAngle(headingAngle)
	}
	nav.Next = nav.Current
	return nav
}

// advance is the transition function of navigation state machine for single tick
func (nav navigation) advance(pos orb.Point, route intersectionSource, cfg *navigationConfig) navigation {
	switch nav.State {
	case STATE_TURNING:
		if nav.HookPending && nav.Current.alongAxis(pos, nav.PrevIntersection) <= cfg.intersectionSize/2-cfg.hookTolerance {
			return nav
		}
		nav.Current = nav.Next
		nav.HookPending = false
		nav.State = STATE_DRIVING
		return nav
	case STATE_DRIVING:
		if !nav.HasNextIntersection {
			if nav.Current.alongAxis(pos, nav.Destination) < cfg.arrivalTolerance {
				nav.State = STATE_ARRIVED
			}
			return nav
		}
		reached, ok := reachedIntersection(nav.Current, pos, nav.NextIntersection)
		if !ok {
			cfg.logger.Printf("[WARNING]: Direction '%s' is not recognised", nav.Current)
			return nav
		}
		if !reached {
			return nav
		}
		nav.PrevIntersection = nav.NextIntersection
		next, ok := route.NextIntersectionPosition()
		if ok {
			nav.NextIntersection = next
			nav.Next = thresholdDirection(pos, next, cfg.intersectionSize)
			if nav.Next == DIRECTION_UNDEFINED {
				cfg.logger.Printf("[WARNING]: Direction for next intersection at (%f, %f) is not recognised", next.X(), next.Y())
				nav.Next = nav.Current
			}
		} else {
			nav.HasNextIntersection = false
			nav.Next = dominantDirection(pos, nav.Destination)
		}
		nav.HookPending = hookTurnRequired(nav.Current, nav.Next)
		nav.State = STATE_TURNING
		return nav
	default:
		return nav
	}
}
