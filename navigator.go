package carplan

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

const (
	DEFAULT_AVERAGE_SPEED     = 40.0
	DEFAULT_INTERSECTION_SIZE = 30.0
	DEFAULT_HOOK_TOLERANCE    = 5.0
	DEFAULT_ARRIVAL_TOLERANCE = 3.0
)

// Navigator is the planning control of a single car: it keeps route, decides whether to accelerate or brake
// and steers the car through intersections on every simulation tick
type Navigator struct {
	graph      *Graph
	locator    RoadLocator
	car        Car
	controller *CarController
	collisions CollisionGate
	lights     *TrafficLightGate

	route           *Route
	nav             navigation
	currentPosition orb.Point

	averageSpeed float64
	maxTurnRate  float64
	cfg          navigationConfig
}

func WithAverageSpeed(speed float64) func(*Navigator) {
	return func(navigator *Navigator) {
		navigator.averageSpeed = speed
	}
}

func WithMaxTurnRate(rate float64) func(*Navigator) {
	return func(navigator *Navigator) {
		navigator.maxTurnRate = rate
	}
}

func WithIntersectionSize(size float64) func(*Navigator) {
	return func(navigator *Navigator) {
		navigator.cfg.intersectionSize = size
	}
}

func WithHookTolerance(tolerance float64) func(*Navigator) {
	return func(navigator *Navigator) {
		navigator.cfg.hookTolerance = tolerance
	}
}

func WithArrivalTolerance(tolerance float64) func(*Navigator) {
	return func(navigator *Navigator) {
		navigator.cfg.arrivalTolerance = tolerance
	}
}

func WithLogger(logger Logger) func(*Navigator) {
	return func(navigator *Navigator) {
		navigator.cfg.logger = logger
	}
}

// NewNavigator prepares planning control for the car. Locator is used to find the road car starts from
func NewNavigator(graph *Graph, locator RoadLocator, car Car, options ...func(*Navigator)) *Navigator {
	navigator := &Navigator{
		graph:           graph,
		locator:         locator,
		car:             car,
		nav:             navigation{State: STATE_IDLE, Current: DIRECTION_EAST},
		currentPosition: car.Position(),
		averageSpeed:    DEFAULT_AVERAGE_SPEED,
		maxTurnRate:     DEFAULT_MAX_TURN_RATE,
		cfg: navigationConfig{
			intersectionSize: DEFAULT_INTERSECTION_SIZE,
			hookTolerance:    DEFAULT_HOOK_TOLERANCE,
			arrivalTolerance: DEFAULT_ARRIVAL_TOLERANCE,
			logger:           defaultLogger(),
		},
	}
	for _, option := range options {
		option(navigator)
	}
	navigator.controller = NewCarController(car, navigator.maxTurnRate)
	navigator.lights = NewTrafficLightGate(navigator.cfg.logger)
	return navigator
}

// PlanRoute plans route from the road car is on to the destination and commits it.
// On failure previous route and navigation state stay untouched
func (navigator *Navigator) PlanRoute(destination orb.Point) bool {
	pos := navigator.car.Position()
	road, ok := navigator.locator.RoadAtPoint(pos)
	if !ok {
		navigator.cfg.logger.Printf("[WARNING]: Car at (%f, %f) is not on any road", pos.X(), pos.Y())
		return false
	}
	nodes, err := navigator.graph.PlanRoute(road, destination)
	if err != nil {
		navigator.cfg.logger.Printf("[INFO]: No valid route found to destination: %s", err)
		return false
	}
	navigator.currentPosition = pos
	navigator.route = NewRoute(nodes, destination)
	navigator.nav = startNavigation(pos, navigator.car.HeadingAngle(), destination, navigator.route, &navigator.cfg)
	return true
}

// Eta returns time (seconds) to destination based on remaining distance and average speed.
// Zero is returned before any route has been planned
func (navigator *Navigator) Eta() float64 {
	if navigator.route == nil {
		return 0
	}
	routeDistance := navigator.route.DistanceToDestination()
	distanceToNextIntersection := 0.0
	if navigator.nav.HasNextIntersection {
		distanceToNextIntersection = navigator.distanceToNextIntersection()
	}
	return (routeDistance + distanceToNextIntersection) / navigator.averageSpeed
}

// distanceToNextIntersection is signed distance along current heading
func (navigator *Navigator) distanceToNextIntersection() float64 {
	pos := navigator.car.Position()
	target := navigator.nav.NextIntersection
	switch navigator.nav.Current {
	case DIRECTION_EAST:
		return target.X() - pos.X()
	case DIRECTION_WEST:
		return pos.X() - target.X()
	case DIRECTION_NORTH:
		return target.Y() - pos.Y()
	case DIRECTION_SOUTH:
		return pos.Y() - target.Y()
	default:
		return 0
	}
}

// Update advances navigation by one tick. Nil observations mean perception has produced nothing;
// car then accelerates unless destination is reached
func (navigator *Navigator) Update(observations []Observation, delta float64) {
	navigator.currentPosition = navigator.car.Position()
	if navigator.nav.State == STATE_IDLE {
		return
	}

	throttle := THROTTLE_ACCELERATE
	if navigator.nav.State == STATE_ARRIVED {
		throttle = THROTTLE_BRAKE
	}
	if observations != nil {
		prioritized := prioritizeObservations(observations)
		trafficLights := lo.Filter(observations, func(obs Observation, _ int) bool {
			return obs.Classification == CLASSIFICATION_TRAFFIC_LIGHT
		})
		navigator.lights.Update(trafficLights)
		if navigator.collisions.Imminent(prioritized) || navigator.lights.CheckForStop() {
			throttle = THROTTLE_BRAKE
		}
	}
	angle, ok := navigator.nav.Current.HeadingAngle()
	if !ok {
		navigator.cfg.logger.Printf("[WARNING]: Direction '%s' is not recognised", navigator.nav.Current)
		angle = navigator.car.HeadingAngle()
	}
	navigator.controller.AdjustCar(angle, throttle)

	navigator.nav = navigator.nav.advance(navigator.currentPosition, navigator.route, &navigator.cfg)

	navigator.car.Update(delta)
}

// State returns tag of navigation state machine
func (navigator *Navigator) State() NavigationState {
	return navigator.nav.State
}

// Heading returns direction car currently holds
func (navigator *Navigator) Heading() Direction {
	return navigator.nav.Current
}

// DestinationReached reports whether car has arrived
func (navigator *Navigator) DestinationReached() bool {
	return navigator.nav.State == STATE_ARRIVED
}

// Route returns current route. Nil before first successful PlanRoute
func (navigator *Navigator) Route() *Route {
	return navigator.route
}

// DistanceLeft returns remaining distance estimation, +Inf before any route has been planned
func (navigator *Navigator) DistanceLeft() float64 {
	if navigator.route == nil {
		return math.Inf(1)
	}
	return navigator.Eta() * navigator.averageSpeed
}
