package carplan

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

const maxTicks = 500

func newTestNavigator(t *testing.T, net *Network, car *fakeCar) *Navigator {
	return NewNavigator(mustGraph(t, net), net, car, WithLogger(SilentLogger))
}

func driveUntilArrival(navigator *Navigator) int {
	for tick := 0; tick < maxTicks; tick++ {
		if navigator.DestinationReached() {
			return tick
		}
		navigator.Update(nil, 1.0)
	}
	return -1
}

func TestNavigatorStraightRoute(t *testing.T) {
	car := &fakeCar{pos: orb.Point{-50, 0}, heading: 0, maxSpeed: 2}
	navigator := newTestNavigator(t, lineNetwork(t), car)

	if navigator.Eta() != 0 {
		t.Errorf("ETA before planning must be 0, but got %f", navigator.Eta())
	}
	if !math.IsInf(navigator.DistanceLeft(), 1) {
		t.Errorf("Distance before planning must be infinite, but got %f", navigator.DistanceLeft())
	}

	if !navigator.PlanRoute(orb.Point{180, 0}) {
		t.Fatalf("Route must be planned")
	}
	if navigator.State() != STATE_DRIVING {
		t.Errorf("State must be '%s', but got '%s'", STATE_DRIVING, navigator.State())
	}
	if navigator.Heading() != DIRECTION_EAST {
		t.Errorf("Heading must be '%s', but got '%s'", DIRECTION_EAST, navigator.Heading())
	}
	// 100 (I1 -> I2) + 80 (I2 -> destination) + 50 (car -> I1), at 40 units per second
	if Round(navigator.Eta(), 0.0005) != 5.75 {
		t.Errorf("ETA must be 5.75, but got %f", navigator.Eta())
	}

	ticks := driveUntilArrival(navigator)
	if ticks < 0 {
		t.Fatalf("Destination must be reached in %d ticks, car is at %v in state '%s'", maxTicks, car.pos, navigator.State())
	}
	if math.Abs(car.pos.X()-180) > 3 {
		t.Errorf("Car must stop near destination, but it is at %v", car.pos)
	}
	if len(car.turns) != 0 {
		t.Errorf("Car must not turn on straight route, but got turns %v", car.turns)
	}
	if car.brakes != 0 {
		t.Errorf("Car must not brake before arrival, but got %d brakes", car.brakes)
	}
	if car.accelerations != ticks {
		t.Errorf("Car must accelerate on every tick before arrival: %d vs %d", car.accelerations, ticks)
	}

	navigator.Update(nil, 1.0)
	if car.brakes != 1 {
		t.Errorf("Car must brake after arrival, but got %d brakes", car.brakes)
	}
	if !navigator.DestinationReached() {
		t.Errorf("Arrived state must be terminal")
	}
}

func TestNavigatorTurnRoute(t *testing.T) {
	car := &fakeCar{pos: orb.Point{-50, 0}, heading: 0, maxSpeed: 2}
	navigator := newTestNavigator(t, lineNetwork(t), car)
	if !navigator.PlanRoute(orb.Point{100, 180}) {
		t.Fatalf("Route must be planned")
	}
	if ticks := driveUntilArrival(navigator); ticks < 0 {
		t.Fatalf("Destination must be reached in %d ticks, car is at %v in state '%s'", maxTicks, car.pos, navigator.State())
	}
	if navigator.Heading() != DIRECTION_NORTH {
		t.Errorf("Heading must be '%s', but got '%s'", DIRECTION_NORTH, navigator.Heading())
	}
	total := 0.0
	for _, turn := range car.turns {
		if math.Abs(turn) > DEFAULT_MAX_TURN_RATE {
			t.Errorf("Turn %f exceeds max turn rate", turn)
		}
		total += turn
	}
	if Round(total, 0.0005) != 90 {
		t.Errorf("Car must turn left by 90 degrees in total, but got %f", total)
	}
	if math.Abs(car.pos.Y()-180) > 3 {
		t.Errorf("Car must stop near destination, but it is at %v", car.pos)
	}
}

func TestNavigatorNotOnRoad(t *testing.T) {
	car := &fakeCar{pos: orb.Point{500, 500}, maxSpeed: 2}
	navigator := newTestNavigator(t, lineNetwork(t), car)
	if navigator.PlanRoute(orb.Point{300, 0}) {
		t.Fatalf("Route must not be planned for car which is not on a road")
	}
	if navigator.Route() != nil {
		t.Errorf("Route must stay empty")
	}
	if navigator.State() != STATE_IDLE {
		t.Errorf("State must be '%s', but got '%s'", STATE_IDLE, navigator.State())
	}
	navigator.Update(nil, 1.0)
	if car.accelerations != 0 || car.brakes != 0 || len(car.turns) != 0 {
		t.Errorf("Idle navigator must not touch the car")
	}
	if car.pos != (orb.Point{500, 500}) {
		t.Errorf("Idle navigator must not move the car")
	}
}

func TestNavigatorFailedReplan(t *testing.T) {
	net := lineNetwork(t)
	addIsland(t, net)
	car := &fakeCar{pos: orb.Point{-50, 0}, maxSpeed: 2}
	navigator := newTestNavigator(t, net, car)
	if !navigator.PlanRoute(orb.Point{300, 0}) {
		t.Fatalf("Route must be planned")
	}
	route := navigator.Route()
	state := navigator.State()
	eta := navigator.Eta()

	if navigator.PlanRoute(orb.Point{1100, 1000}) {
		t.Fatalf("Route to disconnected destination must not be planned")
	}
	if navigator.Route() != route {
		t.Errorf("Failed planning must keep previous route")
	}
	if navigator.State() != state {
		t.Errorf("Failed planning must keep navigation state '%s', but got '%s'", state, navigator.State())
	}
	if navigator.Eta() != eta {
		t.Errorf("Failed planning must keep ETA %f, but got %f", eta, navigator.Eta())
	}
}

func lightObservation(state interface{}, distance, bearing float64) Observation {
	return Observation{
		Classification:  CLASSIFICATION_TRAFFIC_LIGHT,
		TimeToCollision: 100,
		Distance:        distance,
		Bearing:         bearing,
		Information:     map[string]interface{}{LIGHT_STATE_KEY: state},
	}
}

func TestNavigatorGates(t *testing.T) {
	tests := []struct {
		name         string
		observations []Observation
		brake        bool
	}{
		{"empty", []Observation{}, false},
		{"red light ahead", []Observation{lightObservation(LIGHT_RED, 5, 90)}, true},
		{"amber light ahead", []Observation{lightObservation("amber", 5, 90)}, true},
		{"green light ahead", []Observation{lightObservation(LIGHT_GREEN, 5, 90)}, false},
		{"red light is far", []Observation{lightObservation(LIGHT_RED, 15, 90)}, false},
		{"red light behind", []Observation{lightObservation(LIGHT_RED, 5, 270)}, false},
		{"collision with green light", []Observation{
			lightObservation(LIGHT_GREEN, 5, 90),
			{Classification: CLASSIFICATION_CAR, TimeToCollision: 1.5, Distance: 20},
		}, true},
		{"car is far", []Observation{{Classification: CLASSIFICATION_CAR, TimeToCollision: 8, Distance: 40}}, false},
	}
	for _, test := range tests {
		car := &fakeCar{pos: orb.Point{-50, 0}, maxSpeed: 2}
		navigator := newTestNavigator(t, lineNetwork(t), car)
		if !navigator.PlanRoute(orb.Point{300, 0}) {
			t.Fatalf("Route must be planned")
		}
		navigator.Update(test.observations, 1.0)
		if test.brake && (car.brakes != 1 || car.accelerations != 0) {
			t.Errorf("Case '%s': car must brake", test.name)
		}
		if !test.brake && (car.brakes != 0 || car.accelerations != 1) {
			t.Errorf("Case '%s': car must accelerate", test.name)
		}
	}
}

// sliceSource hands out fixed intersections
type sliceSource []orb.Point

func (source *sliceSource) NextIntersectionPosition() (orb.Point, bool) {
	if len(*source) == 0 {
		return orb.Point{}, false
	}
	next := (*source)[0]
	*source = (*source)[1:]
	return next, true
}

func testNavigationConfig() *navigationConfig {
	return &navigationConfig{
		intersectionSize: DEFAULT_INTERSECTION_SIZE,
		hookTolerance:    DEFAULT_HOOK_TOLERANCE,
		arrivalTolerance: DEFAULT_ARRIVAL_TOLERANCE,
		logger:           SilentLogger,
	}
}

func TestNavigationTurn(t *testing.T) {
	cfg := testNavigationConfig()
	source := &sliceSource{{100, 100}}
	nav := navigation{
		State:               STATE_DRIVING,
		Current:             DIRECTION_EAST,
		Next:                DIRECTION_EAST,
		Destination:         orb.Point{100, 180},
		NextIntersection:    orb.Point{100, 0},
		HasNextIntersection: true,
	}

	nav = nav.advance(orb.Point{95, 0}, source, cfg)
	if nav.State != STATE_DRIVING {
		t.Fatalf("Intersection is not reached yet, but state is '%s'", nav.State)
	}

	nav = nav.advance(orb.Point{100, 0}, source, cfg)
	if nav.State != STATE_TURNING {
		t.Fatalf("State must be '%s', but got '%s'", STATE_TURNING, nav.State)
	}
	if nav.Next != DIRECTION_NORTH || nav.HookPending {
		t.Errorf("Car must turn north without hook, but got next '%s' and hook %t", nav.Next, nav.HookPending)
	}
	if nav.PrevIntersection != (orb.Point{100, 0}) || nav.NextIntersection != (orb.Point{100, 100}) {
		t.Errorf("Intersections must be shifted, but got previous %v and next %v", nav.PrevIntersection, nav.NextIntersection)
	}

	nav = nav.advance(orb.Point{101, 0}, source, cfg)
	if nav.State != STATE_DRIVING || nav.Current != DIRECTION_NORTH {
		t.Fatalf("Car must drive north, but got '%s' heading '%s'", nav.State, nav.Current)
	}

	// Last intersection: heading to destination is required, north always means hook
	nav = nav.advance(orb.Point{100, 100}, source, cfg)
	if nav.State != STATE_TURNING || !nav.HookPending || nav.HasNextIntersection {
		t.Fatalf("Car must wait for hook turn at the last intersection, but got %+v", nav)
	}
	nav = nav.advance(orb.Point{100, 105}, source, cfg)
	if nav.State != STATE_TURNING {
		t.Errorf("Car must hold heading until it is deep enough in intersection")
	}
	nav = nav.advance(orb.Point{100, 111}, source, cfg)
	if nav.State != STATE_DRIVING || nav.HookPending {
		t.Errorf("Hook turn must be committed, but got %+v", nav)
	}

	nav = nav.advance(orb.Point{100, 176}, source, cfg)
	if nav.State != STATE_DRIVING {
		t.Errorf("Destination is not reached yet, but state is '%s'", nav.State)
	}
	nav = nav.advance(orb.Point{100, 178}, source, cfg)
	if nav.State != STATE_ARRIVED {
		t.Errorf("State must be '%s', but got '%s'", STATE_ARRIVED, nav.State)
	}
	nav = nav.advance(orb.Point{100, 250}, source, cfg)
	if nav.State != STATE_ARRIVED {
		t.Errorf("Arrived state must be terminal")
	}
}

func TestNavigationHookTurnToDestination(t *testing.T) {
	cfg := testNavigationConfig()
	source := &sliceSource{}
	nav := navigation{
		State:               STATE_DRIVING,
		Current:             DIRECTION_EAST,
		Destination:         orb.Point{100, -80},
		NextIntersection:    orb.Point{100, 0},
		HasNextIntersection: true,
	}
	nav = nav.advance(orb.Point{100, 0}, source, cfg)
	if nav.Next != DIRECTION_SOUTH {
		t.Errorf("Next heading must be '%s', but got '%s'", DIRECTION_SOUTH, nav.Next)
	}
	if !nav.HookPending {
		t.Errorf("Turn from east to south must be hook turn")
	}
}

func TestHookTurnRequired(t *testing.T) {
	correct := map[Direction]map[Direction]bool{
		DIRECTION_EAST:  {DIRECTION_NORTH: false, DIRECTION_SOUTH: true, DIRECTION_EAST: false, DIRECTION_WEST: false},
		DIRECTION_WEST:  {DIRECTION_NORTH: true, DIRECTION_SOUTH: false, DIRECTION_EAST: false, DIRECTION_WEST: false},
		DIRECTION_SOUTH: {DIRECTION_NORTH: false, DIRECTION_SOUTH: false, DIRECTION_EAST: false, DIRECTION_WEST: true},
		DIRECTION_NORTH: {DIRECTION_NORTH: true, DIRECTION_SOUTH: true, DIRECTION_EAST: true, DIRECTION_WEST: true},
	}
	for current, nexts := range correct {
		for next, hook := range nexts {
			if hookTurnRequired(current, next) != hook {
				t.Errorf("Hook turn from '%s' to '%s' must be %t", current, next, hook)
			}
		}
	}
}

func TestDirectionFromAngle(t *testing.T) {
	correct := map[float64]Direction{
		0:    DIRECTION_EAST,
		44:   DIRECTION_EAST,
		45:   DIRECTION_NORTH,
		90:   DIRECTION_NORTH,
		180:  DIRECTION_WEST,
		270:  DIRECTION_SOUTH,
		-90:  DIRECTION_SOUTH,
		359:  DIRECTION_EAST,
		450:  DIRECTION_NORTH,
		-180: DIRECTION_WEST,
	}
	for angle, direction := range correct {
		if got := directionFromAngle(angle); got != direction {
			t.Errorf("Direction for %f must be '%s', but got '%s'", angle, direction, got)
		}
	}
}
