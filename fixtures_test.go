package carplan

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

/*
	Test network (intersections are 15x15 extents around their centers):

	                 R45 (dangling to (100, 200))
	                  |
	                 I4 (100, 100)
	                  |
	                 R24
	                  |
	R10 --- I1 --- R12 --- I2 --- R23 --- I3 --- R34 (dangling to (300, 0))
	(-100,0) (0,0)        (100,0)        (200,0)
*/
func lineNetwork(t *testing.T) *Network {
	net := NewNetwork()
	roads := []*Road{
		{ID: 10, StartPos: orb.Point{-100, 0}, EndPos: orb.Point{0, 0}},
		{ID: 12, StartPos: orb.Point{0, 0}, EndPos: orb.Point{100, 0}},
		{ID: 23, StartPos: orb.Point{100, 0}, EndPos: orb.Point{200, 0}},
		{ID: 34, StartPos: orb.Point{200, 0}, EndPos: orb.Point{300, 0}},
		{ID: 24, StartPos: orb.Point{100, 0}, EndPos: orb.Point{100, 100}},
		{ID: 45, StartPos: orb.Point{100, 100}, EndPos: orb.Point{100, 200}},
	}
	for _, road := range roads {
		if err := net.AddRoad(road); err != nil {
			t.Fatal(err)
		}
	}
	intersections := []*Intersection{
		{ID: 1, Pos: orb.Point{0, 0}, Width: 15, Length: 15, Roads: map[Direction]RoadID{DIRECTION_WEST: 10, DIRECTION_EAST: 12}},
		{ID: 2, Pos: orb.Point{100, 0}, Width: 15, Length: 15, Roads: map[Direction]RoadID{DIRECTION_WEST: 12, DIRECTION_EAST: 23, DIRECTION_NORTH: 24}},
		{ID: 3, Pos: orb.Point{200, 0}, Width: 15, Length: 15, Roads: map[Direction]RoadID{DIRECTION_WEST: 23, DIRECTION_EAST: 34}},
		{ID: 4, Pos: orb.Point{100, 100}, Width: 15, Length: 15, Roads: map[Direction]RoadID{DIRECTION_SOUTH: 24, DIRECTION_NORTH: 45}},
	}
	for _, intersection := range intersections {
		if err := net.AddIntersection(intersection); err != nil {
			t.Fatal(err)
		}
	}
	return net
}

// addIsland adds component which is not connected to the rest of network
func addIsland(t *testing.T, net *Network) {
	if err := net.AddRoad(&Road{ID: 50, StartPos: orb.Point{1000, 1000}, EndPos: orb.Point{1100, 1000}}); err != nil {
		t.Fatal(err)
	}
	island := &Intersection{ID: 5, Pos: orb.Point{1000, 1000}, Width: 15, Length: 15, Roads: map[Direction]RoadID{DIRECTION_EAST: 50}}
	if err := net.AddIntersection(island); err != nil {
		t.Fatal(err)
	}
}

func mustGraph(t *testing.T, net *Network) *Graph {
	graph, err := NewGraph(net, WithGraphLogger(SilentLogger))
	if err != nil {
		t.Fatalf("Graph must be built, but got error: %s", err)
	}
	return graph
}

func intersectionIDs(nodes []*Node) []IntersectionID {
	ids := make([]IntersectionID, len(nodes))
	for i, node := range nodes {
		ids[i] = node.IntersectionID
	}
	return ids
}

func equalIDs(a, b []IntersectionID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fakeCar is a simple kinematic host: speed changes by one unit per accelerate/brake call
type fakeCar struct {
	pos      orb.Point
	heading  float64
	speed    float64
	maxSpeed float64

	accelerations int
	brakes        int
	turns         []float64
}

func (car *fakeCar) Position() orb.Point {
	return car.pos
}

func (car *fakeCar) HeadingAngle() float64 {
	return car.heading
}

func (car *fakeCar) Accelerate() {
	car.accelerations++
	car.speed = math.Min(car.speed+1, car.maxSpeed)
}

func (car *fakeCar) Brake() {
	car.brakes++
	car.speed = math.Max(car.speed-1, 0)
}

func (car *fakeCar) Turn(delta float64) {
	car.turns = append(car.turns, delta)
	car.heading = math.Mod(car.heading+delta+360, 360)
}

func (car *fakeCar) Update(delta float64) {
	rad := car.heading * math.Pi / 180.0
	car.pos = orb.Point{
		car.pos.X() + math.Cos(rad)*car.speed*delta,
		car.pos.Y() + math.Sin(rad)*car.speed*delta,
	}
}

// shiftedNetwork is a straight line far from the origin:
// R1 (900,0)-(1000,0), I1 (1000,0), R2, I2 (1100,0), R3 (1100,0)-(1200,0)
func shiftedNetwork(t *testing.T) *Network {
	net := NewNetwork()
	roads := []*Road{
		{ID: 1, StartPos: orb.Point{900, 0}, EndPos: orb.Point{1000, 0}},
		{ID: 2, StartPos: orb.Point{1000, 0}, EndPos: orb.Point{1100, 0}},
		{ID: 3, StartPos: orb.Point{1100, 0}, EndPos: orb.Point{1200, 0}},
	}
	for _, road := range roads {
		if err := net.AddRoad(road); err != nil {
			t.Fatal(err)
		}
	}
	intersections := []*Intersection{
		{ID: 1, Pos: orb.Point{1000, 0}, Width: 15, Length: 15, Roads: map[Direction]RoadID{DIRECTION_WEST: 1, DIRECTION_EAST: 2}},
		{ID: 2, Pos: orb.Point{1100, 0}, Width: 15, Length: 15, Roads: map[Direction]RoadID{DIRECTION_WEST: 2, DIRECTION_EAST: 3}},
	}
	for _, intersection := range intersections {
		if err := net.AddIntersection(intersection); err != nil {
			t.Fatal(err)
		}
	}
	return net
}
