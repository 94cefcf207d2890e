package carplan

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

/* Network description stuff (consumed by the graph builder) */

type IntersectionID int64

type RoadID int64

// Intersection is a place where roads meet. Roads are keyed by the side of intersection they leave from
type Intersection struct {
	ID     IntersectionID
	Pos    orb.Point
	Width  float64
	Length float64
	Roads  map[Direction]RoadID
}

// Road is a straight (axis-aligned) road between two raw positions
type Road struct {
	ID       RoadID
	StartPos orb.Point
	EndPos   orb.Point
	Width    float64
}

// Bound returns box covering road surface
func (road *Road) Bound() orb.Bound {
	return spanBound(road.StartPos, road.EndPos).Pad(road.Width / 2.0)
}

// RoadLocator answers which road contains given point
type RoadLocator interface {
	RoadAtPoint(pt orb.Point) (RoadID, bool)
}

// Network is a set of intersections and roads
type Network struct {
	intersections     []*Intersection
	intersectionsByID map[IntersectionID]*Intersection
	roads             []*Road
	roadsByID         map[RoadID]*Road
}

func NewNetwork() *Network {
	return &Network{
		intersections:     make([]*Intersection, 0),
		intersectionsByID: make(map[IntersectionID]*Intersection),
		roads:             make([]*Road, 0),
		roadsByID:         make(map[RoadID]*Road),
	}
}

// AddIntersection registers intersection. Intersections are enumerated in order they were added
func (net *Network) AddIntersection(intersection *Intersection) error {
	if _, ok := net.intersectionsByID[intersection.ID]; ok {
		return errors.Wrapf(ErrInvalidNetwork, "Intersection %d has been added already", intersection.ID)
	}
	if intersection.Roads == nil {
		intersection.Roads = make(map[Direction]RoadID)
	}
	net.intersections = append(net.intersections, intersection)
	net.intersectionsByID[intersection.ID] = intersection
	return nil
}

// AddRoad registers road
func (net *Network) AddRoad(road *Road) error {
	if _, ok := net.roadsByID[road.ID]; ok {
		return errors.Wrapf(ErrInvalidNetwork, "Road %d has been added already", road.ID)
	}
	net.roads = append(net.roads, road)
	net.roadsByID[road.ID] = road
	return nil
}

// Intersections returns intersections in order they were added
func (net *Network) Intersections() []*Intersection {
	return net.intersections
}

// Roads returns roads in order they were added
func (net *Network) Roads() []*Road {
	return net.roads
}

func (net *Network) Road(id RoadID) (*Road, bool) {
	road, ok := net.roadsByID[id]
	return road, ok
}

func (net *Network) Intersection(id IntersectionID) (*Intersection, bool) {
	intersection, ok := net.intersectionsByID[id]
	return intersection, ok
}

// AttachRoads fills Roads of every intersection which has none yet.
// A road is attached when one of its ends lies within the intersection extent; the side is taken from
// the other end of the road
func (net *Network) AttachRoads() error {
	for _, intersection := range net.intersections {
		if len(intersection.Roads) > 0 {
			continue
		}
		for _, road := range net.roads {
			var farEnd orb.Point
			if withinExtent(intersection.Pos, road.StartPos, intersection.Width, intersection.Length) {
				farEnd = road.EndPos
			} else if withinExtent(intersection.Pos, road.EndPos, intersection.Width, intersection.Length) {
				farEnd = road.StartPos
			} else {
				continue
			}
			side := dominantDirection(intersection.Pos, farEnd)
			if existing, ok := intersection.Roads[side]; ok {
				return errors.Wrapf(ErrInvalidNetwork, "Intersection %d has roads %d and %d on the %s side", intersection.ID, existing, road.ID, side)
			}
			intersection.Roads[side] = road.ID
		}
	}
	return nil
}

// RoadAtPoint returns first road (in order they were added) which surface contains the point
func (net *Network) RoadAtPoint(pt orb.Point) (RoadID, bool) {
	for _, road := range net.roads {
		if road.Bound().Contains(pt) {
			return road.ID, true
		}
	}
	return 0, false
}
