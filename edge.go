package carplan

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Edge is an edge of the graph: it represents single road.
// Road either connects two intersections (endNode != nil) or dangles into open space (endPosition)
type Edge struct {
	startNode   *Node
	endNode     *Node
	endPosition orb.Point

	RoadID RoadID
}

func (edge *Edge) StartNode() *Node {
	return edge.startNode
}

// EndNode returns nil for dangling road
func (edge *Edge) EndNode() *Node {
	return edge.endNode
}

func (edge *Edge) HasEndNode() bool {
	return edge.endNode != nil
}

// EndPosition returns position of the far end of the road: either end node position or dangling end
func (edge *Edge) EndPosition() orb.Point {
	if edge.endNode != nil {
		return edge.endNode.pos
	}
	return edge.endPosition
}

// otherEnd returns node at the opposite end of the road to the given one.
// Second value is false when the node does not belong to the edge
func (edge *Edge) otherEnd(node *Node) (*Node, bool) {
	switch node {
	case edge.startNode:
		return edge.endNode, true
	case edge.endNode:
		return edge.startNode, true
	default:
		return nil, false
	}
}

// connectedToIntersection checks whether the position lies within extent of the start node
func (edge *Edge) connectedToIntersection(pos orb.Point) bool {
	return withinExtent(edge.startNode.pos, pos, edge.startNode.width, edge.startNode.length)
}

// resolveEndPosition picks the raw road end which is not attached to the start node as dangling end
func (edge *Edge) resolveEndPosition(road *Road) error {
	if edge.connectedToIntersection(road.EndPos) {
		edge.endPosition = road.StartPos
		return nil
	}
	if edge.connectedToIntersection(road.StartPos) {
		edge.endPosition = road.EndPos
		return nil
	}
	start := edge.startNode
	return errors.Wrapf(
		ErrInvalidNetwork,
		"Road %d with start position (%f, %f) and end position (%f, %f) does not connect with intersection %d at (%f, %f) width %f length %f",
		road.ID, road.StartPos.X(), road.StartPos.Y(), road.EndPos.X(), road.EndPos.Y(),
		start.IntersectionID, start.pos.X(), start.pos.Y(), start.width, start.length,
	)
}

// closestPointToDestination returns distance from the destination to the closest point on the road span
func (edge *Edge) closestPointToDestination(destination orb.Point) float64 {
	closest := clampToBound(destination, spanBound(edge.startNode.pos, edge.EndPosition()))
	return findDistance(closest, destination)
}

// destinationOnRoad checks whether some point of the road lies within radius of the destination
func (edge *Edge) destinationOnRoad(destination orb.Point, radius float64) bool {
	return edge.closestPointToDestination(destination) < radius
}
