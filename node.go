package carplan

import (
	"github.com/paulmach/orb"
)

// Node is a vertex of the graph: it represents single intersection
type Node struct {
	edges  []*Edge
	pos    orb.Point
	width  float64
	length float64

	// index is position of the node in Graph.nodes. Searches key their visited sets by it
	index          int
	IntersectionID IntersectionID
}

func nodeFromIntersection(index int, intersection *Intersection) *Node {
	return &Node{
		edges:          make([]*Edge, 0, len(intersection.Roads)),
		pos:            intersection.Pos,
		width:          intersection.Width,
		length:         intersection.Length,
		index:          index,
		IntersectionID: intersection.ID,
	}
}

func (node *Node) Position() orb.Point {
	return node.pos
}

func (node *Node) Width() float64 {
	return node.width
}

func (node *Node) Length() float64 {
	return node.length
}

// Edges returns incident edges in discovery order
func (node *Node) Edges() []*Edge {
	return node.edges
}

func (node *Node) addEdge(edge *Edge) {
	node.edges = append(node.edges, edge)
}

// straightLineDistance returns distance from the intersection to the destination
func (node *Node) straightLineDistance(destination orb.Point) float64 {
	return findDistance(node.pos, destination)
}
