package carplan

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// visitedSet is scoped to a single query so no traversal state outlives it
type visitedSet []bool

func (graph *Graph) newVisitedSet() visitedSet {
	return make(visitedSet, len(graph.nodes))
}

func (vs visitedSet) visited(node *Node) bool {
	return vs[node.index]
}

func (vs visitedSet) visit(node *Node) {
	vs[node.index] = true
}

// IsValidRoute checks whether destination can be reached from the road
func (graph *Graph) IsValidRoute(road RoadID, destination orb.Point) (bool, error) {
	edge, ok := graph.edgesByID[road]
	if !ok {
		return false, errors.Wrapf(ErrUnknownRoad, "Road %d", road)
	}
	return graph.depthFirstSearch(edge, destination, graph.newVisitedSet()), nil
}

// dfsFrame is a road being explored: both of its ends are expanded one after another
type dfsFrame struct {
	edge    *Edge
	ends    [2]*Node
	endIdx  int
	current *Node
	edgeIdx int
}

func newDFSFrame(edge *Edge) *dfsFrame {
	return &dfsFrame{
		edge: edge,
		ends: [2]*Node{edge.startNode, edge.endNode},
	}
}

// nextEnd moves frame to the next unvisited end of its road. Returns false when no ends left
func (frame *dfsFrame) nextEnd(visited visitedSet) bool {
	for frame.endIdx < len(frame.ends) {
		node := frame.ends[frame.endIdx]
		frame.endIdx++
		if node == nil || visited.visited(node) {
			continue
		}
		visited.visit(node)
		frame.current = node
		frame.edgeIdx = 0
		return true
	}
	frame.current = nil
	return false
}

// depthFirstSearch walks roads starting from the given one until some road passes near destination.
// Explicit stack mirrors recursion: start node first, then end node, incident roads in discovery order
func (graph *Graph) depthFirstSearch(start *Edge, destination orb.Point, visited visitedSet) bool {
	if start.destinationOnRoad(destination, graph.destinationRadius) {
		return true
	}
	stack := []*dfsFrame{newDFSFrame(start)}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		if frame.current == nil || frame.edgeIdx >= len(frame.current.edges) {
			if !frame.nextEnd(visited) {
				stack = stack[:len(stack)-1]
			}
			continue
		}
		next := frame.current.edges[frame.edgeIdx]
		frame.edgeIdx++
		if next == frame.edge {
			continue
		}
		if next.destinationOnRoad(destination, graph.destinationRadius) {
			return true
		}
		stack = append(stack, newDFSFrame(next))
	}
	return false
}

// PlanRoute returns intersections to drive through to reach destination from the road.
// Search is seeded from the end of the road closer to destination.
// ErrNoRoute is returned when destination is not reachable at all, ErrSearchDeadEnd when
// greedy search has committed to a dead end
func (graph *Graph) PlanRoute(road RoadID, destination orb.Point) ([]*Node, error) {
	edge, ok := graph.edgesByID[road]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRoad, "Road %d", road)
	}
	if !graph.depthFirstSearch(edge, destination, graph.newVisitedSet()) {
		return nil, errors.Wrapf(ErrNoRoute, "From road %d to (%f, %f)", road, destination.X(), destination.Y())
	}
	startingNode := edge.startNode
	if edge.HasEndNode() && edge.startNode.straightLineDistance(destination) > edge.endNode.straightLineDistance(destination) {
		startingNode = edge.endNode
	}
	route := graph.pathFindingSearch(startingNode, destination, graph.newVisitedSet())
	if route == nil {
		return nil, errors.Wrapf(ErrSearchDeadEnd, "From road %d to (%f, %f)", road, destination.X(), destination.Y())
	}
	return route, nil
}

// searchFrame is an intersection on the current search path with its roads ordered by promise
type searchFrame struct {
	node  *Node
	edges []*Edge
	idx   int
}

// reachesDestination checks if any road of the node passes near destination
func (graph *Graph) reachesDestination(node *Node, destination orb.Point) bool {
	for _, edge := range node.edges {
		if edge.destinationOnRoad(destination, graph.destinationRadius) {
			return true
		}
	}
	return false
}

// pathFindingSearch is greedy depth-first search: roads leading to intersections closer to destination are tried first,
// the first branch to succeed wins and siblings are never compared.
// Seed node is not marked as visited
func (graph *Graph) pathFindingSearch(start *Node, destination orb.Point, visited visitedSet) []*Node {
	stack := make([]*searchFrame, 0)
	push := func(node *Node) bool {
		stack = append(stack, &searchFrame{node: node})
		if graph.reachesDestination(node, destination) {
			return true
		}
		stack[len(stack)-1].edges = graph.sortEdgesByClosestIntersection(node, destination)
		return false
	}

	if push(start) {
		return []*Node{start}
	}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		if frame.idx >= len(frame.edges) {
			stack = stack[:len(stack)-1]
			continue
		}
		edge := frame.edges[frame.idx]
		frame.idx++
		if !edge.HasEndNode() {
			continue
		}
		next := graph.farEnd(edge, frame.node)
		if next == nil || visited.visited(next) {
			continue
		}
		visited.visit(next)
		if push(next) {
			route := make([]*Node, len(stack))
			for i, f := range stack {
				route[i] = f.node
			}
			return route
		}
	}
	return nil
}

// sortEdgesByClosestIntersection orders incident roads by distance from their far intersection to destination.
// Dangling roads go last, ties keep discovery order
func (graph *Graph) sortEdgesByClosestIntersection(node *Node, destination orb.Point) []*Edge {
	sorted := make([]*Edge, len(node.edges))
	copy(sorted, node.edges)
	far := make(map[*Edge]*Node, len(sorted))
	for _, edge := range sorted {
		far[edge] = graph.farEnd(edge, node)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := far[sorted[i]], far[sorted[j]]
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.straightLineDistance(destination) < b.straightLineDistance(destination)
	})
	return sorted
}
