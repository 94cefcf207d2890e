package carplan

import (
	"github.com/LdDl/ch"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	// DEFAULT_DESTINATION_RADIUS is allowed distance between road and destination to consider destination reached
	DEFAULT_DESTINATION_RADIUS = 50.0
)

// Graph is a road structure built of nodes (intersections) and edges (roads).
// Topology never changes after NewGraph returns
type Graph struct {
	nodes             []*Node
	nodesByID         map[IntersectionID]*Node
	edges             []*Edge
	edgesByID         map[RoadID]*Edge
	destinationRadius float64
	logger            Logger

	// contracted is prepared lazily by ReferenceDistance
	contracted *ch.Graph
}

func WithDestinationRadius(radius float64) func(*Graph) {
	return func(graph *Graph) {
		graph.destinationRadius = radius
	}
}

func WithGraphLogger(logger Logger) func(*Graph) {
	return func(graph *Graph) {
		graph.logger = logger
	}
}

// NewGraph builds graph from the network description.
// Every road met from the second intersection gets that intersection as its end node.
// Roads which still have no end node after all intersections are processed become dangling;
// failing to resolve dangling end is a geometry inconsistency and is returned as ErrInvalidNetwork
func NewGraph(net *Network, options ...func(*Graph)) (*Graph, error) {
	graph := &Graph{
		nodes:             make([]*Node, 0, len(net.Intersections())),
		nodesByID:         make(map[IntersectionID]*Node, len(net.Intersections())),
		edges:             make([]*Edge, 0, len(net.Roads())),
		edgesByID:         make(map[RoadID]*Edge, len(net.Roads())),
		destinationRadius: DEFAULT_DESTINATION_RADIUS,
		logger:            defaultLogger(),
	}
	for _, option := range options {
		option(graph)
	}

	for _, intersection := range net.Intersections() {
		node := nodeFromIntersection(len(graph.nodes), intersection)
		graph.nodes = append(graph.nodes, node)
		graph.nodesByID[intersection.ID] = node
		for _, side := range cardinalDirections {
			roadID, ok := intersection.Roads[side]
			if !ok {
				continue
			}
			if _, ok := net.Road(roadID); !ok {
				return nil, errors.Wrapf(ErrInvalidNetwork, "Intersection %d refers to unknown road %d", intersection.ID, roadID)
			}
			edge, ok := graph.edgesByID[roadID]
			if ok {
				edge.endNode = node
			} else {
				edge = &Edge{
					startNode: node,
					RoadID:    roadID,
				}
				graph.edges = append(graph.edges, edge)
				graph.edgesByID[roadID] = edge
			}
			node.addEdge(edge)
		}
	}

	for _, edge := range graph.edges {
		if edge.HasEndNode() {
			continue
		}
		road, _ := net.Road(edge.RoadID)
		err := edge.resolveEndPosition(road)
		if err != nil {
			return nil, errors.Wrap(err, "Can't resolve dangling road")
		}
	}
	return graph, nil
}

// Nodes returns nodes in order intersections were enumerated
func (graph *Graph) Nodes() []*Node {
	return graph.nodes
}

// Edges returns edges in order roads were discovered
func (graph *Graph) Edges() []*Edge {
	return graph.edges
}

func (graph *Graph) Node(id IntersectionID) (*Node, bool) {
	node, ok := graph.nodesByID[id]
	return node, ok
}

func (graph *Graph) Edge(id RoadID) (*Edge, bool) {
	edge, ok := graph.edgesByID[id]
	return edge, ok
}

// DestinationOnRoad checks whether the road passes within destination radius
func (graph *Graph) DestinationOnRoad(id RoadID, destination orb.Point) (bool, error) {
	edge, ok := graph.edgesByID[id]
	if !ok {
		return false, errors.Wrapf(ErrUnknownRoad, "Road %d", id)
	}
	return edge.destinationOnRoad(destination, graph.destinationRadius), nil
}

// farEnd returns node at the opposite end of the road to the given node logging unknown nodes
func (graph *Graph) farEnd(edge *Edge, node *Node) *Node {
	far, ok := edge.otherEnd(node)
	if !ok {
		graph.logger.Printf("[WARNING]: Start node %d is not recognised by road %d", node.IntersectionID, edge.RoadID)
		return nil
	}
	return far
}
