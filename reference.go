package carplan

import (
	"fmt"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// ReferenceDistance returns the shortest network distance between two intersections and intersections along it.
// Contraction hierarchies are prepared on the first call. It is a yardstick for planned routes only:
// route planning itself stays greedy
func (graph *Graph) ReferenceDistance(from, to IntersectionID) (float64, []IntersectionID, error) {
	source, ok := graph.nodesByID[from]
	if !ok {
		return -1, nil, fmt.Errorf("No such intersection %d", from)
	}
	target, ok := graph.nodesByID[to]
	if !ok {
		return -1, nil, fmt.Errorf("No such intersection %d", to)
	}
	if graph.contracted == nil {
		contracted, err := graph.prepareContraction()
		if err != nil {
			return -1, nil, errors.Wrap(err, "Can't prepare contraction hierarchies")
		}
		graph.contracted = contracted
	}
	cost, path := graph.contracted.ShortestPath(int64(source.index), int64(target.index))
	if cost < 0 || len(path) == 0 {
		return -1, nil, errors.Wrapf(ErrNoRoute, "Between intersections %d and %d", from, to)
	}
	ids := make([]IntersectionID, len(path))
	for i, idx := range path {
		ids[i] = graph.nodes[idx].IntersectionID
	}
	return cost, ids, nil
}

func (graph *Graph) prepareContraction() (*ch.Graph, error) {
	contracted := &ch.Graph{}
	for _, node := range graph.nodes {
		err := contracted.CreateVertex(int64(node.index))
		if err != nil {
			return nil, errors.Wrap(err, "Can not create vertex")
		}
	}
	for _, edge := range graph.edges {
		if !edge.HasEndNode() {
			continue
		}
		source, target := int64(edge.startNode.index), int64(edge.endNode.index)
		cost := orthogonalDistance(edge.startNode.pos, edge.endNode.pos)
		err := contracted.AddEdge(source, target, cost)
		if err != nil {
			return nil, errors.Wrap(err, "Can not wrap source and target vertices as edge")
		}
		err = contracted.AddEdge(target, source, cost)
		if err != nil {
			return nil, errors.Wrap(err, "Can not wrap target and source vertices as edge")
		}
	}
	contracted.PrepareContractionHierarchies()
	return contracted, nil
}

// RouteLength returns orthogonal length of the route through given intersections
func RouteLength(nodes []*Node) float64 {
	total := 0.0
	for i := 1; i < len(nodes); i++ {
		total += orthogonalDistance(nodes[i-1].pos, nodes[i].pos)
	}
	return total
}
