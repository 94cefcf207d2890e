package carplan

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ExportToCSV writes graph as two files: '<name>_nodes.csv' and '<name>_edges.csv'
func (graph *Graph) ExportToCSV(fname string) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameNodes := fnameParts[0] + "_nodes.csv"
	fnameEdges := fnameParts[0] + "_edges.csv"

	err := graph.exportNodesToCSV(fnameNodes)
	if err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}
	err = graph.exportEdgesToCSV(fnameEdges)
	if err != nil {
		return errors.Wrap(err, "Can't export edges")
	}
	return nil
}

func (graph *Graph) exportNodesToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"id", "intersection_id", "width", "length", "roads_num", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, node := range graph.nodes {
		err = writer.Write([]string{
			fmt.Sprintf("%d", node.index),
			fmt.Sprintf("%d", node.IntersectionID),
			fmt.Sprintf("%f", node.width),
			fmt.Sprintf("%f", node.length),
			fmt.Sprintf("%d", len(node.edges)),
			PrepareWKTPoint(node.pos),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	return nil
}

func (graph *Graph) exportEdgesToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"road_id", "source_intersection", "target_intersection", "dangling", "length", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, edge := range graph.edges {
		target := "-"
		if edge.HasEndNode() {
			target = fmt.Sprintf("%d", edge.endNode.IntersectionID)
		}
		line := orb.LineString{edge.startNode.pos, edge.EndPosition()}
		err = writer.Write([]string{
			fmt.Sprintf("%d", edge.RoadID),
			fmt.Sprintf("%d", edge.startNode.IntersectionID),
			target,
			fmt.Sprintf("%t", !edge.HasEndNode()),
			fmt.Sprintf("%f", getLength(line)),
			PrepareWKTLinestring(line),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	return nil
}
