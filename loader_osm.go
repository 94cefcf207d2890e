package carplan

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// OSMScanner is the subset of osmxml.Scanner used by the loader
type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// ImportFromOSM reads network from OSM XML authoring file. Coordinates are planar: Lon is X, Lat is Y.
/*
	Nodes tagged with cfg.JunctionTag become intersections, their `width` and `length` tags are mandatory.
	Ways which cfg.EntityName tag passes cfg.CheckTag become straight roads between their first and last nodes,
	optional `width` tag sets road width. Roads are attached to intersections by geometry.
	Nil cfg means DefaultOsmConfiguration()
*/
func ImportFromOSM(ctx context.Context, r io.Reader, cfg *OsmConfiguration, verbose bool) (*Network, error) {
	if cfg == nil {
		cfg = DefaultOsmConfiguration()
	}
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()
	return importFromScanner(scanner, cfg, verbose)
}

func importFromScanner(scanner OSMScanner, cfg *OsmConfiguration, verbose bool) (*Network, error) {
	nodes := make(map[osm.NodeID]*osm.Node)
	junctions := make([]*osm.Node, 0)
	ways := make([]*osm.Way, 0)
	for scanner.Scan() {
		switch obj := scanner.Object().(type) {
		case *osm.Node:
			nodes[obj.ID] = obj
			if obj.Tags.Find(cfg.JunctionTag) != "" {
				junctions = append(junctions, obj)
			}
		case *osm.Way:
			if !cfg.CheckTag(obj.Tags.Find(cfg.EntityName)) {
				continue
			}
			ways = append(ways, obj)
		}
	}
	err := scanner.Err()
	if err != nil {
		return nil, errors.Wrap(err, "Can't scan OSM data")
	}

	net := NewNetwork()
	for _, node := range junctions {
		width, err := parseTagFloat(node.Tags, "width")
		if err != nil {
			return nil, errors.Wrapf(err, "Junction %d", node.ID)
		}
		length, err := parseTagFloat(node.Tags, "length")
		if err != nil {
			return nil, errors.Wrapf(err, "Junction %d", node.ID)
		}
		err = net.AddIntersection(&Intersection{
			ID:     IntersectionID(node.ID),
			Pos:    orb.Point{node.Lon, node.Lat},
			Width:  width,
			Length: length,
		})
		if err != nil {
			return nil, err
		}
	}
	for _, way := range ways {
		if len(way.Nodes) < 2 {
			if verbose {
				fmt.Printf("[WARNING]: Way with %d nodes met. Way ID: '%d'\n", len(way.Nodes), way.ID)
			}
			continue
		}
		first, ok := nodes[way.Nodes[0].ID]
		if !ok {
			return nil, fmt.Errorf("No such node %d", way.Nodes[0].ID)
		}
		last, ok := nodes[way.Nodes[len(way.Nodes)-1].ID]
		if !ok {
			return nil, fmt.Errorf("No such node %d", way.Nodes[len(way.Nodes)-1].ID)
		}
		road := &Road{
			ID:       RoadID(way.ID),
			StartPos: orb.Point{first.Lon, first.Lat},
			EndPos:   orb.Point{last.Lon, last.Lat},
		}
		if way.Tags.Find("width") != "" {
			road.Width, err = parseTagFloat(way.Tags, "width")
			if err != nil {
				return nil, errors.Wrapf(err, "Way %d", way.ID)
			}
		}
		err = net.AddRoad(road)
		if err != nil {
			return nil, err
		}
	}
	if verbose {
		fmt.Printf("[INFO]: %d intersections and %d roads have been read\n", len(net.Intersections()), len(net.Roads()))
	}
	err = net.AttachRoads()
	if err != nil {
		return nil, errors.Wrap(err, "Can't attach roads")
	}
	return net, nil
}

func parseTagFloat(tags osm.Tags, key string) (float64, error) {
	text := tags.Find(key)
	if text == "" {
		return 0, fmt.Errorf("Tag '%s' is missing", key)
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "Can't parse tag '%s'", key)
	}
	return value, nil
}
