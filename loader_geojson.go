package carplan

import (
	"fmt"
	"io"
	"io/ioutil"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	GEOJSON_KIND_INTERSECTION = "intersection"
	GEOJSON_KIND_ROAD         = "road"
)

// ImportFromGeoJSON reads network from GeoJSON FeatureCollection.
/*
	Intersections are Point features with properties:
		kind = "intersection", id, width, length and optionally north / south / east / west (ids of roads)
	Roads are LineString features with properties:
		kind = "road", id and optionally width. First and last coordinates are road ends.
	If an intersection lists no roads they are attached by geometry
*/
func ImportFromGeoJSON(r io.Reader) (*Network, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read GeoJSON")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "Can't unmarshal feature collection")
	}

	net := NewNetwork()
	for i, feature := range fc.Features {
		if feature.Geometry == nil {
			return nil, fmt.Errorf("Feature #%d has no geometry", i)
		}
		kind, err := feature.PropertyString("kind")
		if err != nil {
			return nil, errors.Wrapf(err, "Feature #%d has no kind", i)
		}
		id, err := feature.PropertyFloat64("id")
		if err != nil {
			return nil, errors.Wrapf(err, "Feature #%d has no id", i)
		}
		switch kind {
		case GEOJSON_KIND_INTERSECTION:
			intersection, err := intersectionFromFeature(IntersectionID(id), feature)
			if err != nil {
				return nil, errors.Wrapf(err, "Feature #%d", i)
			}
			err = net.AddIntersection(intersection)
			if err != nil {
				return nil, err
			}
		case GEOJSON_KIND_ROAD:
			road, err := roadFromFeature(RoadID(id), feature)
			if err != nil {
				return nil, errors.Wrapf(err, "Feature #%d", i)
			}
			err = net.AddRoad(road)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("Feature #%d has unhandled kind '%s'", i, kind)
		}
	}
	err = net.AttachRoads()
	if err != nil {
		return nil, errors.Wrap(err, "Can't attach roads")
	}
	return net, nil
}

func intersectionFromFeature(id IntersectionID, feature *geojson.Feature) (*Intersection, error) {
	if !feature.Geometry.IsPoint() || len(feature.Geometry.Point) < 2 {
		return nil, fmt.Errorf("Intersection %d must be a Point", id)
	}
	width, err := feature.PropertyFloat64("width")
	if err != nil {
		return nil, errors.Wrapf(err, "Intersection %d has no width", id)
	}
	length, err := feature.PropertyFloat64("length")
	if err != nil {
		return nil, errors.Wrapf(err, "Intersection %d has no length", id)
	}
	intersection := &Intersection{
		ID:     id,
		Pos:    orb.Point{feature.Geometry.Point[0], feature.Geometry.Point[1]},
		Width:  width,
		Length: length,
		Roads:  make(map[Direction]RoadID),
	}
	for name, side := range directionByName {
		if _, ok := feature.Properties[name]; !ok {
			continue
		}
		roadID, err := feature.PropertyFloat64(name)
		if err != nil {
			return nil, errors.Wrapf(err, "Intersection %d has bad road on the %s side", id, name)
		}
		intersection.Roads[side] = RoadID(roadID)
	}
	return intersection, nil
}

func roadFromFeature(id RoadID, feature *geojson.Feature) (*Road, error) {
	line := feature.Geometry.LineString
	if !feature.Geometry.IsLineString() || len(line) < 2 {
		return nil, fmt.Errorf("Road %d must be a LineString with at least 2 points", id)
	}
	first, last := line[0], line[len(line)-1]
	if len(first) < 2 || len(last) < 2 {
		return nil, fmt.Errorf("Road %d has bad coordinates", id)
	}
	road := &Road{
		ID:       id,
		StartPos: orb.Point{first[0], first[1]},
		EndPos:   orb.Point{last[0], last[1]},
	}
	if _, ok := feature.Properties["width"]; ok {
		width, err := feature.PropertyFloat64("width")
		if err != nil {
			return nil, errors.Wrapf(err, "Road %d has bad width", id)
		}
		road.Width = width
	}
	return road, nil
}
