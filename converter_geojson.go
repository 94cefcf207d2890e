package carplan

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(line orb.LineString) string {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].X(), line[i].Y()}
	}
	b, err := geojson.NewLineStringGeometry(pts2d).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt orb.Point) string {
	b, err := geojson.NewPointGeometry([]float64{pt.X(), pt.Y()}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// RouteFeatureCollection returns route (as LineString) and its intersections (as Points) in single collection
func RouteFeatureCollection(route *Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	line := route.LineString()
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].X(), line[i].Y()}
	}
	routeFeature := geojson.NewLineStringFeature(pts2d)
	routeFeature.SetProperty("kind", "route")
	routeFeature.SetProperty("estimated_distance", route.EstimatedDistance())
	fc.AddFeature(routeFeature)
	for _, node := range route.Remaining() {
		pt := node.Position()
		nodeFeature := geojson.NewPointFeature([]float64{pt.X(), pt.Y()})
		nodeFeature.SetProperty("kind", GEOJSON_KIND_INTERSECTION)
		nodeFeature.SetProperty("id", int64(node.IntersectionID))
		fc.AddFeature(nodeFeature)
	}
	destination := route.Destination()
	destinationFeature := geojson.NewPointFeature([]float64{destination.X(), destination.Y()})
	destinationFeature.SetProperty("kind", "destination")
	fc.AddFeature(destinationFeature)
	return fc
}

// NetworkFeatureCollection returns network in the same layout ImportFromGeoJSON reads
func NetworkFeatureCollection(net *Network) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, road := range net.Roads() {
		roadFeature := geojson.NewLineStringFeature([][]float64{
			{road.StartPos.X(), road.StartPos.Y()},
			{road.EndPos.X(), road.EndPos.Y()},
		})
		roadFeature.SetProperty("kind", GEOJSON_KIND_ROAD)
		roadFeature.SetProperty("id", int64(road.ID))
		if road.Width > 0 {
			roadFeature.SetProperty("width", road.Width)
		}
		fc.AddFeature(roadFeature)
	}
	for _, intersection := range net.Intersections() {
		intersectionFeature := geojson.NewPointFeature([]float64{intersection.Pos.X(), intersection.Pos.Y()})
		intersectionFeature.SetProperty("kind", GEOJSON_KIND_INTERSECTION)
		intersectionFeature.SetProperty("id", int64(intersection.ID))
		intersectionFeature.SetProperty("width", intersection.Width)
		intersectionFeature.SetProperty("length", intersection.Length)
		for _, side := range cardinalDirections {
			if roadID, ok := intersection.Roads[side]; ok {
				intersectionFeature.SetProperty(side.String(), int64(roadID))
			}
		}
		fc.AddFeature(intersectionFeature)
	}
	return fc
}
