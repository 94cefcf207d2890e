package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/LdDl/carplan"
	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

var (
	tagStr          = flag.String("tags", "", "Set of highway tags which become roads for OSM networks (separated by commas). Empty means any")
	networkFileName = flag.String("network", "", "Filename of network description: *.geojson or *.osm (XML). Default is taken from CARPLAN_NETWORK")
	fromStr         = flag.String("from", "", "Start position of the car: 'x,y'")
	toStr           = flag.String("to", "", "Destination: 'x,y'")
	dt              = flag.Float64("dt", 0.1, "Simulation tick, seconds")
	maxTicks        = flag.Int("ticks", 10000, "Max number of simulation ticks")
	maxSpeed        = flag.Float64("speed", 10.0, "Max speed of simulated car, units per second")
	out             = flag.String("out", "trajectory.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file with car trajectory")
	geomFormat      = flag.String("geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson")
	doCompare       = flag.Bool("compare", false, "Compare planned route with the shortest one (contraction hierarchies)?")
	exportGraph     = flag.String("export", "", "If set graph is exported to '<name>_nodes.csv' and '<name>_edges.csv'")
	serveAddr       = flag.String("serve", "", "If set HTTP API is served on given address instead of simulation. Default is taken from CARPLAN_ADDR")
	verbose         = flag.Bool("verbose", false, "Print every simulation tick?")
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default environment variables")
	}

	flag.Parse()

	if *networkFileName == "" {
		*networkFileName = os.Getenv("CARPLAN_NETWORK")
	}
	if *serveAddr == "" {
		*serveAddr = os.Getenv("CARPLAN_ADDR")
	}

	net, err := loadNetwork(*networkFileName)
	if err != nil {
		fmt.Println(err)
		return
	}
	graph, err := carplan.NewGraph(net)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Graph has been built: %d nodes and %d edges\n", len(graph.Nodes()), len(graph.Edges()))

	if *exportGraph != "" {
		err = graph.ExportToCSV(*exportGraph)
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	if *serveAddr != "" {
		err = serve(*serveAddr, net, graph)
		if err != nil {
			fmt.Println(err)
		}
		return
	}

	from, err := parsePoint(*fromStr)
	if err != nil {
		fmt.Println(errors.Wrap(err, "Bad start position"))
		return
	}
	to, err := parsePoint(*toStr)
	if err != nil {
		fmt.Println(errors.Wrap(err, "Bad destination"))
		return
	}

	err = simulate(net, graph, from, to)
	if err != nil {
		fmt.Println(err)
		return
	}
}

func loadNetwork(fname string) (*carplan.Network, error) {
	if fname == "" {
		return nil, fmt.Errorf("Network file is not provided")
	}
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open network file")
	}
	defer file.Close()
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".geojson", ".json":
		return carplan.ImportFromGeoJSON(file)
	case ".osm", ".xml":
		cfg := carplan.DefaultOsmConfiguration()
		if *tagStr != "" {
			cfg.Tags = strings.Split(*tagStr, ",")
		}
		return carplan.ImportFromOSM(context.Background(), file, cfg, *verbose)
	default:
		return nil, fmt.Errorf("Unhandled network file extension '%s'", filepath.Ext(fname))
	}
}

func parsePoint(str string) (orb.Point, error) {
	parts := strings.Split(str, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("Expected 'x,y', but got '%s'", str)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "Can't parse X")
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "Can't parse Y")
	}
	return orb.Point{x, y}, nil
}

func simulate(net *carplan.Network, graph *carplan.Graph, from, to orb.Point) error {
	car := newSimCar(from, *maxSpeed)
	// Initial heading follows the road car has been placed on
	if roadID, ok := net.RoadAtPoint(from); ok {
		road, _ := net.Road(roadID)
		car.heading = math.Atan2(road.EndPos.Y()-road.StartPos.Y(), road.EndPos.X()-road.StartPos.X()) * 180.0 / math.Pi
	}
	navigator := carplan.NewNavigator(graph, net, car)
	if !navigator.PlanRoute(to) {
		return fmt.Errorf("Route from (%f, %f) to (%f, %f) has not been found", from.X(), from.Y(), to.X(), to.Y())
	}
	planned := navigator.Route().Remaining()
	fmt.Printf("Route has been planned through %d intersections, ETA is %.2f s\n", len(planned), navigator.Eta())

	if *doCompare && len(planned) > 1 {
		first, last := planned[0].IntersectionID, planned[len(planned)-1].IntersectionID
		cost, path, err := graph.ReferenceDistance(first, last)
		if err != nil {
			return errors.Wrap(err, "Can't evaluate reference distance")
		}
		fmt.Printf("Planned route length is %f, shortest route length is %f through %d intersections\n", carplan.RouteLength(planned), cost, len(path))
	}

	file, err := os.Create(*out)
	if err != nil {
		return errors.Wrap(err, "Can't create trajectory file")
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'
	// 		tick - int, number of simulation tick
	// 		state - string, state of navigation
	// 		heading - string, cardinal direction car holds
	// 		eta - float64, estimated time to destination (seconds)
	//      geom - geometry (WKT or GeoJSON representation)
	err = writer.Write([]string{"tick", "state", "heading", "eta", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	tick := 0
	for ; tick < *maxTicks && !navigator.DestinationReached(); tick++ {
		navigator.Update(nil, *dt)
		pos := car.Position()
		geomStr := ""
		if strings.ToLower(*geomFormat) == "geojson" {
			geomStr = carplan.PrepareGeoJSONPoint(pos)
		} else {
			geomStr = carplan.PrepareWKTPoint(pos)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", tick),
			navigator.State().String(),
			navigator.Heading().String(),
			fmt.Sprintf("%f", navigator.Eta()),
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write tick")
		}
		if *verbose {
			fmt.Printf("[INFO]: tick %d, state '%s', heading '%s', position (%f, %f)\n", tick, navigator.State(), navigator.Heading(), pos.X(), pos.Y())
		}
	}
	if !navigator.DestinationReached() {
		return fmt.Errorf("Destination has not been reached in %d ticks", *maxTicks)
	}
	fmt.Printf("Destination has been reached in %d ticks (%.2f s)\n", tick, float64(tick)*(*dt))
	return nil
}
