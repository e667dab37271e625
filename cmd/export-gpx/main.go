// export-gpx writes a survey database layer out as GPX waypoints, sorted by
// point name, optionally also as a route connecting them in that order.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/banshee-data/groundcontrol/internal/geodb"
	"github.com/banshee-data/groundcontrol/internal/gpx"
	"github.com/banshee-data/groundcontrol/internal/units"
)

func main() {
	dbPath := flag.String("db", "survey.db", "Path to the survey database")
	layer := flag.String("layer", "", "Layer to export (required)")
	out := flag.String("out", "", "Output GPX file (required)")
	route := flag.Bool("route", false, "Also emit a route visiting the waypoints in name order")
	closeLoop := flag.Bool("close", false, "Close the route back to its first point")
	unitName := flag.String("units", "m", "Linear unit of stored elevations: m, ft, or usft")
	flag.Parse()

	if *layer == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	metersPerUnit, err := units.MetersPerUnit(*unitName)
	if err != nil {
		log.Fatal(err)
	}

	db, err := geodb.Open(*dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	points, err := db.ListPoints(*layer)
	if err != nil {
		log.Fatalf("list points: %v", err)
	}
	if len(points) == 0 {
		log.Fatalf("layer %s has no points", *layer)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Name < points[j].Name })

	doc := gpx.NewDocument("groundcontrol")
	waypoints := make([]gpx.Waypoint, len(points))
	for i, p := range points {
		waypoints[i] = gpx.Waypoint{
			Lat:         p.Y,
			Lon:         p.X,
			Time:        p.Time,
			Name:        p.Name,
			Description: p.Description,
			Symbol:      p.Symbol,
			Type:        p.Type,
		}
		if p.Elevation != nil {
			ele := *p.Elevation * metersPerUnit
			waypoints[i].Elevation = &ele
		}
		if p.Samples != nil {
			waypoints[i].SetSamples(int(*p.Samples))
		}
	}
	doc.Waypoints = waypoints

	if *route {
		doc.Routes = append(doc.Routes, gpx.BuildRoute(*layer, waypoints, *closeLoop))
	}

	if err := gpx.WriteFile(*out, doc); err != nil {
		log.Fatalf("write gpx: %v", err)
	}
	fmt.Printf("exported %d waypoints from layer %s to %s\n", len(waypoints), *layer, *out)
}
