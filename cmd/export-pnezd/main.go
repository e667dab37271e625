// export-pnezd writes a survey database layer out as a PNEZD coordinate
// file, optionally transforming the grid coordinates back to local ground.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/groundcontrol/internal/geodb"
	"github.com/banshee-data/groundcontrol/internal/pnezd"
	"github.com/banshee-data/groundcontrol/internal/transform"
)

func main() {
	dbPath := flag.String("db", "survey.db", "Path to the survey database")
	layer := flag.String("layer", "", "Layer to export (required)")
	out := flag.String("out", "", "Output PNEZD file (required)")
	paramsPath := flag.String("params", "", "Optional transform parameter file; points are mapped inverse to ground")
	flag.Parse()

	if *layer == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
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

	params := transform.Identity
	if *paramsPath != "" {
		params, err = transform.Load(*paramsPath)
		if err != nil {
			log.Fatalf("load parameters: %v", err)
		}
	}
	k := params.Scale()

	records := make([]pnezd.Record, len(points))
	for i, p := range points {
		pt, err := params.Inverse(transform.Point{X: p.X, Y: p.Y})
		if err != nil {
			log.Fatalf("transform point %s: %v", p.Name, err)
		}
		var elevation float64
		if p.Elevation != nil {
			elevation = *p.Elevation / k
		}
		records[i] = pnezd.Record{
			Name:        p.Name,
			Northing:    pt.Y,
			Easting:     pt.X,
			Elevation:   elevation,
			Description: p.Description,
		}
	}

	if err := pnezd.WriteFile(*out, records); err != nil {
		log.Fatalf("write output: %v", err)
	}
	fmt.Printf("exported %d points from layer %s to %s\n", len(records), *layer, *out)
}
