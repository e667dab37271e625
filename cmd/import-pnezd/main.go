// import-pnezd loads a PNEZD coordinate file into a survey database layer,
// optionally transforming the local ground coordinates to grid on the way in.
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
	layer := flag.String("layer", "", "Layer to import into (required)")
	in := flag.String("in", "", "Input PNEZD file (required)")
	paramsPath := flag.String("params", "", "Optional transform parameter file; points are mapped forward to grid")
	flag.Parse()

	if *layer == "" || *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	records, recordErrs, err := pnezd.ParseFile(*in)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	for _, re := range recordErrs {
		fmt.Fprintf(os.Stderr, "skipping %v\n", re)
	}
	if len(records) == 0 {
		log.Fatalf("no valid records in %s", *in)
	}

	params := transform.Identity
	if *paramsPath != "" {
		params, err = transform.Load(*paramsPath)
		if err != nil {
			log.Fatalf("load parameters: %v", err)
		}
	}
	k := params.Scale()

	points := make([]geodb.Point, len(records))
	for i, rec := range records {
		pt := params.Forward(transform.Point{X: rec.Easting, Y: rec.Northing})
		elevation := rec.Elevation * k
		points[i] = geodb.Point{
			Layer:       *layer,
			Name:        rec.Name,
			X:           pt.X,
			Y:           pt.Y,
			Elevation:   &elevation,
			Description: rec.Description,
		}
	}

	db, err := geodb.Open(*dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.InsertPoints(*layer, points); err != nil {
		log.Fatalf("insert points: %v", err)
	}
	fmt.Printf("imported %d points (%d skipped) into layer %s\n", len(points), len(recordErrs), *layer)
}
