// transform-points applies a similarity transform to a PNEZD coordinate
// file. The forward direction maps local ground coordinates to grid, the
// inverse maps grid back to ground. Elevations are multiplied by the scale
// factor going forward and divided by it coming back, so distances measured
// on the output remain consistent in all three dimensions.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/groundcontrol/internal/pnezd"
	"github.com/banshee-data/groundcontrol/internal/transform"
)

func main() {
	paramsPath := flag.String("params", "", "Path to the transform parameter file (required)")
	direction := flag.String("direction", "forward", "Transform direction: forward or inverse")
	in := flag.String("in", "", "Input PNEZD file (required)")
	out := flag.String("out", "", "Output PNEZD file (required)")
	flag.Parse()

	if *paramsPath == "" || *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	dir, err := transform.ParseDirection(*direction)
	if err != nil {
		log.Fatal(err)
	}

	params, err := transform.Load(*paramsPath)
	if err != nil {
		log.Fatalf("load parameters: %v", err)
	}

	records, recordErrs, err := pnezd.ParseFile(*in)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	for _, re := range recordErrs {
		fmt.Fprintf(os.Stderr, "skipping %v\n", re)
	}

	k := params.Scale()
	for i, rec := range records {
		pt, err := params.Apply(transform.Point{X: rec.Easting, Y: rec.Northing}, dir)
		if err != nil {
			log.Fatalf("transform point %s: %v", rec.Name, err)
		}
		records[i].Easting = pt.X
		records[i].Northing = pt.Y
		switch dir {
		case transform.Forward:
			records[i].Elevation = rec.Elevation * k
		case transform.Inverse:
			records[i].Elevation = rec.Elevation / k
		}
	}

	if err := pnezd.WriteFile(*out, records); err != nil {
		log.Fatalf("write output: %v", err)
	}
	fmt.Printf("transformed %d points (%d skipped) to %s\n", len(records), len(recordErrs), *out)
}
