// calc-transform estimates similarity transform parameters from a
// displacement links file and writes them to a parameter file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/groundcontrol/internal/transform"
	"github.com/banshee-data/groundcontrol/internal/units"
)

func main() {
	linksPath := flag.String("links", "", "Path to the displacement links file (required)")
	weightsPath := flag.String("weights", "", "Path to an optional per-link weights file")
	rotate := flag.String("rotate", "", "Fix the rotation: decimal degrees, 'deg min sec', or 'deg min.m'")
	scale := flag.Float64("scale", 0, "Fix the scale factor (0 solves for it)")
	out := flag.String("out", "", "Path for the output parameter file (required)")
	flag.Parse()

	if *linksPath == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	links, err := transform.ReadLinksFile(*linksPath)
	if err != nil {
		log.Fatalf("read links: %v", err)
	}

	var opts transform.FitOptions
	if *weightsPath != "" {
		weights, err := transform.ReadWeightsFile(*weightsPath, links)
		if err != nil {
			log.Fatalf("read weights: %v", err)
		}
		opts.Weights = weights
	}
	if *rotate != "" {
		deg, err := units.ParseRotation(*rotate)
		if err != nil {
			log.Fatalf("parse rotation: %v", err)
		}
		rad := units.DegreesToRadians(deg)
		opts.Rotation = &rad
	}
	if *scale != 0 {
		opts.Scale = scale
	}

	params, err := transform.FitLinks(links, opts)
	if err != nil {
		log.Fatalf("estimate transform: %v", err)
	}

	linkErrs, rms := transform.LinkErrors(params, links)
	for _, le := range linkErrs {
		fmt.Printf("link %s error: %.4f\n", le.Name, le.Residual)
	}
	fmt.Printf("RMS error: %.4f over %d links\n", rms, len(links))
	fmt.Printf("scale: %.8f  rotation: %.6f deg\n",
		params.Scale(), units.RadiansToDegrees(params.Rotation()))

	if err := params.Save(*out); err != nil {
		log.Fatalf("write parameters: %v", err)
	}
	fmt.Printf("wrote %s\n", *out)
}
