// fit-report estimates a similarity transform from a links file and renders
// the fit residuals as PNG plots: a scatter of the residual vectors and a
// per-link residual magnitude chart. Large or lopsided residuals usually
// mean a busted link, and seeing them beats reading a table.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/groundcontrol/internal/transform"
	"github.com/banshee-data/groundcontrol/internal/units"
)

func main() {
	linksPath := flag.String("links", "", "Path to the displacement links file (required)")
	weightsPath := flag.String("weights", "", "Path to an optional per-link weights file")
	rotate := flag.String("rotate", "", "Fix the rotation: decimal degrees, 'deg min sec', or 'deg min.m'")
	scale := flag.Float64("scale", 0, "Fix the scale factor (0 solves for it)")
	outDir := flag.String("out", ".", "Directory for the output PNG files")
	flag.Parse()

	if *linksPath == "" {
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

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	if err := scatterPlot(params, links, rms, *outDir); err != nil {
		log.Fatalf("render residual scatter: %v", err)
	}
	if err := magnitudePlot(linkErrs, rms, *outDir); err != nil {
		log.Fatalf("render residual magnitudes: %v", err)
	}

	fmt.Printf("RMS error: %.4f over %d links\n", rms, len(links))
	fmt.Printf("wrote residual plots to %s\n", *outDir)
}

// scatterPlot draws each residual vector as a point around the origin.
func scatterPlot(params transform.Params, links []transform.Link, rms float64, outDir string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Fit residuals (%d links, RMS %.4f)", len(links), rms)
	p.X.Label.Text = "East residual"
	p.Y.Label.Text = "North residual"

	pts := make(plotter.XYs, len(links))
	for i, l := range links {
		fitted := params.Forward(l.Local)
		pts[i] = plotter.XY{X: fitted.X - l.Target.X, Y: fitted.Y - l.Target.Y}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(plotter.NewGrid(), scatter)

	return p.Save(6*vg.Inch, 6*vg.Inch, outDir+"/residual_scatter.png")
}

// magnitudePlot draws per-link residual magnitudes in link order with the
// RMS as a horizontal reference line.
func magnitudePlot(linkErrs []transform.LinkError, rms float64, outDir string) error {
	p := plot.New()
	p.Title.Text = "Residual magnitude per link"
	p.X.Label.Text = "Link"
	p.Y.Label.Text = "Residual"

	pts := make(plotter.XYs, len(linkErrs))
	labels := make([]string, len(linkErrs))
	for i, le := range linkErrs {
		pts[i] = plotter.XY{X: float64(i), Y: le.Residual}
		labels[i] = le.Name
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(3)

	rmsLine := plotter.NewFunction(func(x float64) float64 { return rms })
	rmsLine.Width = vg.Points(1)
	rmsLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(plotter.NewGrid(), scatter, rmsLine)
	p.Legend.Add("RMS", rmsLine)
	p.Legend.Top = true
	p.NominalX(labels...)

	return p.Save(8*vg.Inch, 4*vg.Inch, outDir+"/residual_magnitude.png")
}
