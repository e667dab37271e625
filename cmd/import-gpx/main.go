// import-gpx loads waypoints and tracks from a GPX file into the survey
// database. Waypoints go into a layer; tracks are re-segmented wherever the
// receiver sat idle longer than the split interval, so each stored track is
// one continuous traverse.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/groundcontrol/internal/geodb"
	"github.com/banshee-data/groundcontrol/internal/gpx"
	"github.com/banshee-data/groundcontrol/internal/units"
)

func main() {
	dbPath := flag.String("db", "survey.db", "Path to the survey database")
	in := flag.String("in", "", "Input GPX file (required)")
	layer := flag.String("layer", "", "Layer for waypoints (defaults to the GPX file name)")
	idle := flag.Duration("idle", gpx.DefaultSegmentIdle, "Idle gap that starts a new track segment")
	unitName := flag.String("units", "m", "Linear unit for stored elevations: m, ft, or usft")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *layer == "" {
		*layer = strings.TrimSuffix(filepath.Base(*in), filepath.Ext(*in))
	}

	metersPerUnit, err := units.MetersPerUnit(*unitName)
	if err != nil {
		log.Fatal(err)
	}

	doc, err := gpx.ParseFile(*in)
	if err != nil {
		log.Fatalf("read gpx: %v", err)
	}

	db, err := geodb.Open(*dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if len(doc.Waypoints) > 0 {
		points := make([]geodb.Point, len(doc.Waypoints))
		for i, wpt := range doc.Waypoints {
			points[i] = geodb.Point{
				Layer:       *layer,
				Name:        wpt.Name,
				X:           wpt.Lon,
				Y:           wpt.Lat,
				Elevation:   fromMeters(wpt.Elevation, metersPerUnit),
				Time:        wpt.Time,
				Description: wpt.Description,
				Symbol:      wpt.Symbol,
				Type:        wpt.Type,
			}
			if n, ok := wpt.Samples(); ok {
				samples := int64(n)
				points[i].Samples = &samples
			}
		}
		if err := db.InsertPoints(*layer, points); err != nil {
			log.Fatalf("insert waypoints: %v", err)
		}
		fmt.Printf("imported %d waypoints into layer %s\n", len(points), *layer)
	}

	imported, dropped := 0, 0
	for i, trk := range doc.Tracks {
		fallback := fmt.Sprintf("%s TRK-%02d", *layer, i+1)
		segments := trk.SplitSegments(*idle, fallback)
		total := 0
		for _, seg := range trk.Segments {
			total += len(seg.Points)
		}
		kept := 0
		for _, seg := range segments {
			points := make([]geodb.TrackPoint, len(seg.Points))
			for j, pt := range seg.Points {
				points[j] = geodb.TrackPoint{
					X:         pt.Lon,
					Y:         pt.Lat,
					Elevation: fromMeters(pt.Elevation, metersPerUnit),
					Time:      pt.Time,
				}
			}
			if _, err := db.InsertTrack(seg.Name, points); err != nil {
				log.Fatalf("insert track %q: %v", seg.Name, err)
			}
			kept += len(seg.Points)
			imported++
		}
		dropped += total - kept
	}
	if imported > 0 || dropped > 0 {
		fmt.Printf("imported %d track segments (idle gap %v, %d points dropped)\n",
			imported, *idle, dropped)
	}
}

// fromMeters converts a GPX elevation (metres) to the stored layer unit.
func fromMeters(ele *float64, metersPerUnit float64) *float64 {
	if ele == nil {
		return nil
	}
	v := *ele / metersPerUnit
	return &v
}
