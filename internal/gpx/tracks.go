package gpx

import (
	"fmt"
	"time"
)

// DefaultSegmentIdle is the idle time between track points that starts a new
// segment when splitting a recorded track.
const DefaultSegmentIdle = 10 * time.Minute

// NamedSegment is a run of consecutive track points carrying the name it
// should be stored or drawn under.
type NamedSegment struct {
	Name   string
	Points []TrackPoint
}

// SplitSegments flattens the track's points and re-segments them wherever
// the recorded times gap by more than idle. Receivers left idle at a setup
// produce one long trkseg; the split recovers the actual traverses. Segments
// with fewer than two points are dropped. The first kept segment keeps the
// track name, later ones get a SEG-nnnn suffix.
func (t Track) SplitSegments(idle time.Duration, fallbackName string) []NamedSegment {
	name := t.Name
	if name == "" {
		name = fallbackName
	}

	var segments []NamedSegment
	var current []TrackPoint
	var last time.Time
	haveLast := false

	flush := func() {
		if len(current) < 2 {
			current = nil
			return
		}
		segName := name
		if len(segments) > 0 {
			segName = fmt.Sprintf("%s SEG-%04d", name, len(segments)+1)
		}
		segments = append(segments, NamedSegment{Name: segName, Points: current})
		current = nil
	}

	for _, seg := range t.Segments {
		for _, pt := range seg.Points {
			if pt.Time == "" {
				haveLast = false
			} else {
				ts, err := time.Parse(time.RFC3339, pt.Time)
				if err != nil {
					haveLast = false
				} else {
					if haveLast && ts.Sub(last) > idle {
						flush()
					}
					last = ts
					haveLast = true
				}
			}
			current = append(current, pt)
		}
	}
	flush()

	return segments
}

// BuildRoute copies waypoints into a route. With closeLoop set the first
// point is repeated at the end so the route returns to its start.
func BuildRoute(name string, points []Waypoint, closeLoop bool) Route {
	rte := Route{Name: name, Points: append([]Waypoint(nil), points...)}
	if closeLoop && len(points) > 0 {
		rte.Points = append(rte.Points, points[0])
	}
	return rte
}
