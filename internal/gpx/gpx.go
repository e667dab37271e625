// Package gpx reads and writes GPX 1.1 files: waypoints, routes, and tracks,
// including the Garmin wptx1 Samples waypoint extension emitted by mapping
// receivers that average multiple fixes per waypoint.
package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	NamespaceGPX   = "http://www.topografix.com/GPX/1/1"
	NamespaceWptx1 = "http://www.garmin.com/xmlschemas/WaypointExtension/v1"

	schemaGPX = "http://www.topografix.com/GPX/1/1/gpx.xsd"
	// Garmin's own schema URL sits behind an https redirect some validators
	// can't follow; this mirror serves it plain.
	schemaWptx1 = "http://garmin.cmack.org/xmlschemas/WaypointExtensionv1.xsd"
)

// Document is a GPX file root.
type Document struct {
	XMLName xml.Name `xml:"gpx"`
	Creator string   `xml:"creator,attr"`
	Version string   `xml:"version,attr"`

	// Namespace attributes, populated by NewDocument for output; parsing
	// leaves them alone and matches elements by local name.
	Xmlns          string `xml:"xmlns,attr,omitempty"`
	XmlnsXsi       string `xml:"xmlns:xsi,attr,omitempty"`
	XmlnsWptx1     string `xml:"xmlns:wptx1,attr,omitempty"`
	SchemaLocation string `xml:"xsi:schemaLocation,attr,omitempty"`

	Metadata  *Metadata  `xml:"metadata"`
	Waypoints []Waypoint `xml:"wpt"`
	Routes    []Route    `xml:"rte"`
	Tracks    []Track    `xml:"trk"`
}

// Metadata is the GPX metadata block; only the creation time is used here.
type Metadata struct {
	Time string `xml:"time,omitempty"`
}

// Waypoint is a wpt or rtept element.
type Waypoint struct {
	Lat float64 `xml:"lat,attr"`
	Lon float64 `xml:"lon,attr"`

	Elevation   *float64    `xml:"ele"`
	Time        string      `xml:"time,omitempty"`
	Name        string      `xml:"name,omitempty"`
	Description string      `xml:"desc,omitempty"`
	Symbol      string      `xml:"sym,omitempty"`
	Type        string      `xml:"type,omitempty"`
	Extensions  *Extensions `xml:"extensions"`
}

// Samples returns the wptx1 Samples extension value when present.
func (w Waypoint) Samples() (int, bool) {
	if w.Extensions == nil || w.Extensions.WaypointExtension == nil || w.Extensions.WaypointExtension.Samples == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(w.Extensions.WaypointExtension.Samples.Value))
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetSamples attaches the wptx1 Samples extension.
func (w *Waypoint) SetSamples(n int) {
	w.Extensions = &Extensions{
		WaypointExtension: &WaypointExtension{
			XMLName: xml.Name{Local: "wptx1:WaypointExtension"},
			Samples: &SamplesElement{
				XMLName: xml.Name{Local: "wptx1:Samples"},
				Value:   strconv.Itoa(n),
			},
		},
	}
}

// Extensions wraps the extension elements a waypoint may carry.
type Extensions struct {
	WaypointExtension *WaypointExtension `xml:"WaypointExtension"`
}

// WaypointExtension is the Garmin wptx1 extension block. The XMLName value
// carries the prefixed output name; parsing matches by local name.
type WaypointExtension struct {
	XMLName xml.Name        `xml:"WaypointExtension"`
	Samples *SamplesElement `xml:"Samples"`
}

// SamplesElement holds the Samples count as text.
type SamplesElement struct {
	XMLName xml.Name `xml:"Samples"`
	Value   string   `xml:",chardata"`
}

// Route is an rte element.
type Route struct {
	Name   string     `xml:"name,omitempty"`
	Points []Waypoint `xml:"rtept"`
}

// Track is a trk element.
type Track struct {
	Name     string         `xml:"name,omitempty"`
	Segments []TrackSegment `xml:"trkseg"`
}

// TrackSegment is a trkseg element.
type TrackSegment struct {
	Points []TrackPoint `xml:"trkpt"`
}

// TrackPoint is a trkpt element.
type TrackPoint struct {
	Lat       float64  `xml:"lat,attr"`
	Lon       float64  `xml:"lon,attr"`
	Elevation *float64 `xml:"ele"`
	Time      string   `xml:"time,omitempty"`
}

// NewDocument returns an empty document with the namespace attributes and
// metadata time filled in for writing.
func NewDocument(creator string) *Document {
	return &Document{
		Creator:        creator,
		Version:        "1.1",
		Xmlns:          NamespaceGPX,
		XmlnsXsi:       "http://www.w3.org/2001/XMLSchema-instance",
		XmlnsWptx1:     NamespaceWptx1,
		SchemaLocation: strings.Join([]string{NamespaceGPX, schemaGPX, NamespaceWptx1, schemaWptx1}, " "),
		Metadata:       &Metadata{Time: time.Now().UTC().Format("2006-01-02T15:04:05Z")},
	}
}

// Parse reads a GPX document.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse gpx: %w", err)
	}
	return &doc, nil
}

// ParseFile reads a GPX file from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gpx file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Write renders the document with two-space indentation.
func Write(w io.Writer, doc *Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write gpx: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write gpx: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write gpx: %w", err)
	}
	return nil
}

// WriteFile writes the document to disk.
func WriteFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gpx file: %w", err)
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
