// Package transform implements the four-parameter similarity transform used
// to move survey points between a local ground coordinate frame and a
// projected grid coordinate frame.
//
// The forward transform, (x0, y0) -> (x1, y1):
//
//	x1 = a0 + a1*x0 - b1*y0
//	y1 = b0 + b1*x0 + a1*y0
//
// Parameters a1 and b1 encode rotation r and uniform scale k:
//
//	r = atan2(b1, a1)
//	k = sqrt(a1^2 + b1^2)
package transform

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate in either the local or the grid frame.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the euclidean distance to q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Link is a displacement link: one control point measured in both frames.
type Link struct {
	Name   string `json:"name"`
	Local  Point  `json:"local"`
	Target Point  `json:"target"`
}

// Direction selects which mapping Apply performs.
type Direction int

const (
	// Forward maps local coordinates to grid coordinates.
	Forward Direction = iota
	// Inverse maps grid coordinates back to local coordinates.
	Inverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Inverse:
		return "inverse"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection parses "forward" or "inverse" (case-sensitive, matching the
// CLI flag values).
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "forward":
		return Forward, nil
	case "inverse":
		return Inverse, nil
	}
	return Forward, fmt.Errorf("bad direction %q: want forward or inverse", s)
}

// Params holds the four similarity transform parameters. A Params value is
// immutable: estimation and file loading construct new values, nothing
// mutates one in place.
type Params struct {
	A0 float64 `json:"a0"`
	B0 float64 `json:"b0"`
	A1 float64 `json:"a1"`
	B1 float64 `json:"b1"`
}

// Identity is the zero-rotation unit-scale transform.
var Identity = Params{A1: 1}

// Scale returns the uniform scale factor k.
func (p Params) Scale() float64 {
	return math.Hypot(p.A1, p.B1)
}

// Rotation returns the rotation in radians, positive counter-clockwise.
func (p Params) Rotation() float64 {
	return math.Atan2(p.B1, p.A1)
}

// Translation returns the translation components (a0, b0).
func (p Params) Translation() (x, y float64) {
	return p.A0, p.B0
}

// Forward maps a local point to the grid frame.
func (p Params) Forward(pt Point) Point {
	return Point{
		X: p.A0 + p.A1*pt.X - p.B1*pt.Y,
		Y: p.B0 + p.B1*pt.X + p.A1*pt.Y,
	}
}

// Inverse maps a grid point back to the local frame. It fails with a
// DegenerateTransformError when the parameters have zero scale, which can
// only happen with a hand-edited parameter file.
func (p Params) Inverse(pt Point) (Point, error) {
	d := p.A1*p.A1 + p.B1*p.B1
	if d == 0 {
		return Point{}, &DegenerateTransformError{Params: p}
	}
	dx, dy := pt.X-p.A0, pt.Y-p.B0
	return Point{
		X: (dx*p.A1 + dy*p.B1) / d,
		Y: (dy*p.A1 - dx*p.B1) / d,
	}, nil
}

// Apply maps a point in the given direction.
func (p Params) Apply(pt Point, dir Direction) (Point, error) {
	switch dir {
	case Forward:
		return p.Forward(pt), nil
	case Inverse:
		return p.Inverse(pt)
	}
	return Point{}, fmt.Errorf("bad direction %v", dir)
}
