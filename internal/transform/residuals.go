package transform

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// LinkError is the residual distance between a link's forward-transformed
// local point and its target point.
type LinkError struct {
	Name     string  `json:"name"`
	Residual float64 `json:"residual"`
}

// LinkErrors transforms each link's local point forward and reports the
// per-link residual distances and the RMS error over all links.
func LinkErrors(p Params, links []Link) ([]LinkError, float64) {
	errs := make([]LinkError, len(links))
	squared := make([]float64, len(links))
	for i, l := range links {
		d := p.Forward(l.Local).Distance(l.Target)
		errs[i] = LinkError{Name: l.Name, Residual: d}
		squared[i] = d * d
	}
	if len(links) == 0 {
		return errs, 0
	}
	return errs, math.Sqrt(stat.Mean(squared, nil))
}
