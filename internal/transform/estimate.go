package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FitOptions controls how FitLinks determines the transform when parts of it
// are known ahead of time. A nil Rotation/Scale means "solve for it".
// Weights, when present, must have one entry per link; they default to equal
// weighting.
type FitOptions struct {
	Rotation *float64 // radians
	Scale    *float64
	Weights  []float64
}

// FromSingleLink computes transform parameters from one control point with an
// explicitly supplied rotation (radians) and scale. One link alone cannot
// determine rotation or scale, so the caller must provide both.
func FromSingleLink(local, target Point, rotation, scale float64) (Params, error) {
	if scale <= 0 {
		return Params{}, &InvalidParameterError{Reason: fmt.Sprintf("scale must be positive, got %v", scale)}
	}
	a1 := scale * math.Cos(rotation)
	b1 := scale * math.Sin(rotation)
	return Params{
		A0: target.X - a1*local.X + b1*local.Y,
		B0: target.Y - b1*local.X - a1*local.Y,
		A1: a1,
		B1: b1,
	}, nil
}

// FitConformal solves the weighted least-squares conformal (Helmert) fit for
// all four parameters from two or more links. The closed-form solution works
// on coordinates centered at the weighted centroids:
//
//	a1 = sum(w*(sx*dx + sy*dy)) / sum(w*(sx^2 + sy^2))
//	b1 = sum(w*(sx*dy - sy*dx)) / sum(w*(sx^2 + sy^2))
//
// with translation recovered from the centroids. It fails with an
// InvalidParameterError when fewer than two links are given, when the local
// points are coincident, or when the fitted scale underflows to zero.
func FitConformal(links []Link, weights []float64) (Params, error) {
	if len(links) < 2 {
		return Params{}, &InvalidParameterError{Reason: fmt.Sprintf("conformal fit needs at least 2 links, got %d", len(links))}
	}
	w, err := normalizeWeights(len(links), weights)
	if err != nil {
		return Params{}, err
	}

	srcC, dstC := centroids(links, w)

	var num1, num2, den float64
	for i, l := range links {
		sx, sy := l.Local.X-srcC.X, l.Local.Y-srcC.Y
		dx, dy := l.Target.X-dstC.X, l.Target.Y-dstC.Y
		num1 += w[i] * (sx*dx + sy*dy)
		num2 += w[i] * (sx*dy - sy*dx)
		den += w[i] * (sx*sx + sy*sy)
	}
	if den == 0 {
		return Params{}, &InvalidParameterError{
			Reason: fmt.Sprintf("local points are coincident at (%v, %v)", links[0].Local.X, links[0].Local.Y),
		}
	}

	a1 := num1 / den
	b1 := num2 / den
	if math.Hypot(a1, b1) == 0 {
		return Params{}, &InvalidParameterError{Reason: "fitted transform has zero scale"}
	}

	return Params{
		A0: dstC.X - a1*srcC.X + b1*srcC.Y,
		B0: dstC.Y - b1*srcC.X - a1*srcC.Y,
		A1: a1,
		B1: b1,
	}, nil
}

// FitLinks determines transform parameters from one or more links, choosing
// the estimation method by what the inputs pin down:
//
//  1. A single link, or any number of links with a fixed rotation, uses the
//     given rotation and scale (defaults 0 and 1) with the translation taken
//     from the weighted centroids.
//  2. A fixed scale with free rotation uses the SVD rigid (Kabsch) solution
//     on the centered coordinates, scaled afterwards.
//  3. Otherwise all four parameters come from the conformal least-squares
//     fit (FitConformal).
func FitLinks(links []Link, opts FitOptions) (Params, error) {
	if len(links) == 0 {
		return Params{}, &InvalidParameterError{Reason: "no links given"}
	}
	w, err := normalizeWeights(len(links), opts.Weights)
	if err != nil {
		return Params{}, err
	}

	if len(links) == 1 || opts.Rotation != nil {
		rotation, scale := 0.0, 1.0
		if opts.Rotation != nil {
			rotation = *opts.Rotation
		}
		if opts.Scale != nil {
			scale = *opts.Scale
		}
		srcC, dstC := centroids(links, w)
		return FromSingleLink(srcC, dstC, rotation, scale)
	}

	if opts.Scale != nil {
		return fitRigidScaled(links, w, *opts.Scale)
	}

	return FitConformal(links, opts.Weights)
}

// fitRigidScaled solves for rotation and translation only, with the scale
// supplied by the caller. Rotation comes from the SVD of the weighted
// cross-covariance of the centered point sets.
func fitRigidScaled(links []Link, w []float64, scale float64) (Params, error) {
	if scale <= 0 {
		return Params{}, &InvalidParameterError{Reason: fmt.Sprintf("scale must be positive, got %v", scale)}
	}

	srcC, dstC := centroids(links, w)

	// Weighted cross-covariance H = sum(w * s * d^T) over centered points.
	h := mat.NewDense(2, 2, nil)
	var spread float64
	for i, l := range links {
		sx, sy := l.Local.X-srcC.X, l.Local.Y-srcC.Y
		dx, dy := l.Target.X-dstC.X, l.Target.Y-dstC.Y
		h.Set(0, 0, h.At(0, 0)+w[i]*sx*dx)
		h.Set(0, 1, h.At(0, 1)+w[i]*sx*dy)
		h.Set(1, 0, h.At(1, 0)+w[i]*sy*dx)
		h.Set(1, 1, h.At(1, 1)+w[i]*sy*dy)
		spread += w[i] * (sx*sx + sy*sy)
	}
	if spread == 0 {
		return Params{}, &InvalidParameterError{
			Reason: fmt.Sprintf("local points are coincident at (%v, %v)", links[0].Local.X, links[0].Local.Y),
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(h, mat.SVDFull); !ok {
		return Params{}, &InvalidParameterError{Reason: "SVD of link cross-covariance failed"}
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// R = V * U^T
	var r mat.Dense
	r.Mul(&v, u.T())
	if mat.Det(&r) < 0 {
		return Params{}, &MirroredTransformError{}
	}

	a1 := scale * r.At(0, 0)
	b1 := scale * r.At(1, 0)
	return Params{
		A0: dstC.X - a1*srcC.X + b1*srcC.Y,
		B0: dstC.Y - b1*srcC.X - a1*srcC.Y,
		A1: a1,
		B1: b1,
	}, nil
}

func normalizeWeights(n int, weights []float64) ([]float64, error) {
	if weights == nil {
		w := make([]float64, n)
		for i := range w {
			w[i] = 1
		}
		return w, nil
	}
	if len(weights) != n {
		return nil, &InvalidParameterError{Reason: fmt.Sprintf("%d weights for %d links", len(weights), n)}
	}
	var total float64
	for i, w := range weights {
		if w < 0 {
			return nil, &InvalidParameterError{Reason: fmt.Sprintf("negative weight %v at index %d", w, i)}
		}
		total += w
	}
	if total == 0 {
		return nil, &InvalidParameterError{Reason: "weights sum to zero"}
	}
	return weights, nil
}

func centroids(links []Link, w []float64) (src, dst Point) {
	var total float64
	for i, l := range links {
		src.X += w[i] * l.Local.X
		src.Y += w[i] * l.Local.Y
		dst.X += w[i] * l.Target.X
		dst.Y += w[i] * l.Target.Y
		total += w[i]
	}
	src.X /= total
	src.Y /= total
	dst.X /= total
	dst.Y /= total
	return src, dst
}
