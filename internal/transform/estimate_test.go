package transform

import (
	"errors"
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

// makeLinks transforms the given local points through truth and pairs them up.
func makeLinks(truth Params, locals []Point) []Link {
	links := make([]Link, len(locals))
	for i, l := range locals {
		links[i] = Link{Local: l, Target: truth.Forward(l)}
	}
	return links
}

func paramsClose(a, b Params, tol float64) bool {
	return almostEqual(a.A0, b.A0, tol) && almostEqual(a.B0, b.B0, tol) &&
		almostEqual(a.A1, b.A1, tol) && almostEqual(a.B1, b.B1, tol)
}

func TestFromSingleLink(t *testing.T) {
	p, err := FromSingleLink(Point{}, Point{X: 100, Y: 200}, 0, 2)
	if err != nil {
		t.Fatalf("FromSingleLink: %v", err)
	}
	want := Params{A0: 100, B0: 200, A1: 2, B1: 0}
	if p != want {
		t.Errorf("params = %+v, want %+v", p, want)
	}
	if got := p.Forward(Point{X: 1, Y: 0}); got != (Point{X: 102, Y: 200}) {
		t.Errorf("Forward(1,0) = %+v, want (102, 200)", got)
	}

	// The transform must land the link exactly, whatever the rotation.
	local, target := Point{X: 5000, Y: 3000}, Point{X: 6231456.7, Y: 1972345.6}
	p, err = FromSingleLink(local, target, 0.0185, 0.99990295)
	if err != nil {
		t.Fatalf("FromSingleLink: %v", err)
	}
	got := p.Forward(local)
	if !almostEqual(got.X, target.X, 1e-12) || !almostEqual(got.Y, target.Y, 1e-12) {
		t.Errorf("Forward(local) = %+v, want %+v", got, target)
	}
}

func TestFromSingleLinkBadScale(t *testing.T) {
	for _, scale := range []float64{0, -1, -0.0001} {
		_, err := FromSingleLink(Point{}, Point{}, 0, scale)
		var invalid *InvalidParameterError
		if !errors.As(err, &invalid) {
			t.Errorf("scale=%v: err = %v, want InvalidParameterError", scale, err)
		}
	}
}

func TestFitConformalExactTwoLinks(t *testing.T) {
	truth := Params{A0: 6231000, B0: 1972000, A1: 0.99985 * math.Cos(0.0185), B1: 0.99985 * math.Sin(0.0185)}
	links := makeLinks(truth, []Point{{X: 1000, Y: 1000}, {X: 4000, Y: 2500}})

	p, err := FitConformal(links, nil)
	if err != nil {
		t.Fatalf("FitConformal: %v", err)
	}
	if !paramsClose(p, truth, 1e-9) {
		t.Errorf("params = %+v, want %+v", p, truth)
	}
}

func TestFitConformalOverdetermined(t *testing.T) {
	truth := Params{A0: -250.75, B0: 812.5, A1: 1.5 * math.Cos(1.1), B1: 1.5 * math.Sin(1.1)}
	links := makeLinks(truth, []Point{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100},
		{X: 250, Y: 400}, {X: -80, Y: 320}, {X: 512, Y: -77},
	})

	p, err := FitConformal(links, nil)
	if err != nil {
		t.Fatalf("FitConformal: %v", err)
	}
	if !paramsClose(p, truth, 1e-9) {
		t.Errorf("params = %+v, want %+v", p, truth)
	}

	errs, rms := LinkErrors(p, links)
	if len(errs) != len(links) {
		t.Fatalf("got %d link errors, want %d", len(errs), len(links))
	}
	if rms > 1e-6 {
		t.Errorf("RMS on consistent links = %v, want ~0", rms)
	}
}

func TestFitConformalWeighted(t *testing.T) {
	truth := Params{A0: 10, B0: 20, A1: 2, B1: 0}
	links := makeLinks(truth, []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}})
	// A wildly wrong fourth link with zero weight must not move the fit.
	links = append(links, Link{Local: Point{X: 5, Y: 5}, Target: Point{X: 9999, Y: -9999}})

	p, err := FitConformal(links, []float64{1, 1, 1, 0})
	if err != nil {
		t.Fatalf("FitConformal: %v", err)
	}
	if !paramsClose(p, truth, 1e-9) {
		t.Errorf("params = %+v, want %+v", p, truth)
	}
}

func TestFitConformalDegenerate(t *testing.T) {
	t.Run("too few links", func(t *testing.T) {
		_, err := FitConformal([]Link{{Local: Point{}, Target: Point{X: 1}}}, nil)
		var invalid *InvalidParameterError
		if !errors.As(err, &invalid) {
			t.Errorf("err = %v, want InvalidParameterError", err)
		}
	})

	t.Run("coincident local points", func(t *testing.T) {
		links := []Link{
			{Local: Point{X: 7, Y: 7}, Target: Point{X: 100, Y: 100}},
			{Local: Point{X: 7, Y: 7}, Target: Point{X: 200, Y: 200}},
		}
		_, err := FitConformal(links, nil)
		var invalid *InvalidParameterError
		if !errors.As(err, &invalid) {
			t.Errorf("err = %v, want InvalidParameterError", err)
		}
	})

	t.Run("weight count mismatch", func(t *testing.T) {
		links := makeLinks(Identity, []Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
		_, err := FitConformal(links, []float64{1})
		var invalid *InvalidParameterError
		if !errors.As(err, &invalid) {
			t.Errorf("err = %v, want InvalidParameterError", err)
		}
	})
}

func TestFitLinksSingleLink(t *testing.T) {
	// One link and no fixed rotation: translate only.
	links := []Link{{Local: Point{X: 100, Y: 100}, Target: Point{X: 1100, Y: 2100}}}
	p, err := FitLinks(links, FitOptions{})
	if err != nil {
		t.Fatalf("FitLinks: %v", err)
	}
	want := Params{A0: 1000, B0: 2000, A1: 1, B1: 0}
	if !paramsClose(p, want, 1e-12) {
		t.Errorf("params = %+v, want %+v", p, want)
	}
}

func TestFitLinksFixedRotation(t *testing.T) {
	truth := paramsFrom(t, 500, -500, 0.25, 1.003)
	links := makeLinks(truth, []Point{{X: 0, Y: 0}, {X: 100, Y: 50}, {X: -30, Y: 200}})

	p, err := FitLinks(links, FitOptions{Rotation: ptr(0.25), Scale: ptr(1.003)})
	if err != nil {
		t.Fatalf("FitLinks: %v", err)
	}
	if !paramsClose(p, truth, 1e-9) {
		t.Errorf("params = %+v, want %+v", p, truth)
	}

	// Fixed rotation with no scale defaults the scale to 1.
	p, err = FitLinks(links, FitOptions{Rotation: ptr(0.25)})
	if err != nil {
		t.Fatalf("FitLinks: %v", err)
	}
	if !almostEqual(p.Scale(), 1, 1e-12) {
		t.Errorf("Scale() = %v, want 1", p.Scale())
	}
}

func TestFitLinksFixedScale(t *testing.T) {
	truth := paramsFrom(t, 8000, 12000, -0.7, 0.99993)
	links := makeLinks(truth, []Point{{X: 0, Y: 0}, {X: 500, Y: 0}, {X: 0, Y: 500}, {X: 300, Y: 700}})

	p, err := FitLinks(links, FitOptions{Scale: ptr(0.99993)})
	if err != nil {
		t.Fatalf("FitLinks: %v", err)
	}
	if !paramsClose(p, truth, 1e-9) {
		t.Errorf("params = %+v, want %+v", p, truth)
	}
	if !almostEqual(p.Scale(), 0.99993, 1e-12) {
		t.Errorf("Scale() = %v, want the fixed 0.99993", p.Scale())
	}
}

func TestFitLinksMirrored(t *testing.T) {
	// Targets are the locals reflected about the x axis; the best rigid
	// rotation is a reflection, which the rigid path must refuse.
	locals := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 3, Y: 8}}
	links := make([]Link, len(locals))
	for i, l := range locals {
		links[i] = Link{Local: l, Target: Point{X: l.X, Y: -l.Y}}
	}

	_, err := FitLinks(links, FitOptions{Scale: ptr(1.0)})
	var mirrored *MirroredTransformError
	if !errors.As(err, &mirrored) {
		t.Fatalf("err = %v, want MirroredTransformError", err)
	}
}

func TestFitLinksNoLinks(t *testing.T) {
	_, err := FitLinks(nil, FitOptions{})
	var invalid *InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Errorf("err = %v, want InvalidParameterError", err)
	}
}

func TestLinkErrorsInconsistent(t *testing.T) {
	truth := Params{A0: 0, B0: 0, A1: 1, B1: 0}
	links := makeLinks(truth, []Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}})
	// Push one target off by 3,4 (distance 5).
	links[2].Target.X += 3
	links[2].Target.Y += 4

	errs, rms := LinkErrors(truth, links)
	if !almostEqual(errs[2].Residual, 5, 1e-12) {
		t.Errorf("residual = %v, want 5", errs[2].Residual)
	}
	wantRMS := math.Sqrt(25.0 / 3.0)
	if !almostEqual(rms, wantRMS, 1e-12) {
		t.Errorf("rms = %v, want %v", rms, wantRMS)
	}
}
