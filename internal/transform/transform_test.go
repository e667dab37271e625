package transform

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale > 1 {
		return diff/scale <= tol
	}
	return diff <= tol
}

func paramsFrom(t *testing.T, a0, b0, rotation, scale float64) Params {
	t.Helper()
	p, err := FromSingleLink(Point{}, Point{X: a0, Y: b0}, rotation, scale)
	if err != nil {
		t.Fatalf("FromSingleLink: %v", err)
	}
	return p
}

func TestForward(t *testing.T) {
	p := Params{A0: 100, B0: 200, A1: 2, B1: 0}
	got := p.Forward(Point{X: 1, Y: 0})
	want := Point{X: 102, Y: 200}
	if got != want {
		t.Errorf("Forward = %+v, want %+v", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	params := []Params{
		Identity,
		{A0: 100, B0: 200, A1: 2, B1: 0},
		{A0: -512345.25, B0: 4212345.75, A1: 0.9999, B1: 0.0123},
		paramsFrom(t, 6231000, 1972000, math.Pi/7, 0.99990295),
		paramsFrom(t, -5, 5, -2.5, 1500),
	}
	points := []Point{
		{},
		{X: 1, Y: 0},
		{X: 5280.12, Y: -10560.5},
		{X: 1e7, Y: -1e7},
		{X: 0.001, Y: 0.002},
	}

	for _, p := range params {
		for _, pt := range points {
			fwd := p.Forward(pt)
			back, err := p.Inverse(fwd)
			if err != nil {
				t.Fatalf("Inverse(%+v): %v", fwd, err)
			}
			if !almostEqual(back.X, pt.X, 1e-9) || !almostEqual(back.Y, pt.Y, 1e-9) {
				t.Errorf("round trip %+v through %+v = %+v", pt, p, back)
			}

			// And the other way: inverse then forward.
			inv, err := p.Inverse(pt)
			if err != nil {
				t.Fatalf("Inverse(%+v): %v", pt, err)
			}
			again := p.Forward(inv)
			if !almostEqual(again.X, pt.X, 1e-9) || !almostEqual(again.Y, pt.Y, 1e-9) {
				t.Errorf("inverse round trip %+v through %+v = %+v", pt, p, again)
			}
		}
	}
}

func TestInverseDegenerate(t *testing.T) {
	p := Params{A0: 10, B0: 20} // a1 = b1 = 0
	_, err := p.Inverse(Point{X: 1, Y: 1})
	var degen *DegenerateTransformError
	if !errors.As(err, &degen) {
		t.Fatalf("Inverse on zero-scale params: err = %v, want DegenerateTransformError", err)
	}
}

func TestScaleRotationRecovery(t *testing.T) {
	cases := []struct {
		rotation float64
		scale    float64
	}{
		{0, 1},
		{math.Pi / 4, 2},
		{-math.Pi / 2, 0.5},
		{0.0001, 0.99990295},
		{3, 1e4},
	}
	for _, c := range cases {
		p, err := FromSingleLink(Point{X: 3, Y: 4}, Point{X: -7, Y: 11}, c.rotation, c.scale)
		if err != nil {
			t.Fatalf("FromSingleLink(rot=%v, scale=%v): %v", c.rotation, c.scale, err)
		}
		if !almostEqual(p.Scale(), c.scale, 1e-12) {
			t.Errorf("Scale() = %v, want %v", p.Scale(), c.scale)
		}
		if !almostEqual(p.Rotation(), c.rotation, 1e-12) {
			t.Errorf("Rotation() = %v, want %v", p.Rotation(), c.rotation)
		}
	}
}

func TestApplyDirections(t *testing.T) {
	p := paramsFrom(t, 1000, 2000, 0.3, 1.5)
	pt := Point{X: 123.4, Y: -567.8}

	fwd, err := p.Apply(pt, Forward)
	if err != nil {
		t.Fatalf("Apply forward: %v", err)
	}
	if fwd != p.Forward(pt) {
		t.Errorf("Apply(Forward) = %+v, want %+v", fwd, p.Forward(pt))
	}

	back, err := p.Apply(fwd, Inverse)
	if err != nil {
		t.Fatalf("Apply inverse: %v", err)
	}
	if !almostEqual(back.X, pt.X, 1e-9) || !almostEqual(back.Y, pt.Y, 1e-9) {
		t.Errorf("Apply(Inverse) = %+v, want %+v", back, pt)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("forward"); err != nil || d != Forward {
		t.Errorf("ParseDirection(forward) = %v, %v", d, err)
	}
	if d, err := ParseDirection("inverse"); err != nil || d != Inverse {
		t.Errorf("ParseDirection(inverse) = %v, %v", d, err)
	}
	if _, err := ParseDirection("Backward"); err == nil {
		t.Error("ParseDirection(Backward) should fail")
	}
}

func TestTranslation(t *testing.T) {
	p := Params{A0: -3.5, B0: 12, A1: 1}
	x, y := p.Translation()
	if x != -3.5 || y != 12 {
		t.Errorf("Translation() = %v, %v", x, y)
	}
}
