package units

import (
	"math"
	"testing"
)

func close(a, b float64) bool {
	return math.Abs(a-b) < 1e-8
}

func TestDMSToDegrees(t *testing.T) {
	tests := []struct {
		deg, min, sec float64
		want          float64
		wantErr       bool
	}{
		{123, 45, 0, 123.75, false},
		{123, 45, 30.01, 123.75833611, false},
		{-123, 45, 30.01, -123.75833611, false},
		{0, 30, 0, 0.5, false},
		{123, 45, 60.0, 0, true},     // seconds out of range
		{123, 60, 0, 0, true},        // minutes out of range
		{-123, 45, -30.01, 0, true},  // negative seconds
		{123.125, 45, 30, 0, true},   // non-integer degrees
		{123, 45.0125, 20, 0, true},  // non-integer minutes
	}
	for _, tt := range tests {
		got, err := DMSToDegrees(tt.deg, tt.min, tt.sec)
		if tt.wantErr {
			if err == nil {
				t.Errorf("DMSToDegrees(%v, %v, %v) should fail, got %v", tt.deg, tt.min, tt.sec, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("DMSToDegrees(%v, %v, %v): %v", tt.deg, tt.min, tt.sec, err)
			continue
		}
		if !close(got, tt.want) {
			t.Errorf("DMSToDegrees(%v, %v, %v) = %.8f, want %.8f", tt.deg, tt.min, tt.sec, got, tt.want)
		}
	}
}

func TestDMToDegrees(t *testing.T) {
	tests := []struct {
		deg, min float64
		want     float64
		wantErr  bool
	}{
		{123, 45.5001666667, 123.75833611, false},
		{-123, 45.5001666667, -123.75833611, false},
		{123, 60.25, 0, true},
		{-123, -45.5001666667, 0, true},
	}
	for _, tt := range tests {
		got, err := DMToDegrees(tt.deg, tt.min)
		if tt.wantErr != (err != nil) {
			t.Errorf("DMToDegrees(%v, %v): err = %v, wantErr = %v", tt.deg, tt.min, err, tt.wantErr)
			continue
		}
		if err == nil && !close(got, tt.want) {
			t.Errorf("DMToDegrees(%v, %v) = %.8f, want %.8f", tt.deg, tt.min, got, tt.want)
		}
	}
}

func TestPackedDMSToDegrees(t *testing.T) {
	tests := []struct {
		dms     float64
		want    float64
		wantErr bool
	}{
		{123.45, 123.75, false},
		{-123.45, -123.75, false},
		{123.4530, 123.75833333, false},
		{123.453001, 123.75833361, false},
		{-123.453001, -123.75833361, false},
		{123.60, 0, true}, // packs to 60 minutes
	}
	for _, tt := range tests {
		got, err := PackedDMSToDegrees(tt.dms)
		if tt.wantErr != (err != nil) {
			t.Errorf("PackedDMSToDegrees(%v): err = %v, wantErr = %v", tt.dms, err, tt.wantErr)
			continue
		}
		if err == nil && !close(got, tt.want) {
			t.Errorf("PackedDMSToDegrees(%v) = %.8f, want %.8f", tt.dms, got, tt.want)
		}
	}
}

func TestParseRotation(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"-1.0627", -1.0627, false},
		{"0", 0, false},
		{"-1 3 45.72", -1.0627, false},
		{"-1 3.762", -1.0627, false},
		{"  2 30 0  ", 2.5, false},
		{"", 0, true},
		{"north", 0, true},
		{"1 2 3 4", 0, true},
		{"1 75 0", 0, true}, // minutes out of range
	}
	for _, tt := range tests {
		got, err := ParseRotation(tt.in)
		if tt.wantErr != (err != nil) {
			t.Errorf("ParseRotation(%q): err = %v, wantErr = %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && !close(got, tt.want) {
			t.Errorf("ParseRotation(%q) = %.8f, want %.8f", tt.in, got, tt.want)
		}
	}
}

func TestRadianDegreeRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 90, -180, 0.0001, 359.999} {
		if got := RadiansToDegrees(DegreesToRadians(deg)); !close(got, deg) {
			t.Errorf("round trip %v = %v", deg, got)
		}
	}
}

func TestMetersPerUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"m", 1, false},
		{"ft", MetersPerIntlFoot, false},
		{"usft", MetersPerUSSurveyFoot, false},
		{"", 0, true},
		{"feet", 0, true},
		{"M", 0, true},
	}
	for _, tt := range tests {
		got, err := MetersPerUnit(tt.in)
		if tt.wantErr != (err != nil) {
			t.Errorf("MetersPerUnit(%q): err = %v, wantErr = %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("MetersPerUnit(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// An elevation stored in US survey feet goes out to GPX in metres.
	k, err := MetersPerUnit("usft")
	if err != nil {
		t.Fatal(err)
	}
	if got := 1251.25 * k; math.Abs(got-381.381762) > 1e-6 {
		t.Errorf("1251.25 usft = %v m, want 381.381762", got)
	}
}

func TestFootDefinitions(t *testing.T) {
	// The two foot definitions differ by 2ppm; check both are wired to the
	// right constants rather than each other.
	if close(MetersPerIntlFoot, MetersPerUSSurveyFoot) {
		t.Fatal("foot constants should differ")
	}
	if math.Abs(MetersPerUSSurveyFoot-0.3048006096) > 1e-9 {
		t.Errorf("MetersPerUSSurveyFoot = %.10f", MetersPerUSSurveyFoot)
	}
}
