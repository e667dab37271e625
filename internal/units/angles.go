// Package units converts between the angular and linear units that show up
// in survey field data: degrees-minutes-seconds rotations, radians, and the
// metre/foot conversions applied to elevations on import and export.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Linear conversion factors. Survey data in the US mixes both foot
// definitions, so both are spelled out rather than sharing one constant.
const (
	MetersPerIntlFoot     = 0.3048
	MetersPerUSSurveyFoot = 1200.0 / 3937.0
)

// MetersPerUnit returns the conversion factor for a linear unit name as the
// CLI flags spell them: "m", "ft" (international foot), or "usft" (US survey
// foot). GPX elevations are metres; stored layer elevations are whatever the
// ground coordinate system uses, so imports divide by this factor and
// exports multiply.
func MetersPerUnit(name string) (float64, error) {
	switch name {
	case "m":
		return 1, nil
	case "ft":
		return MetersPerIntlFoot, nil
	case "usft":
		return MetersPerUSSurveyFoot, nil
	}
	return 0, fmt.Errorf("bad linear unit %q: want m, ft, or usft", name)
}

// DegreesToRadians converts decimal degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts radians to decimal degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DMSToDegrees converts a (degrees, minutes, seconds) rotation to decimal
// degrees. Degrees and minutes must be integral, minutes and seconds must lie
// in [0, 60). A negative degrees value makes the whole angle negative.
func DMSToDegrees(deg, min, sec float64) (float64, error) {
	if min < 0 || sec < 0 {
		return 0, fmt.Errorf("negative min/sec value: min=%v sec=%v", min, sec)
	}
	if min >= 60 || sec >= 60 {
		return 0, fmt.Errorf("bad min/sec value: min=%v sec=%v", min, sec)
	}
	if deg != math.Trunc(deg) || min != math.Trunc(min) {
		return 0, fmt.Errorf("non-integer deg/min: deg=%v min=%v", deg, min)
	}

	decimal := min/60 + sec/3600
	if deg < 0 {
		return deg - decimal, nil
	}
	return deg + decimal, nil
}

// DMToDegrees converts a (degrees, decimal minutes) rotation: the fractional
// part of the minutes value carries the seconds.
func DMToDegrees(deg, min float64) (float64, error) {
	sec := (min - math.Trunc(min)) * 60
	return DMSToDegrees(deg, math.Trunc(min), sec)
}

// PackedDMSToDegrees converts the packed DDD.MMSSssss form, where the first
// two fractional digits are minutes and the rest seconds: 123.4530 means
// 123 degrees 45 minutes 30 seconds. Rotation flags and ParseRotation treat
// a single number as decimal degrees; the packed form is for callers reading
// angle fields that data collectors export packed.
func PackedDMSToDegrees(dms float64) (float64, error) {
	deg := math.Trunc(dms)
	rest := math.Abs(dms-deg) * 100
	min := math.Trunc(rest)
	sec := (rest - min) * 100
	return DMSToDegrees(deg, min, sec)
}

// ParseRotation parses a rotation given as signed decimal degrees
// ("-1.25"), signed DMS ("-1 3 45.72"), or degrees with decimal minutes
// ("-1 3.762"). The result is decimal degrees.
func ParseRotation(s string) (float64, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	badValue := fmt.Errorf("bad rotation value: %q", s)

	switch len(fields) {
	case 1:
		dec, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, badValue
		}
		return dec, nil

	case 2:
		deg, err1 := strconv.Atoi(fields[0])
		min, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return 0, badValue
		}
		dec, err := DMToDegrees(float64(deg), min)
		if err != nil {
			return 0, badValue
		}
		return dec, nil

	case 3:
		deg, err1 := strconv.Atoi(fields[0])
		min, err2 := strconv.Atoi(fields[1])
		sec, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, badValue
		}
		dec, err := DMSToDegrees(float64(deg), float64(min), sec)
		if err != nil {
			return 0, badValue
		}
		return dec, nil
	}

	return 0, badValue
}
