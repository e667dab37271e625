package transform

import "fmt"

// InvalidParameterError reports estimation input that is insufficient or
// degenerate: too few links, coincident local points, or a non-positive
// scale.
type InvalidParameterError struct {
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return "invalid transform parameters: " + e.Reason
}

// DegenerateTransformError reports an attempt to invert a zero-scale
// transform. Estimation never produces one; it is reachable only through an
// externally supplied parameter file.
type DegenerateTransformError struct {
	Params Params
}

func (e *DegenerateTransformError) Error() string {
	return fmt.Sprintf("degenerate transform: a1=%v b1=%v has zero scale", e.Params.A1, e.Params.B1)
}

// MirroredTransformError reports that the best-fit rigid rotation for the
// given links is a reflection. Survey control that produces one is almost
// always a swapped northing/easting somewhere.
type MirroredTransformError struct{}

func (e *MirroredTransformError) Error() string {
	return "best-fit rotation is mirrored (negative determinant)"
}

// MalformedParameterFileError reports a persisted parameter record with a
// missing or unparsable required field.
type MalformedParameterFileError struct {
	Key   string
	Value string // empty when the key is missing entirely
}

func (e *MalformedParameterFileError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("malformed parameter file: missing key %q", e.Key)
	}
	return fmt.Sprintf("malformed parameter file: key %q has non-numeric value %q", e.Key, e.Value)
}
