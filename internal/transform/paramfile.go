package transform

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// The parameter file is a small key/value record:
//
//	a0 = <real>
//	b0 = <real>
//	a1 = <real>
//	b1 = <real>
//
// Keys may appear in any order, whitespace around '=' is insignificant,
// '#' lines are comments, and unknown keys are ignored so the file can carry
// extra annotations. Loading does not validate scale > 0; that check belongs
// to Inverse and estimation so an otherwise-invalid file can still be
// inspected and edited.

var paramKeys = [4]string{"a0", "b0", "a1", "b1"}

// Marshal renders the parameter record. Values are formatted with the
// shortest representation that round-trips exactly through Unmarshal.
func (p Params) Marshal() string {
	var b strings.Builder
	b.WriteString("# similarity transform parameters a0, b0, a1, b1\n")
	fmt.Fprintf(&b, "# created %s\n", time.Now().Format(time.RFC3339))
	values := [4]float64{p.A0, p.B0, p.A1, p.B1}
	for i, key := range paramKeys {
		fmt.Fprintf(&b, "%s = %s\n", key, strconv.FormatFloat(values[i], 'g', -1, 64))
	}
	return b.String()
}

// Unmarshal parses a parameter record produced by Marshal or edited by hand.
// A missing or non-numeric required key fails with a
// MalformedParameterFileError naming that key.
func Unmarshal(text string) (Params, error) {
	found := map[string]float64{}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		required := false
		for _, k := range paramKeys {
			if key == k {
				required = true
				break
			}
		}
		if !required {
			continue
		}

		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Params{}, &MalformedParameterFileError{Key: key, Value: value}
		}
		found[key] = v
	}

	for _, key := range paramKeys {
		if _, ok := found[key]; !ok {
			return Params{}, &MalformedParameterFileError{Key: key}
		}
	}

	return Params{
		A0: found["a0"],
		B0: found["b0"],
		A1: found["a1"],
		B1: found["b1"],
	}, nil
}

// Save writes the parameter record to a file.
func (p Params) Save(path string) error {
	if err := os.WriteFile(path, []byte(p.Marshal()), 0644); err != nil {
		return fmt.Errorf("save transform parameters: %w", err)
	}
	return nil
}

// Load reads a parameter record from a file.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("load transform parameters: %w", err)
	}
	return Unmarshal(string(data))
}
