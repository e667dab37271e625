// Package pnezd reads and writes PNEZD coordinate files, the
// comma-separated Point,Northing,Easting,Z,Description format that survey
// data collectors exchange.
package pnezd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Record is one PNEZD point. Northing comes before easting in the file, the
// opposite of the (x, y) order used everywhere else.
type Record struct {
	Name        string
	Northing    float64
	Easting     float64
	Elevation   float64
	Description string
}

// RecordError reports a single malformed record. A bad record never aborts
// the batch; callers decide whether any errors are acceptable.
type RecordError struct {
	Line   int
	Text   string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("pnezd line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Parse reads PNEZD records, skipping blank lines and '#' comments. Records
// that fail validation are returned as RecordErrors alongside the records
// that parsed; only an I/O failure is returned as err.
func Parse(r io.Reader) (records []Record, recordErrs []*RecordError, err error) {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			recordErrs = append(recordErrs, &RecordError{
				Line: lineNum, Text: line,
				Reason: fmt.Sprintf("want 5 fields, got %d", len(fields)),
			})
			continue
		}

		rec := Record{
			Name:        strings.TrimSpace(fields[0]),
			Description: strings.TrimSpace(fields[4]),
		}
		if rec.Name == "" {
			recordErrs = append(recordErrs, &RecordError{Line: lineNum, Text: line, Reason: "empty point name"})
			continue
		}

		coords := [3]*float64{&rec.Northing, &rec.Easting, &rec.Elevation}
		names := [3]string{"northing", "easting", "elevation"}
		bad := false
		for i, dst := range coords {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i+1]), 64)
			if err != nil {
				recordErrs = append(recordErrs, &RecordError{
					Line: lineNum, Text: line,
					Reason: fmt.Sprintf("bad %s value %q", names[i], strings.TrimSpace(fields[i+1])),
				})
				bad = true
				break
			}
			*dst = v
		}
		if bad {
			continue
		}

		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read pnezd: %w", err)
	}
	return records, recordErrs, nil
}

// ParseFile reads a PNEZD file from disk.
func ParseFile(path string) ([]Record, []*RecordError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open pnezd file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Write renders records in the standard layout with four decimal places on
// coordinates.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := fmt.Fprintf(bw, "%s,%.4f,%.4f,%.4f,%s\n",
			rec.Name, rec.Northing, rec.Easting, rec.Elevation, rec.Description); err != nil {
			return fmt.Errorf("write pnezd: %w", err)
		}
	}
	return bw.Flush()
}

// WriteFile writes records to a PNEZD file on disk.
func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pnezd file: %w", err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
