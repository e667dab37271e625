package transform

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Links and weights files are tab-separated. A links line is either
// "x0 y0 x1 y1" or "name x0 y0 x1 y1"; a weights line is "w" or "name w".
// Unnamed lines are numbered 01, 02, ... in file order, and a weights file
// must name links in the same order as the links file it accompanies.

// ReadLinksFile reads displacement links from a tab-separated file.
func ReadLinksFile(path string) ([]Link, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open links file: %w", err)
	}
	defer f.Close()

	var links []Link
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) == 4 {
			fields = append([]string{fmt.Sprintf("%02d", len(links)+1)}, fields...)
		}
		if len(fields) != 5 {
			return nil, fmt.Errorf("links file line %d: bad links data: %q", lineNum, line)
		}

		var coords [4]float64
		for i := range coords {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("links file line %d: bad coordinate %q", lineNum, fields[i+1])
			}
			coords[i] = v
		}

		links = append(links, Link{
			Name:   strings.TrimSpace(fields[0]),
			Local:  Point{X: coords[0], Y: coords[1]},
			Target: Point{X: coords[2], Y: coords[3]},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read links file: %w", err)
	}
	return links, nil
}

// ReadWeightsFile reads per-link weights, checking them against the link
// names so a reordered weights file is caught instead of silently applied.
func ReadWeightsFile(path string, links []Link) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open weights file: %w", err)
	}
	defer f.Close()

	var weights []float64
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) == 1 {
			fields = append([]string{fmt.Sprintf("%02d", len(weights)+1)}, fields...)
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("weights file line %d: bad weights data: %q", lineNum, line)
		}

		w, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("weights file line %d: bad weight %q", lineNum, fields[1])
		}

		i := len(weights)
		if i >= len(links) {
			return nil, fmt.Errorf("weights file has more entries than links (%d)", len(links))
		}
		if name := strings.TrimSpace(fields[0]); name != links[i].Name {
			return nil, fmt.Errorf("weights file line %d: name %q does not match link %q", lineNum, name, links[i].Name)
		}
		weights = append(weights, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read weights file: %w", err)
	}
	if len(weights) != len(links) {
		return nil, fmt.Errorf("weights file has %d entries for %d links", len(weights), len(links))
	}
	return weights, nil
}
