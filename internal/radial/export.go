package radial

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Header is the column row written by WriteCSV.
var Header = []string{"R", "avg", "samples"}

// WriteCSV writes the profile as a table with columns R, avg, samples, one
// row per point. NaN averages are written as empty cells.
func WriteCSV(w io.Writer, p Profile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write profile header: %w", err)
	}
	for _, pt := range p {
		avg := ""
		if !math.IsNaN(pt.Avg) {
			avg = strconv.FormatFloat(pt.Avg, 'f', -1, 64)
		}
		row := []string{strconv.Itoa(pt.R), avg, strconv.Itoa(pt.Samples)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write profile row r=%d: %w", pt.R, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush profile: %w", err)
	}
	return nil
}

// ReadCSV parses a table written by WriteCSV. Empty avg cells read back as NaN.
func ReadCSV(r io.Reader) (Profile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("profile table has no header")
	}

	p := make(Profile, 0, len(rows)-1)
	for i, row := range rows[1:] {
		radius, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid R %q: %w", i+1, row[0], err)
		}
		avg := math.NaN()
		if row[1] != "" {
			if avg, err = strconv.ParseFloat(row[1], 64); err != nil {
				return nil, fmt.Errorf("row %d: invalid avg %q: %w", i+1, row[1], err)
			}
		}
		n, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid samples %q: %w", i+1, row[2], err)
		}
		p = append(p, Point{R: radius, Avg: avg, Samples: n})
	}
	return p, nil
}
