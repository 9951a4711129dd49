// Package report serializes firing solutions into the flat files downstream tools read:
// a trajectory CSV, a Prolog fact record and a PNG plot.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rangecard/backend/internal/ballistics"
)

var csvHeader = []string{"x", "y", "time"}

// WriteCSV writes an "x,y,time" header followed by one row per point, six decimals each.
func WriteCSV(w io.Writer, points []ballistics.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{fixed6(p.X), fixed6(p.Y), fixed6(p.Time)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the CSV to path, creating parent directories.
func WriteCSVFile(path string, points []ballistics.Point) error {
	return writeFile(path, func(w io.Writer) error { return WriteCSV(w, points) })
}

func fixed6(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not open %s for writing: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
