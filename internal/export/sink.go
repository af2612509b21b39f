// Package export writes report rows to delimited files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives report rows in place of the caller.
type Sink interface {
	Write(name string, fields []string, rows []map[string]string) error
}

// CSVSink writes one CSV file per report into Dir. Files are written in
// place; a failed write can leave a partial file behind.
type CSVSink struct {
	Dir string
}

var _ Sink = (*CSVSink)(nil)

func NewCSVSink(dir string) *CSVSink {
	if dir == "" {
		dir = "."
	}
	return &CSVSink{Dir: dir}
}

// Path returns where a file with the given name ends up.
func (s *CSVSink) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Write emits a header line with fields, then one line per row with values in
// the same order. Missing keys are written as empty cells.
func (s *CSVSink) Write(name string, fields []string, rows []map[string]string) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	f, err := os.Create(s.Path(name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.UseCRLF = true

	if err := w.Write(fields); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(fields))
	for _, row := range rows {
		for i, field := range fields {
			record[i] = row[field]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return f.Close()
}
