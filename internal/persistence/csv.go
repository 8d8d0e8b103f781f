package persistence

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"ising-mc/internal/ising"
)

// CSVHeader is the first record written by CSVWriter.
var CSVHeader = []string{"block", "step", "temperature", "field", "magnetization", "order_parameter"}

// CSVWriter appends one row per sample.
type CSVWriter struct {
	w      *csv.Writer
	closer io.Closer
}

// NewCSVWriter writes the header to w and returns a writer for the rows.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := &CSVWriter{w: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		cw.closer = c
	}
	if err := cw.w.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return cw, nil
}

// CreateCSV creates (or truncates) path and returns a writer for it.
func CreateCSV(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv: %w", err)
	}
	cw, err := NewCSVWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return cw, nil
}

// WriteSample appends one row.
func (c *CSVWriter) WriteSample(s ising.Sample) error {
	return c.w.Write([]string{
		strconv.Itoa(s.Block),
		strconv.Itoa(s.Step),
		formatFloat(s.Temperature),
		formatFloat(s.Field),
		formatFloat(s.Magnetization),
		formatFloat(s.OrderParameter),
	})
}

// Flush writes buffered rows to the underlying writer.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// Close flushes and closes the underlying file when the writer owns one.
func (c *CSVWriter) Close() error {
	err := c.Flush()
	if c.closer != nil {
		if cerr := c.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
