// Package report writes StatRows as comma-separated text.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/naka-gawa/pr-stats/internal/domain"
)

// CSVWriter streams rows to an io.Writer. The header is written before the
// first row and every row is flushed immediately.
type CSVWriter struct {
	w             *csv.Writer
	headerWritten bool
}

// NewCSVWriter creates a CSVWriter on out.
func NewCSVWriter(out io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(out)}
}

// WriteRow writes row, preceded by the header on the first call.
func (c *CSVWriter) WriteRow(row domain.StatRow) error {
	if !c.headerWritten {
		if err := c.w.Write(row.Header()); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		c.headerWritten = true
	}
	if err := c.w.Write(row.Values()); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	c.w.Flush()
	return c.w.Error()
}
