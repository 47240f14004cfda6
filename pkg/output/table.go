// pkg/output/table.go

package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// TableWriter provides a fluent interface for building and displaying tables
type TableWriter struct {
	writer  *tabwriter.Writer
	headers []string
	rows    [][]string
}

// NewTableTo creates a new table writer that outputs to the specified writer
func NewTableTo(w io.Writer) *TableWriter {
	return &TableWriter{
		writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
	}
}

// WithHeaders sets the column headers for the table
func (t *TableWriter) WithHeaders(headers ...string) *TableWriter {
	t.headers = headers
	return t
}

// AddRow adds a row of data to the table
func (t *TableWriter) AddRow(values ...string) *TableWriter {
	t.rows = append(t.rows, values)
	return t
}

// Render outputs the table to the writer. The last column is not padded, so
// it may carry terminal styling without breaking alignment.
func (t *TableWriter) Render() error {
	if len(t.headers) > 0 {
		if _, err := fmt.Fprintln(t.writer, strings.Join(t.headers, "\t")); err != nil {
			return err
		}
		separators := make([]string, len(t.headers))
		for i, h := range t.headers {
			separators[i] = strings.Repeat("-", len(h))
		}
		if _, err := fmt.Fprintln(t.writer, strings.Join(separators, "\t")); err != nil {
			return err
		}
	}

	for _, row := range t.rows {
		if _, err := fmt.Fprintln(t.writer, strings.Join(row, "\t")); err != nil {
			return err
		}
	}

	return t.writer.Flush()
}
