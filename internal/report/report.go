// Package report renders authorship rows in the supported output
// formats: csv, table, yaml and plot.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/charfang/charfang/pkg/authorship"
)

// ErrUnknownFormat is returned for format strings Write cannot render.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects an output renderer.
type Format string

// Supported output formats.
const (
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatPlot  Format = "plot"
)

// ParseFormat validates a format string from flags or config.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatTable, FormatYAML, FormatPlot:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write renders rows to w in the given format.
func Write(w io.Writer, format Format, rows []authorship.Row) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatTable:
		return WriteTable(w, rows)
	case FormatYAML:
		return WriteYAML(w, rows)
	case FormatPlot:
		return WritePlot(w, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
