package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/charfang/charfang/pkg/authorship"
)

// csvHeader is the column contract consumers parse. Order and spelling
// are load-bearing; do not reorder.
var csvHeader = []string{
	"author",
	"email",
	"commits",
	"added_lines",
	"deleted_lines",
	"added+deleted_lines",
	"net_lines",
	"added_chars",
	"deleted_chars",
	"modified_chars",
	"added_or_modified_chars",
	"net_chars",
}

// WriteCSV renders rows as CSV with the fixed header.
func WriteCSV(w io.Writer, rows []authorship.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Author,
			row.Email,
			strconv.Itoa(row.Commits),
			strconv.Itoa(row.AddedLines),
			strconv.Itoa(row.DeletedLines),
			strconv.Itoa(row.AddedPlusDeleted),
			strconv.Itoa(row.NetLines),
			strconv.Itoa(row.AddedChars),
			strconv.Itoa(row.DeletedChars),
			strconv.Itoa(row.ModifiedChars),
			strconv.Itoa(row.AddedOrModifiedChars),
			strconv.Itoa(row.NetChars),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row for %q: %w", row.Author, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
