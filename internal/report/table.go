package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/charfang/charfang/pkg/authorship"
)

// WriteTable renders rows as an aligned terminal table.
func WriteTable(w io.Writer, rows []authorship.Row) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	header := make(table.Row, len(csvHeader))
	for i, col := range csvHeader {
		header[i] = col
	}

	tbl.AppendHeader(header)

	totals := authorship.Row{Author: "total"}

	for _, row := range rows {
		tbl.AppendRow(table.Row{
			row.Author,
			row.Email,
			row.Commits,
			row.AddedLines,
			row.DeletedLines,
			row.AddedPlusDeleted,
			row.NetLines,
			row.AddedChars,
			row.DeletedChars,
			row.ModifiedChars,
			row.AddedOrModifiedChars,
			row.NetChars,
		})

		totals.Commits += row.Commits
		totals.AddedLines += row.AddedLines
		totals.DeletedLines += row.DeletedLines
		totals.AddedPlusDeleted += row.AddedPlusDeleted
		totals.NetLines += row.NetLines
		totals.AddedChars += row.AddedChars
		totals.DeletedChars += row.DeletedChars
		totals.ModifiedChars += row.ModifiedChars
		totals.AddedOrModifiedChars += row.AddedOrModifiedChars
		totals.NetChars += row.NetChars
	}

	tbl.AppendFooter(table.Row{
		totals.Author,
		fmt.Sprintf("%d authors", len(rows)),
		totals.Commits,
		totals.AddedLines,
		totals.DeletedLines,
		totals.AddedPlusDeleted,
		totals.NetLines,
		totals.AddedChars,
		totals.DeletedChars,
		totals.ModifiedChars,
		totals.AddedOrModifiedChars,
		totals.NetChars,
	})

	tbl.Render()

	return nil
}
