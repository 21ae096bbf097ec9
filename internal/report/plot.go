package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/charfang/charfang/pkg/authorship"
)

// maxPlottedAuthors bounds the bar chart width; rows arrive sorted by
// char weight so the cut keeps the heaviest contributors.
const maxPlottedAuthors = 30

const stackName = "chars"

// WritePlot renders an HTML page with a stacked bar chart of character
// contributions per author.
func WritePlot(w io.Writer, rows []authorship.Row) error {
	if len(rows) > maxPlottedAuthors {
		rows = rows[:maxPlottedAuthors]
	}

	names := make([]string, len(rows))
	modified := make([]opts.BarData, len(rows))
	added := make([]opts.BarData, len(rows))

	for i, row := range rows {
		names[i] = row.Author
		modified[i] = opts.BarData{Value: row.ModifiedChars}
		added[i] = opts.BarData{Value: row.AddedChars}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Character contributions by author",
			Subtitle: "modified and added characters, heaviest first",
		}),
	)

	bar.SetXAxis(names).
		AddSeries("modified_chars", modified).
		AddSeries("added_chars", added).
		SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: stackName}))

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	return nil
}
