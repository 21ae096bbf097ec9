package report

import (
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/charfang/charfang/pkg/authorship"
)

// PrintSummary writes a short colored run summary, meant for stderr so
// it never pollutes machine-readable output on stdout.
func PrintSummary(w io.Writer, rows []authorship.Row, commits int, elapsed time.Duration) {
	var totalChars int64
	for _, row := range rows {
		totalChars += int64(row.AddedOrModifiedChars)
	}

	green := color.New(color.FgGreen)
	green.Fprintf(w, "processed %s commits from %s authors in %s\n",
		humanize.Comma(int64(commits)),
		humanize.Comma(int64(len(rows))),
		elapsed.Round(time.Millisecond),
	)
	green.Fprintf(w, "attributed %s added or modified characters\n",
		humanize.Comma(totalChars),
	)
}
