// Package report renders a ranked club table for people: a plain-text table,
// an Excel workbook, a self-refreshing HTML page and a PNG bar chart.
package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/teamtotals/teamtotals/pkg/competition"
	"github.com/teamtotals/teamtotals/pkg/standings"
)

// WriteText writes clubs as an aligned table. Clubs must already be ranked.
func WriteText(w io.Writer, clubs []standings.ClubTotal) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "RANK\tCLUB\tIJS\t6.0\tTOTAL\t")
	for i, c := range clubs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", i+1, c.Club,
			formatPoints(c, competition.IJS), formatPoints(c, competition.SixO), FormatFloat(c.Total()))
	}
	return tw.Flush()
}

// FormatFloat prints points without trailing zeros.
func FormatFloat(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func formatPoints(c standings.ClubTotal, f competition.ScoringFormat) string {
	p, ok := c.PointsFor(f)
	if !ok {
		return "-"
	}
	return FormatFloat(p)
}
