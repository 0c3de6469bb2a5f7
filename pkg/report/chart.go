package report

import (
	"errors"
	"io"
	"math"
	"unicode/utf8"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/teamtotals/teamtotals/pkg/standings"
)

// ErrNothingToChart is returned by WriteChart for an empty table.
var ErrNothingToChart = errors.New("no clubs to chart")

const (
	chartLabelWidth = 18
	chartBarWidth   = 40
)

// WriteChart renders the top clubs (all of them when top <= 0) as a PNG bar
// chart of their total points.
func WriteChart(w io.Writer, title string, clubs []standings.ClubTotal, top int) error {
	if top > 0 && len(clubs) > top {
		clubs = clubs[:top]
	}
	if len(clubs) == 0 {
		return ErrNothingToChart
	}

	bars := make([]chart.Value, len(clubs))
	highest := 0.0
	for i, c := range clubs {
		bars[i] = chart.Value{
			Label: chartLabel(c.Club),
			Value: c.Total(),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("1f77b4"),
				StrokeColor: drawing.ColorFromHex("1f77b4"),
			},
		}
		highest = math.Max(highest, c.Total())
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    max(640, 160+len(bars)*(chartBarWidth+60)),
		Height:   480,
		BarWidth: chartBarWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(highest, 1)},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

func chartLabel(club string) string {
	if utf8.RuneCountInString(club) <= chartLabelWidth {
		return club
	}
	return string([]rune(club)[:chartLabelWidth-3]) + "..."
}
