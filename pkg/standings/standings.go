// Package standings turns extracted result records into the ranked club table:
// points aggregation, repair of truncated club names and the final ordering.
package standings

import (
	"errors"

	"github.com/teamtotals/teamtotals/pkg/competition"
)

// ErrInvariant reports state that earlier stages should have made impossible.
var ErrInvariant = errors.New("internal invariant violated")

// ClubTotal is the accumulated points of one club across all included events.
type ClubTotal struct {
	Club string
	// Points has one entry per format that produced at least one record for
	// the club. A missing entry means "no record"; 0 means "scored nothing".
	Points map[competition.ScoringFormat]float64
}

// NewClubTotal returns an empty total for club.
func NewClubTotal(club string) ClubTotal {
	return ClubTotal{Club: club, Points: make(map[competition.ScoringFormat]float64)}
}

// PointsFor returns the club's points for one format and whether the club has
// any record in that format.
func (c ClubTotal) PointsFor(f competition.ScoringFormat) (float64, bool) {
	p, ok := c.Points[f]
	return p, ok
}

// Total sums the points of every format, absent formats counting as zero.
func (c ClubTotal) Total() float64 {
	var total float64
	for _, p := range c.Points {
		total += p
	}
	return total
}

func (c *ClubTotal) add(f competition.ScoringFormat, points float64) {
	if c.Points == nil {
		c.Points = make(map[competition.ScoringFormat]float64)
	}
	c.Points[f] += points
}

func (c ClubTotal) clone() ClubTotal {
	out := ClubTotal{Club: c.Club, Points: make(map[competition.ScoringFormat]float64, len(c.Points))}
	for f, p := range c.Points {
		out.Points[f] = p
	}
	return out
}
