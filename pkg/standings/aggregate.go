package standings

import (
	"fmt"

	"github.com/teamtotals/teamtotals/pkg/competition"
)

// PointsTable converts placements into points. Default[0] is the award for
// first place. ByParticipants, when set, holds one table per field size and
// takes precedence for records whose participant count it covers.
type PointsTable struct {
	Default        []float64
	ByParticipants map[uint64][]float64
}

// For returns the table that applies to an event with the given number of
// participants.
func (t PointsTable) For(participants uint64) []float64 {
	if participants > 0 && len(t.ByParticipants) > 0 {
		if table, ok := t.ByParticipants[participants]; ok {
			return table
		}
	}
	return t.Default
}

// Award returns the points for a placement. Placements beyond the end of the
// applicable table earn nothing.
func (t PointsTable) Award(rank, participants uint64) float64 {
	table := t.For(participants)
	if rank == 0 || rank > uint64(len(table)) {
		return 0
	}
	return table[rank-1]
}

// Aggregate builds one ClubTotal per distinct club, in first-seen order, and
// credits every record's points to its club under the record's format.
func Aggregate(records []competition.ResultRecord, points PointsTable) ([]ClubTotal, error) {
	index := make(map[string]int)
	clubs := make([]ClubTotal, 0)

	for _, r := range records {
		if r.Club == "" {
			return nil, fmt.Errorf("%w: record with empty club name (rank %d)", ErrInvariant, r.Rank)
		}
		if _, seen := index[r.Club]; seen {
			continue
		}
		index[r.Club] = len(clubs)
		clubs = append(clubs, NewClubTotal(r.Club))
	}

	for _, r := range records {
		i, ok := index[r.Club]
		if !ok {
			return nil, fmt.Errorf("%w: no total for club %q", ErrInvariant, r.Club)
		}
		clubs[i].add(r.Format, points.Award(r.Rank, r.Participants))
	}

	return clubs, nil
}
