package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teamtotals/teamtotals/pkg/competition"
)

// IJSResults scans a protocol sheet's cells forward. A rank cell followed
// directly by a name cell yields one record; any other arrangement is skipped.
func IJSResults(cells []Cell) ([]competition.ResultRecord, []*RecordError) {
	var (
		records   []competition.ResultRecord
		malformed []*RecordError
	)

	for i, c := range cells {
		if c.Kind != CellRank || i+1 >= len(cells) || cells[i+1].Kind != CellName {
			continue
		}
		club, ok := clubSegment(cells[i+1].Text)
		if !ok {
			continue
		}
		rank, err := parseRank(c.Text)
		if err != nil {
			malformed = append(malformed, &RecordError{Cell: i, Text: c.Text})
			continue
		}
		records = append(records, competition.ResultRecord{
			Rank:   rank,
			Club:   club,
			Format: competition.IJS,
		})
	}

	setParticipants(records)
	return records, malformed
}

// SixOResults scans a 6.0 page's cells. The competitor cell is recognised by
// its span markers and its placement sits in the cell before it as "N.".
// Team entries and unranked competitors produce no record.
func SixOResults(cells []Cell) ([]competition.ResultRecord, []*RecordError) {
	var (
		records   []competition.ResultRecord
		malformed []*RecordError
	)

	for i, c := range cells {
		if c.Kind != CellSpan || c.Break || i == 0 {
			continue
		}
		club, ok := clubSegment(c.Text)
		if !ok {
			continue
		}

		rankText := strings.TrimSpace(strings.TrimSuffix(cells[i-1].Text, "."))
		if rankText == "" {
			continue
		}
		rank, err := parseRank(rankText)
		if err != nil {
			malformed = append(malformed, &RecordError{Cell: i - 1, Text: cells[i-1].Text})
			continue
		}
		records = append(records, competition.ResultRecord{
			Rank:   rank,
			Club:   club,
			Format: competition.SixO,
		})
	}

	setParticipants(records)
	return records, malformed
}

// Results reads one result file and extracts its records with the rules of
// the given format. Only I/O and parse failures are returned as error;
// unreadable placements come back as RecordErrors.
func Results(path string, format competition.ScoringFormat) ([]competition.ResultRecord, []*RecordError, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, nil, err
	}

	cells := Cells(doc)
	var (
		records   []competition.ResultRecord
		malformed []*RecordError
	)
	switch format {
	case competition.IJS:
		records, malformed = IJSResults(cells)
	case competition.SixO:
		records, malformed = SixOResults(cells)
	default:
		return nil, nil, fmt.Errorf("no extractor for %s", format)
	}

	for _, m := range malformed {
		m.Path = path
	}
	return records, malformed, nil
}

// clubSegment returns the club part of a "surname, club" cell.
func clubSegment(text string) (string, bool) {
	parts := strings.Split(text, ", ")
	if len(parts) < 2 {
		return "", false
	}
	club := strings.TrimSpace(parts[1])
	return club, club != ""
}

func parseRank(text string) (uint64, error) {
	rank, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, err
	}
	if rank == 0 {
		return 0, fmt.Errorf("rank must be at least 1")
	}
	return rank, nil
}

func setParticipants(records []competition.ResultRecord) {
	n := uint64(len(records))
	for i := range records {
		records[i].Participants = n
	}
}
