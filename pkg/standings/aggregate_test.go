package standings

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/teamtotals/teamtotals/pkg/competition"
)

type pts = map[competition.ScoringFormat]float64

func TestAggregateScenario(t *testing.T) {
	records := []competition.ResultRecord{
		{Rank: 1, Club: "Ice Club", Format: competition.IJS},
		{Rank: 2, Club: "Ice Club", Format: competition.IJS},
	}

	got, err := Aggregate(records, PointsTable{Default: []float64{3, 2, 1}})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	want := []ClubTotal{{Club: "Ice Club", Points: pts{competition.IJS: 5}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected totals (-want +got):\n%s", diff)
	}
	if _, ok := got[0].PointsFor(competition.SixO); ok {
		t.Fatal("club without 6.0 records must report no 6.0 points")
	}
}

func TestAggregateSingleRecord(t *testing.T) {
	table := []float64{5, 3, 2, 1}
	for rank := uint64(1); rank <= uint64(len(table))+2; rank++ {
		records := []competition.ResultRecord{{Rank: rank, Club: "Solo", Format: competition.SixO}}
		got, err := Aggregate(records, PointsTable{Default: table})
		if err != nil {
			t.Fatalf("rank %d: %v", rank, err)
		}
		want := 0.0
		if rank <= uint64(len(table)) {
			want = table[rank-1]
		}
		if got[0].Total() != want {
			t.Fatalf("rank %d: total %v, want %v", rank, got[0].Total(), want)
		}
		// Even an unscored placement is a record in that format.
		if _, ok := got[0].PointsFor(competition.SixO); !ok {
			t.Fatalf("rank %d: expected a 6.0 entry", rank)
		}
	}
}

func TestAggregateFirstSeenOrderAndFormats(t *testing.T) {
	records := []competition.ResultRecord{
		{Rank: 3, Club: "B", Format: competition.IJS},
		{Rank: 1, Club: "A", Format: competition.SixO},
		{Rank: 1, Club: "B", Format: competition.SixO},
		{Rank: 2, Club: "A", Format: competition.IJS},
	}

	got, err := Aggregate(records, PointsTable{Default: []float64{3, 2, 1}})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := []ClubTotal{
		{Club: "B", Points: pts{competition.IJS: 1, competition.SixO: 3}},
		{Club: "A", Points: pts{competition.SixO: 3, competition.IJS: 2}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected totals (-want +got):\n%s", diff)
	}
}

func TestAggregateByParticipants(t *testing.T) {
	table := PointsTable{
		Default: []float64{3, 2, 1},
		ByParticipants: map[uint64][]float64{
			2: {10, 5},
			4: {7, 5, 3, 1},
		},
	}
	records := []competition.ResultRecord{
		{Rank: 1, Club: "A", Participants: 2, Format: competition.IJS},
		{Rank: 3, Club: "A", Participants: 2, Format: competition.IJS},
		{Rank: 4, Club: "B", Participants: 4, Format: competition.IJS},
		{Rank: 1, Club: "C", Participants: 9, Format: competition.IJS},
	}

	got, err := Aggregate(records, table)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := []ClubTotal{
		{Club: "A", Points: pts{competition.IJS: 10}},
		{Club: "B", Points: pts{competition.IJS: 1}},
		{Club: "C", Points: pts{competition.IJS: 3}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected totals (-want +got):\n%s", diff)
	}
}

func TestAggregateRejectsEmptyClub(t *testing.T) {
	_, err := Aggregate([]competition.ResultRecord{{Rank: 1}}, PointsTable{Default: []float64{1}})
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
}
