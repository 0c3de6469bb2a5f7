package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/teamtotals/teamtotals/pkg/competition"
	"github.com/teamtotals/teamtotals/pkg/standings"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "teamtotals.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	clubs := []standings.ClubTotal{
		{Club: "Ice Club", Points: map[competition.ScoringFormat]float64{competition.IJS: 3, competition.SixO: 2}},
		{Club: "Snow Club", Points: map[competition.ScoringFormat]float64{competition.SixO: 0}},
	}
	id, err := db.SaveRun(ctx, "/comp/autumn", "Retrieved 1 IJS results and 2 6.0 results.", clubs)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := db.RunStandings(ctx, id)
	require.NoError(t, err)
	if diff := cmp.Diff(clubs, got); diff != "" {
		t.Fatalf("standings changed in storage (-want +got):\n%s", diff)
	}
	_, ok := got[1].PointsFor(competition.IJS)
	require.False(t, ok, "absent points must stay absent")
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	runs, err := db.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, runs)

	first, err := db.SaveRun(ctx, "/comp/a", "first", []standings.ClubTotal{standings.NewClubTotal("Ice Club")})
	require.NoError(t, err)
	second, err := db.SaveRun(ctx, "/comp/b", "second", nil)
	require.NoError(t, err)

	runs, err = db.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, second, runs[0].ID)
	require.Equal(t, 0, runs[0].Clubs)
	require.Equal(t, first, runs[1].ID)
	require.Equal(t, "/comp/a", runs[1].Directory)
	require.Equal(t, 1, runs[1].Clubs)
	require.False(t, runs[1].CreatedAt.IsZero())

	runs, err = db.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestRunStandingsUnknownRun(t *testing.T) {
	_, err := openTestDB(t).RunStandings(context.Background(), 42)
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestIgnoredEvents(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, db.SetEventIgnored(ctx, "/comp/SEGM001.htm", true))
	require.NoError(t, db.SetEventIgnored(ctx, "/comp/SEGM001.htm", true))
	require.NoError(t, db.SetEventIgnored(ctx, "/comp/002c1.htm", true))

	ignored, err := db.IgnoredEvents(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"/comp/SEGM001.htm": true, "/comp/002c1.htm": true}, ignored)

	require.NoError(t, db.SetEventIgnored(ctx, "/comp/SEGM001.htm", false))
	ignored, err = db.IgnoredEvents(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"/comp/002c1.htm": true}, ignored)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "teamtotals.sqlite")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.SetEventIgnored(ctx, "/comp/SEGM001.htm", true))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	ignored, err := db.IgnoredEvents(ctx)
	require.NoError(t, err)
	require.True(t, ignored["/comp/SEGM001.htm"])
}
