package standings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/teamtotals/teamtotals/pkg/competition"
)

func sum(clubs []ClubTotal) float64 {
	var s float64
	for _, c := range clubs {
		s += c.Total()
	}
	return s
}

func TestReconcileMergesTruncatedName(t *testing.T) {
	for _, policy := range []MatchPolicy{MatchSimilarity, MatchPrefix} {
		t.Run(policy.String(), func(t *testing.T) {
			clubs := []ClubTotal{
				{Club: "Greater Metropolitan Figur...", Points: pts{competition.IJS: 2}},
				{Club: "Greater Metropolitan Figure Skating Club", Points: pts{competition.IJS: 1}},
			}

			got := NewReconciler(policy, DefaultSimilarityThreshold).Reconcile(clubs)

			want := []ClubTotal{
				{Club: "Greater Metropolitan Figure Skating Club", Points: pts{competition.IJS: 3}},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReconcileKeepsUnmatchedStandalone(t *testing.T) {
	for _, policy := range []MatchPolicy{MatchSimilarity, MatchPrefix} {
		t.Run(policy.String(), func(t *testing.T) {
			clubs := []ClubTotal{
				{Club: "Northern Lights Skati...", Points: pts{competition.SixO: 2}},
				{Club: "Ice Club", Points: pts{competition.IJS: 3}},
			}

			got := NewReconciler(policy, DefaultSimilarityThreshold).Reconcile(clubs)

			want := []ClubTotal{
				{Club: "Ice Club", Points: pts{competition.IJS: 3}},
				{Club: "Northern Lights Skati...", Points: pts{competition.SixO: 2}},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReconcileNoTruncatedNames(t *testing.T) {
	clubs := []ClubTotal{
		{Club: "Ice Club", Points: pts{competition.IJS: 3}},
		{Club: "Snow Club", Points: pts{competition.SixO: 1}},
	}
	got := NewReconciler(MatchSimilarity, DefaultSimilarityThreshold).Reconcile(clubs)
	if diff := cmp.Diff(clubs, got); diff != "" {
		t.Fatalf("reconcile should be a no-op (-want +got):\n%s", diff)
	}
}

func TestReconcilePreservesPointsAndInput(t *testing.T) {
	clubs := []ClubTotal{
		{Club: "Skating Club of Bosto...", Points: pts{competition.SixO: 4}},
		{Club: "Skating Club of Boston", Points: pts{competition.IJS: 3, competition.SixO: 1}},
		{Club: "Ice Club", Points: pts{competition.IJS: 2}},
		{Club: "Wildly Unrelated Zzzz...", Points: pts{competition.SixO: 1.5}},
		{Club: "...", Points: pts{competition.SixO: 0.5}},
	}
	before := sum(clubs)

	for _, policy := range []MatchPolicy{MatchSimilarity, MatchPrefix} {
		got := NewReconciler(policy, DefaultSimilarityThreshold).Reconcile(clubs)
		if s := sum(got); s != before {
			t.Fatalf("%s: points changed from %v to %v", policy, before, s)
		}
		if len(got) > len(clubs) {
			t.Fatalf("%s: reconcile grew the club list to %d", policy, len(got))
		}
		for _, c := range got {
			if c.Club == "" {
				t.Fatalf("%s: empty club name in %+v", policy, got)
			}
		}
	}

	if clubs[1].Points[competition.SixO] != 1 || clubs[0].Club != "Skating Club of Bosto..." {
		t.Fatalf("input was modified: %+v", clubs)
	}
}

func TestSimilarity(t *testing.T) {
	if s := Similarity("abc", "ABC"); s != 1 {
		t.Fatalf("case should be ignored, got %v", s)
	}
	if s := Similarity("ab", "cd"); s != 0 {
		t.Fatalf("disjoint sets should score 0, got %v", s)
	}
	if s := Similarity("", "abc"); s != 0 {
		t.Fatalf("empty input should score 0, got %v", s)
	}
	if s := Similarity("abcd", "ab"); s != 0.5 {
		t.Fatalf("expected 0.5, got %v", s)
	}
}

func TestParseMatchPolicy(t *testing.T) {
	for in, want := range map[string]MatchPolicy{"": MatchSimilarity, "similarity": MatchSimilarity, "Prefix": MatchPrefix} {
		got, err := ParseMatchPolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParseMatchPolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMatchPolicy("fuzzy"); err == nil {
		t.Fatal("expected an error for an unknown policy")
	}
}
