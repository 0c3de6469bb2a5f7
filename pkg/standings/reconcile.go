package standings

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// TruncationMarker ends every club name the 6.0 layout cut short.
	TruncationMarker = "..."
	// TruncationWidth is the number of characters the 6.0 layout keeps.
	TruncationWidth = 21
	// DefaultSimilarityThreshold is the lowest similarity accepted as a match.
	DefaultSimilarityThreshold = 0.66
)

// MatchPolicy selects how a truncated name is paired with a full one.
type MatchPolicy int

const (
	// MatchSimilarity accepts the most similar full name whose character-set
	// similarity reaches the threshold.
	MatchSimilarity MatchPolicy = iota
	// MatchPrefix accepts the first full name that agrees with the truncated
	// one up to the shorter of the two.
	MatchPrefix
)

func (p MatchPolicy) String() string {
	switch p {
	case MatchSimilarity:
		return "similarity"
	case MatchPrefix:
		return "prefix"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParseMatchPolicy parses "similarity" or "prefix".
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "similarity":
		return MatchSimilarity, nil
	case "prefix":
		return MatchPrefix, nil
	}
	return 0, fmt.Errorf("unknown match policy %q (want similarity or prefix)", s)
}

// Reconciler folds clubs whose name was truncated by the 6.0 layout into the
// matching full-name club.
type Reconciler struct {
	Policy    MatchPolicy
	Threshold float64
	// Width and Marker default to TruncationWidth and TruncationMarker.
	Width  int
	Marker string
}

// NewReconciler returns a Reconciler using the standard truncation layout.
func NewReconciler(policy MatchPolicy, threshold float64) Reconciler {
	return Reconciler{
		Policy:    policy,
		Threshold: threshold,
		Width:     TruncationWidth,
		Marker:    TruncationMarker,
	}
}

// Reconcile returns a new club list in which every truncated club has either
// been merged into its full-name counterpart or kept on its own with the
// marker still attached. Points are only moved, never created or dropped, and
// the input is left untouched.
func (r Reconciler) Reconcile(clubs []ClubTotal) []ClubTotal {
	marker := r.Marker
	if marker == "" {
		marker = TruncationMarker
	}
	width := r.Width
	if width <= 0 {
		width = TruncationWidth
	}

	var intact, truncated []ClubTotal
	for _, c := range clubs {
		c = c.clone()
		if strings.HasSuffix(c.Club, marker) {
			c.Club = strings.TrimSuffix(c.Club, marker)
			truncated = append(truncated, c)
			continue
		}
		intact = append(intact, c)
	}
	if len(truncated) == 0 {
		return intact
	}

	comparisons := make([]string, len(intact))
	for i, c := range intact {
		comparisons[i] = truncateRunes(c.Club, width)
	}

	var standalone []ClubTotal
	for _, t := range truncated {
		i := r.match(t.Club, intact, comparisons, width)
		if i < 0 {
			t.Club += marker
			standalone = append(standalone, t)
			continue
		}
		for f, p := range t.Points {
			intact[i].add(f, p)
		}
	}

	return append(intact, standalone...)
}

func (r Reconciler) match(stem string, intact []ClubTotal, comparisons []string, width int) int {
	if stem == "" {
		return -1
	}

	if r.Policy == MatchPrefix {
		for i, cmp := range comparisons {
			if strings.HasPrefix(cmp, stem) {
				return i
			}
			if utf8.RuneCountInString(intact[i].Club) > width && strings.HasPrefix(stem, cmp) {
				return i
			}
		}
		return -1
	}

	best, bestScore := -1, 0.0
	for i, cmp := range comparisons {
		score := Similarity(stem, cmp)
		if score >= r.Threshold && score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// Similarity is the Jaccard index of the case-folded character sets of a and b.
func Similarity(a, b string) float64 {
	setA, setB := runeSet(a), runeSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for r := range setA {
		if setB[r] {
			shared++
		}
	}
	return float64(shared) / float64(len(setA)+len(setB)-shared)
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[unicode.ToLower(r)] = true
	}
	return set
}

func truncateRunes(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}
