package standings

import "sort"

// Rank orders clubs by total points, highest first. A club's position in the
// sorted slice, counted from 1, is its place in the standings.
func Rank(clubs []ClubTotal) {
	sort.SliceStable(clubs, func(i, j int) bool {
		return clubs[i].Total() > clubs[j].Total()
	})
}
