package competition

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortEventsByName orders events by name, comparing embedded integers
// numerically so that "Event 2" sorts before "Event 10". The sort is stable.
func SortEventsByName(events []Event) {
	c := collate.New(language.Und, collate.Numeric)
	sort.SliceStable(events, func(i, j int) bool {
		return c.CompareString(events[i].Name, events[j].Name) < 0
	})
}
