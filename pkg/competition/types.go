// Package competition holds the shared model of a competition's result
// documents: scoring formats, events and the records extracted from them.
package competition

import "fmt"

// ScoringFormat identifies which result-document layout, and therefore which
// extraction rules, apply to an event or record.
type ScoringFormat int

const (
	// IJS protocol sheets. Files start with IJSPrefix.
	IJS ScoringFormat = iota
	// SixO (6.0) result pages. Files end with SixOSuffix.
	SixO
)

// Formats lists every supported format in merge order.
var Formats = []ScoringFormat{IJS, SixO}

func (f ScoringFormat) String() string {
	switch f {
	case IJS:
		return "IJS"
	case SixO:
		return "6.0"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Event is one scored segment of the competition, backed by one document.
type Event struct {
	Name       string
	SourcePath string
	Format     ScoringFormat
	// Included is toggled by the caller before calculation.
	Included bool
}

// ResultRecord is one (rank, club) observation taken from a document.
type ResultRecord struct {
	Rank uint64
	Club string
	// Participants is the number of ranked entries in the record's event,
	// 0 when unknown.
	Participants uint64
	Format       ScoringFormat
}
