// Package pipeline is the entry point of the results engine. Discover lists
// the events of a competition directory; Calculate turns a selection of those
// events into the ranked club table.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teamtotals/teamtotals/pkg/competition"
	"github.com/teamtotals/teamtotals/pkg/standings"
)

var (
	// ErrDiscovery means the competition directory could not be read.
	ErrDiscovery = errors.New("competition directory unavailable")
	// ErrNoResults means there was nothing to score. It is not a failure:
	// the accompanying state is StateEmpty.
	ErrNoResults = errors.New("no results")
	// ErrInvariant is returned when aggregation finds state an earlier stage
	// should have ruled out.
	ErrInvariant = standings.ErrInvariant
)

// Logger abstracts logging so callers can pass logrus or any other logger
// that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

func logger(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}

// State tells callers how to present an outcome.
type State int

const (
	StateOK State = iota
	// StateEmpty is the neutral "nothing to show" state.
	StateEmpty
	StateError
)

func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MalformedPolicy decides what a record with an unreadable rank does to the run.
type MalformedPolicy int

const (
	// SkipMalformed drops the record, counts it and carries on.
	SkipMalformed MalformedPolicy = iota
	// AbortMalformed fails the whole calculation.
	AbortMalformed
)

func (p MalformedPolicy) String() string {
	if p == AbortMalformed {
		return "abort"
	}
	return "skip"
}

// ParseMalformedPolicy parses "skip" or "abort".
func ParseMalformedPolicy(s string) (MalformedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return SkipMalformed, nil
	case "abort":
		return AbortMalformed, nil
	}
	return 0, fmt.Errorf("unknown malformed record policy %q (want skip or abort)", s)
}

// Options is the complete configuration of one calculation. It is read, never
// modified.
type Options struct {
	Points standings.PointsTable

	IncludeIJS  bool
	IncludeSixO bool

	Reconcile   bool
	MatchPolicy standings.MatchPolicy
	Threshold   float64

	Malformed MalformedPolicy

	Log Logger // optional; nil = no logging
}

// DefaultOptions scores both formats with the 3-2-1 table and repairs
// truncated names by similarity.
func DefaultOptions() Options {
	return Options{
		Points:      standings.PointsTable{Default: []float64{3, 2, 1}},
		IncludeIJS:  true,
		IncludeSixO: true,
		Reconcile:   true,
		MatchPolicy: standings.MatchSimilarity,
		Threshold:   standings.DefaultSimilarityThreshold,
	}
}

func (o Options) includes(f competition.ScoringFormat) bool {
	switch f {
	case competition.IJS:
		return o.IncludeIJS
	case competition.SixO:
		return o.IncludeSixO
	}
	return false
}

// Outcome is the result of Calculate. Clubs is ordered by total points,
// highest first; a club's place is its index plus one.
type Outcome struct {
	Clubs  []standings.ClubTotal
	Status string
	State  State

	// Records counts the results extracted per format.
	Records map[competition.ScoringFormat]int
	// Skipped counts records dropped under SkipMalformed.
	Skipped int
}
