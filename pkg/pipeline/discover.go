package pipeline

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/teamtotals/teamtotals/pkg/competition"
	"github.com/teamtotals/teamtotals/pkg/extract"
)

const (
	noCompetitionStatus = "No competition found."
	noResultsStatus     = "The specified competition exists, but there are no results at this time."
)

// Discovery is the result of Discover.
type Discovery struct {
	Events []competition.Event
	Status string
	State  State
}

// Count returns the number of discovered events of one format.
func (d Discovery) Count(f competition.ScoringFormat) int {
	n := 0
	for _, e := range d.Events {
		if e.Format == f {
			n++
		}
	}
	return n
}

// Discover lists the events of the competition in dir. Events whose source
// path is in ignored are returned with Included set to false. A document
// without a recognisable event heading is left out without failing the run.
func Discover(ctx context.Context, dir string, ignored map[string]bool, log Logger) (Discovery, error) {
	log = logger(log)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Discovery{Status: noCompetitionStatus, State: StateError}, fmt.Errorf("%w: %v", ErrDiscovery, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	files := competition.Classify(dir, names)

	found := make([][]competition.Event, len(competition.Formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range competition.Formats {
		i, format := i, format
		g.Go(func() error {
			events, err := readEvents(gctx, format, files[format], log)
			found[i] = events
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Discovery{Status: err.Error(), State: StateError}, err
	}

	var events []competition.Event
	for _, list := range found {
		events = append(events, list...)
	}
	if len(events) == 0 {
		return Discovery{Status: noResultsStatus, State: StateEmpty}, ErrNoResults
	}

	competition.SortEventsByName(events)
	for i := range events {
		events[i].Name = competition.NormalizeName(events[i].Name)
		events[i].Included = !ignored[events[i].SourcePath]
	}

	d := Discovery{Events: events, State: StateOK}
	d.Status = fmt.Sprintf("Found %d IJS events and %d 6.0 events.", d.Count(competition.IJS), d.Count(competition.SixO))
	log.Infof("%s", d.Status)
	return d, nil
}

func readEvents(ctx context.Context, format competition.ScoringFormat, paths []string, log Logger) ([]competition.Event, error) {
	var events []competition.Event
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		event, ok, err := extract.ReadEvent(path, format)
		if err != nil {
			log.Warnf("Skipping %s: %v", path, err)
			continue
		}
		if !ok {
			log.Debugf("No %s event heading in %s", format, path)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}
