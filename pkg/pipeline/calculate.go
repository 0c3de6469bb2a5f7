package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/teamtotals/teamtotals/pkg/competition"
	"github.com/teamtotals/teamtotals/pkg/extract"
	"github.com/teamtotals/teamtotals/pkg/standings"
)

const noSelectionStatus = "No events selected."

type extraction struct {
	records   []competition.ResultRecord
	malformed []*extract.RecordError
}

// Calculate scores the included events and returns the ranked club table.
// Both formats are extracted in parallel; their records are merged IJS first.
func Calculate(ctx context.Context, events []competition.Event, opts Options) (Outcome, error) {
	log := logger(opts.Log)

	files := make(map[competition.ScoringFormat][]string)
	selected := 0
	for _, e := range events {
		if !e.Included || !opts.includes(e.Format) {
			continue
		}
		files[e.Format] = append(files[e.Format], e.SourcePath)
		selected++
	}
	if selected == 0 {
		return Outcome{Status: noSelectionStatus, State: StateEmpty}, ErrNoResults
	}

	results := make([]extraction, len(competition.Formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range competition.Formats {
		i, format := i, format
		g.Go(func() error {
			res, err := extractFormat(gctx, format, files[format], opts.Malformed, log)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return failed(err), err
	}

	out := Outcome{Records: make(map[competition.ScoringFormat]int, len(competition.Formats))}
	var records []competition.ResultRecord
	for i, format := range competition.Formats {
		out.Records[format] = len(results[i].records)
		out.Skipped += len(results[i].malformed)
		records = append(records, results[i].records...)
	}
	for i := range records {
		records[i].Club = competition.NormalizeName(records[i].Club)
	}

	clubs, err := standings.Aggregate(records, opts.Points)
	if err != nil {
		return failed(err), err
	}
	if opts.Reconcile {
		before := len(clubs)
		clubs = standings.NewReconciler(opts.MatchPolicy, opts.Threshold).Reconcile(clubs)
		log.Debugf("Reconciled %d truncated club names", before-len(clubs))
	}
	standings.Rank(clubs)

	out.Clubs = clubs
	out.Status = fmt.Sprintf("Retrieved %d IJS results and %d 6.0 results.", out.Records[competition.IJS], out.Records[competition.SixO])
	if out.Skipped > 0 {
		out.Status += fmt.Sprintf(" Skipped %d malformed records.", out.Skipped)
	}
	if len(records) == 0 {
		out.State = StateEmpty
		return out, ErrNoResults
	}
	out.State = StateOK
	log.Infof("%s", out.Status)
	return out, nil
}

func extractFormat(ctx context.Context, format competition.ScoringFormat, paths []string, policy MalformedPolicy, log Logger) (extraction, error) {
	var res extraction
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		records, malformed, err := extract.Results(path, format)
		if err != nil {
			return res, fmt.Errorf("reading %s results: %w", format, err)
		}
		if len(malformed) > 0 && policy == AbortMalformed {
			return res, malformed[0]
		}
		for _, m := range malformed {
			log.Debugf("Skipping record: %v", m)
		}
		res.records = append(res.records, records...)
		res.malformed = append(res.malformed, malformed...)
	}
	return res, nil
}

func failed(err error) Outcome {
	status := err.Error()
	var recErr *extract.RecordError
	if errors.As(err, &recErr) {
		status = "Malformed result: " + recErr.Error()
	}
	return Outcome{Status: strings.TrimSpace(status), State: StateError}
}
