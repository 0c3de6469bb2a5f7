package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamtotals/teamtotals/internal/config"
	"github.com/teamtotals/teamtotals/internal/utils"
	"github.com/teamtotals/teamtotals/pkg/competition"
	"github.com/teamtotals/teamtotals/pkg/pipeline"
	"github.com/teamtotals/teamtotals/pkg/pointschart"
	"github.com/teamtotals/teamtotals/pkg/report"
	"github.com/teamtotals/teamtotals/pkg/standings"
)

const successStatus = "Results Successfully Calculated"

// totalsCmd represents the totals command
var totalsCmd = &cobra.Command{
	Use:   "totals <competition>",
	Short: "Calculate the club standings of a competition",
	Long: `Scores every included event of a competition and prints the club standings.
Reports (xlsx, html, txt, png chart) are written to the output directory as configured
or as requested with flags, and the standings are saved to the history database.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		if err := applyTotalsFlags(cmd, &s); err != nil {
			return err
		}

		ctx := cmd.Context()
		d, dir, ok, err := discover(ctx, s, args[0])
		if err != nil || !ok {
			return err
		}

		exclude, _ := cmd.Flags().GetStringSlice("exclude")
		if err := excludeEvents(d.Events, exclude); err != nil {
			return err
		}

		var chart map[uint64][]float64
		if s.PointsChartPath != "" {
			if chart, err = pointschart.Read(s.PointsChartPath); err != nil {
				return err
			}
			utils.Log.Debugf("Loaded points chart for %d field sizes", len(chart))
		}
		opts, err := s.Options(chart, utils.Log)
		if err != nil {
			return err
		}

		out, err := pipeline.Calculate(ctx, d.Events, opts)
		printStatus(os.Stderr, out.State, out.Status)
		if errors.Is(err, pipeline.ErrNoResults) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := report.WriteText(os.Stdout, out.Clubs); err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			title = filepath.Base(dir)
		}
		chartTop, _ := cmd.Flags().GetInt("chart-top")
		if err := writeReports(s, title, out.Clubs, chartTop); err != nil {
			return err
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			if err := saveRun(cmd, s, dir, out); err != nil {
				return err
			}
		}

		printStatus(os.Stderr, pipeline.StateOK, successStatus)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(totalsCmd)
	totalsCmd.Flags().StringSliceP("exclude", "x", nil, "Event to leave out, by number (see 'events'), file name or event name. Repeatable")
	totalsCmd.Flags().StringP("points", "p", "", "Points per placement, first place first (Example: 3,2,1)")
	totalsCmd.Flags().String("points-chart", "", "xlsx workbook with a \""+pointschart.SheetName+"\" sheet of points per field size")
	totalsCmd.Flags().Bool("no-ijs", false, "Leave out IJS events")
	totalsCmd.Flags().Bool("no-60", false, "Leave out 6.0 events")
	totalsCmd.Flags().Bool("reconcile", true, "Merge club names truncated by 6.0 result pages into the full names")
	totalsCmd.Flags().String("match-policy", "", "How truncated names are matched: similarity or prefix")
	totalsCmd.Flags().Float64("threshold", 0, "Lowest similarity accepted by the similarity policy")
	totalsCmd.Flags().String("malformed", "", "What an unreadable placement does: skip or abort")
	totalsCmd.Flags().Bool("xlsx", false, "Write the xlsx workbook")
	totalsCmd.Flags().Bool("html", false, "Write the html page")
	totalsCmd.Flags().Bool("txt", false, "Write the plain text table")
	totalsCmd.Flags().Bool("chart", false, "Write a png bar chart of the top clubs")
	totalsCmd.Flags().Int("chart-top", 10, "Number of clubs in the chart")
	totalsCmd.Flags().StringP("out", "o", "", "Output directory for reports")
	totalsCmd.Flags().StringP("title", "t", "", "Competition title used in reports (default is the directory name)")
	totalsCmd.Flags().Bool("save", true, "Save the standings to the history database")
}

// applyTotalsFlags overrides settings with the flags given on the command line.
func applyTotalsFlags(cmd *cobra.Command, s *config.Settings) error {
	f := cmd.Flags()
	if f.Changed("points") {
		raw, _ := f.GetString("points")
		points, err := parsePoints(raw)
		if err != nil {
			return err
		}
		s.DefaultPointsSystem = points
	}
	if f.Changed("points-chart") {
		s.PointsChartPath, _ = f.GetString("points-chart")
	}
	if f.Changed("no-ijs") {
		noIJS, _ := f.GetBool("no-ijs")
		s.IncludeIJS = !noIJS
	}
	if f.Changed("no-60") {
		no60, _ := f.GetBool("no-60")
		s.Include60 = !no60
	}
	if f.Changed("reconcile") {
		s.ReconcileTruncated, _ = f.GetBool("reconcile")
	}
	if f.Changed("match-policy") {
		s.MatchPolicy, _ = f.GetString("match-policy")
	}
	if f.Changed("threshold") {
		s.SimilarityThreshold, _ = f.GetFloat64("threshold")
	}
	if f.Changed("malformed") {
		s.MalformedPolicy, _ = f.GetString("malformed")
	}
	for flag, target := range map[string]*bool{"xlsx": &s.GenerateXLSX, "html": &s.GenerateHTML, "txt": &s.GenerateTXT, "chart": &s.GenerateChart} {
		if f.Changed(flag) {
			*target, _ = f.GetBool(flag)
		}
	}
	if f.Changed("out") {
		s.OutputDirectory, _ = f.GetString("out")
	}
	return s.Validate()
}

// parsePoints parses a comma separated points table such as "3,2,1".
func parsePoints(raw string) ([]float64, error) {
	var points []float64
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		p, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid points %q: %w", field, err)
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, errors.New("no points given")
	}
	return points, nil
}

// excludeEvents marks the selected events as not included. A selector is a
// 1-based event number, a file name or an event name.
func excludeEvents(events []competition.Event, selectors []string) error {
	for _, sel := range selectors {
		sel = strings.TrimSpace(sel)
		matched := false
		if n, err := strconv.Atoi(sel); err == nil {
			if n < 1 || n > len(events) {
				return fmt.Errorf("no event number %d (there are %d events)", n, len(events))
			}
			events[n-1].Included = false
			continue
		}
		for i := range events {
			if filepath.Base(events[i].SourcePath) == sel || events[i].Name == sel {
				events[i].Included = false
				matched = true
			}
		}
		if !matched {
			return fmt.Errorf("no event matches %q", sel)
		}
	}
	return nil
}

func writeReports(s config.Settings, title string, clubs []standings.ClubTotal, chartTop int) error {
	if s.GenerateXLSX {
		path, err := report.WriteXLSX(s.OutputPath(s.XLSXFileName), clubs, s.Layout())
		if err != nil {
			return err
		}
		utils.Log.Infof("Wrote %s", path)
	}
	if s.GenerateHTML {
		if err := writeFile(s.OutputPath(s.HTMLFileName), func(f *os.File) error {
			return report.WriteHTML(f, title, clubs)
		}); err != nil {
			return err
		}
	}
	if s.GenerateTXT {
		if err := writeFile(s.OutputPath(s.TXTFileName), func(f *os.File) error {
			return report.WriteText(f, clubs)
		}); err != nil {
			return err
		}
	}
	if s.GenerateChart && len(clubs) > 0 {
		if err := writeFile(s.OutputPath(s.ChartFileName), func(f *os.File) error {
			return report.WriteChart(f, title, clubs, chartTop)
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeFile replaces the file at path with what write produces.
func writeFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	utils.Log.Infof("Wrote %s", path)
	return nil
}

func saveRun(cmd *cobra.Command, s config.Settings, dir string, out pipeline.Outcome) error {
	db, path, err := openDB(s)
	if err != nil {
		return err
	}
	defer db.Close()

	return utils.WithDBLock(cmd.Context(), path, func() error {
		id, err := db.SaveRun(cmd.Context(), dir, out.Status, out.Clubs)
		if err != nil {
			return err
		}
		utils.Log.Debugf("Saved standings as run %d", id)
		return nil
	})
}
