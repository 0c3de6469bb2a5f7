// Package config holds the persisted user settings and turns them into the
// options the engine and the report writers take.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/teamtotals/teamtotals/pkg/pipeline"
	"github.com/teamtotals/teamtotals/pkg/report"
	"github.com/teamtotals/teamtotals/pkg/standings"
)

// EnvPrefix prefixes environment variables that override settings,
// e.g. TEAMTOTALS_INCLUDE_60=false.
const EnvPrefix = "TEAMTOTALS"

// Settings mirrors the config file.
type Settings struct {
	DefaultPointsSystem []float64 `mapstructure:"default_points_system"`
	IncludeIJS          bool      `mapstructure:"include_ijs"`
	Include60           bool      `mapstructure:"include_60"`
	ReconcileTruncated  bool      `mapstructure:"reconcile_truncated"`
	MatchPolicy         string    `mapstructure:"match_policy"`
	SimilarityThreshold float64   `mapstructure:"similarity_threshold"`
	MalformedPolicy     string    `mapstructure:"malformed_policy"`
	PointsChartPath     string    `mapstructure:"points_chart_path"`

	// With CompetitionBaseDirectory set, competitions are given by name and
	// looked up as <base>/<name>/<HTMLRelativeDirectory>.
	CompetitionBaseDirectory string `mapstructure:"competition_base_directory"`
	HTMLRelativeDirectory    string `mapstructure:"html_relative_directory"`

	OutputDirectory string `mapstructure:"output_directory"`
	XLSXFileName    string `mapstructure:"xlsx_file_name"`
	HTMLFileName    string `mapstructure:"html_file_name"`
	TXTFileName     string `mapstructure:"txt_file_name"`
	ChartFileName   string `mapstructure:"chart_file_name"`

	XLSXHeaderCellValues []string  `mapstructure:"xlsx_header_cell_values"`
	XLSXColumnWidths     []float64 `mapstructure:"xlsx_column_widths"`
	XLSXFontSize         float64   `mapstructure:"xlsx_font_size"`

	GenerateXLSX  bool `mapstructure:"generate_xlsx"`
	GenerateHTML  bool `mapstructure:"generate_html"`
	GenerateTXT   bool `mapstructure:"generate_txt"`
	GenerateChart bool `mapstructure:"generate_chart"`

	DBPath string `mapstructure:"db_path"`
}

// Defaults returns the settings written to a fresh config file.
func Defaults() Settings {
	layout := report.DefaultLayout()
	return Settings{
		DefaultPointsSystem:   []float64{3, 2, 1},
		IncludeIJS:            true,
		Include60:             true,
		ReconcileTruncated:    true,
		MatchPolicy:           standings.MatchSimilarity.String(),
		SimilarityThreshold:   standings.DefaultSimilarityThreshold,
		MalformedPolicy:       pipeline.SkipMalformed.String(),
		HTMLRelativeDirectory: "IJScompanion_html_winnercomm",
		OutputDirectory:       ".",
		XLSXFileName:          "team_totals.xlsx",
		HTMLFileName:          "team_totals.html",
		TXTFileName:           "team_totals.txt",
		ChartFileName:         "team_totals.png",
		XLSXHeaderCellValues:  layout.Headers,
		XLSXColumnWidths:      layout.Widths,
		XLSXFontSize:          layout.FontSize,
		GenerateXLSX:          true,
		GenerateHTML:          true,
	}
}

// SetDefaults registers every setting with its default so that config files
// and environment variables can override any of them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("default_points_system", d.DefaultPointsSystem)
	v.SetDefault("include_ijs", d.IncludeIJS)
	v.SetDefault("include_60", d.Include60)
	v.SetDefault("reconcile_truncated", d.ReconcileTruncated)
	v.SetDefault("match_policy", d.MatchPolicy)
	v.SetDefault("similarity_threshold", d.SimilarityThreshold)
	v.SetDefault("malformed_policy", d.MalformedPolicy)
	v.SetDefault("points_chart_path", d.PointsChartPath)
	v.SetDefault("competition_base_directory", d.CompetitionBaseDirectory)
	v.SetDefault("html_relative_directory", d.HTMLRelativeDirectory)
	v.SetDefault("output_directory", d.OutputDirectory)
	v.SetDefault("xlsx_file_name", d.XLSXFileName)
	v.SetDefault("html_file_name", d.HTMLFileName)
	v.SetDefault("txt_file_name", d.TXTFileName)
	v.SetDefault("chart_file_name", d.ChartFileName)
	v.SetDefault("xlsx_header_cell_values", d.XLSXHeaderCellValues)
	v.SetDefault("xlsx_column_widths", d.XLSXColumnWidths)
	v.SetDefault("xlsx_font_size", d.XLSXFontSize)
	v.SetDefault("generate_xlsx", d.GenerateXLSX)
	v.SetDefault("generate_html", d.GenerateHTML)
	v.SetDefault("generate_txt", d.GenerateTXT)
	v.SetDefault("generate_chart", d.GenerateChart)
	v.SetDefault("db_path", d.DBPath)
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("could not decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports the first setting that the engine cannot work with.
func (s Settings) Validate() error {
	if len(s.DefaultPointsSystem) == 0 {
		return errors.New("default_points_system must list points for at least first place")
	}
	for i, p := range s.DefaultPointsSystem {
		if p < 0 {
			return fmt.Errorf("default_points_system: points for place %d are negative", i+1)
		}
	}
	if s.SimilarityThreshold <= 0 || s.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0, 1], got %v", s.SimilarityThreshold)
	}
	if _, err := standings.ParseMatchPolicy(s.MatchPolicy); err != nil {
		return fmt.Errorf("match_policy: %w", err)
	}
	if _, err := pipeline.ParseMalformedPolicy(s.MalformedPolicy); err != nil {
		return fmt.Errorf("malformed_policy: %w", err)
	}
	if s.XLSXFontSize < 0 {
		return fmt.Errorf("xlsx_font_size must not be negative")
	}
	return nil
}

// Options converts the settings into engine options. chart is the
// participant-count points table, nil when none is configured.
func (s Settings) Options(chart map[uint64][]float64, log pipeline.Logger) (pipeline.Options, error) {
	policy, err := standings.ParseMatchPolicy(s.MatchPolicy)
	if err != nil {
		return pipeline.Options{}, err
	}
	malformed, err := pipeline.ParseMalformedPolicy(s.MalformedPolicy)
	if err != nil {
		return pipeline.Options{}, err
	}

	points := make([]float64, len(s.DefaultPointsSystem))
	copy(points, s.DefaultPointsSystem)

	return pipeline.Options{
		Points:      standings.PointsTable{Default: points, ByParticipants: chart},
		IncludeIJS:  s.IncludeIJS,
		IncludeSixO: s.Include60,
		Reconcile:   s.ReconcileTruncated,
		MatchPolicy: policy,
		Threshold:   s.SimilarityThreshold,
		Malformed:   malformed,
		Log:         log,
	}, nil
}

// Layout returns the workbook layout.
func (s Settings) Layout() report.Layout {
	return report.Layout{
		Headers:  s.XLSXHeaderCellValues,
		Widths:   s.XLSXColumnWidths,
		FontSize: s.XLSXFontSize,
	}
}

// OutputPath places a report file name in the output directory.
func (s Settings) OutputPath(name string) string {
	return filepath.Join(s.OutputDirectory, name)
}
