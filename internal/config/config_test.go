package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"

	"github.com/teamtotals/teamtotals/pkg/pipeline"
	"github.com/teamtotals/teamtotals/pkg/standings"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load(newViper())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(s, Defaults()) {
		t.Fatalf("defaults did not round-trip:\n got %+v\nwant %+v", s, Defaults())
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teamtotals.yaml")
	yaml := []byte(`default_points_system: [5, 3, 2, 1]
include_60: false
match_policy: prefix
malformed_policy: abort
xlsx_font_size: 12
`)
	if err := os.WriteFile(path, yaml, 0o644); err != nil {
		t.Fatal(err)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}
	s, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	opts, err := s.Options(nil, nil)
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if !reflect.DeepEqual(opts.Points.Default, []float64{5, 3, 2, 1}) {
		t.Fatalf("unexpected points %v", opts.Points.Default)
	}
	if opts.IncludeSixO || !opts.IncludeIJS {
		t.Fatalf("unexpected format selection %+v", opts)
	}
	if opts.MatchPolicy != standings.MatchPrefix || opts.Malformed != pipeline.AbortMalformed {
		t.Fatalf("unexpected policies %+v", opts)
	}
	if s.Layout().FontSize != 12 {
		t.Fatalf("unexpected font size %v", s.Layout().FontSize)
	}
}

func TestOptionsCopiesPoints(t *testing.T) {
	s := Defaults()
	chart := map[uint64][]float64{2: {4, 2}}
	opts, err := s.Options(chart, nil)
	if err != nil {
		t.Fatal(err)
	}
	opts.Points.Default[0] = 100
	if s.DefaultPointsSystem[0] != 3 {
		t.Fatal("options must not alias the settings")
	}
	if !reflect.DeepEqual(opts.Points.ByParticipants, chart) {
		t.Fatalf("chart not carried over: %v", opts.Points.ByParticipants)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Settings)
	}{
		{"no points", func(s *Settings) { s.DefaultPointsSystem = nil }},
		{"negative points", func(s *Settings) { s.DefaultPointsSystem = []float64{3, -1} }},
		{"zero threshold", func(s *Settings) { s.SimilarityThreshold = 0 }},
		{"threshold above one", func(s *Settings) { s.SimilarityThreshold = 1.5 }},
		{"match policy", func(s *Settings) { s.MatchPolicy = "fuzzy" }},
		{"malformed policy", func(s *Settings) { s.MalformedPolicy = "ignore" }},
		{"font size", func(s *Settings) { s.XLSXFontSize = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Defaults()
			tc.modify(&s)
			if err := s.Validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}

	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	s := Defaults()
	s.OutputDirectory = filepath.Join("out", "dir")
	if got := s.OutputPath(s.XLSXFileName); got != filepath.Join("out", "dir", "team_totals.xlsx") {
		t.Fatalf("unexpected path %s", got)
	}
}
