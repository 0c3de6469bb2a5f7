package cmd

import (
	"reflect"
	"testing"

	"github.com/teamtotals/teamtotals/pkg/competition"
)

func TestParsePoints(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"3,2,1", []float64{3, 2, 1}, false},
		{" 5, 3.5 ,1,", []float64{5, 3.5, 1}, false},
		{"", nil, true},
		{"3,two,1", nil, true},
	}

	for _, tt := range tests {
		got, err := parsePoints(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parsePoints(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("parsePoints(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func testEvents() []competition.Event {
	return []competition.Event{
		{Name: "Event 1", SourcePath: "/comp/001c1.htm", Format: competition.SixO, Included: true},
		{Name: "Event 2", SourcePath: "/comp/SEGM002.htm", Format: competition.IJS, Included: true},
		{Name: "Event 10", SourcePath: "/comp/SEGM010.htm", Format: competition.IJS, Included: true},
	}
}

func included(events []competition.Event) []bool {
	out := make([]bool, len(events))
	for i, e := range events {
		out[i] = e.Included
	}
	return out
}

func TestExcludeEvents(t *testing.T) {
	tests := []struct {
		name      string
		selectors []string
		want      []bool
		wantErr   bool
	}{
		{"none", nil, []bool{true, true, true}, false},
		{"by number", []string{"3"}, []bool{true, true, false}, false},
		{"by file name", []string{"001c1.htm"}, []bool{false, true, true}, false},
		{"by event name", []string{"Event 2", "1"}, []bool{false, false, true}, false},
		{"number out of range", []string{"4"}, nil, true},
		{"unknown name", []string{"Event 3"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := testEvents()
			err := excludeEvents(events, tt.selectors)
			if (err != nil) != tt.wantErr {
				t.Fatalf("excludeEvents error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(included(events), tt.want) {
				t.Fatalf("included = %v, want %v", included(events), tt.want)
			}
		})
	}
}
