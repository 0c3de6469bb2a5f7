package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/teamtotals/teamtotals/pkg/competition"
	"github.com/teamtotals/teamtotals/pkg/pipeline"
	"github.com/teamtotals/teamtotals/pkg/report"
)

type StandingResponse struct {
	Place int      `json:"place"`
	Club  string   `json:"club"`
	IJS   *float64 `json:"ijs"`
	SixO  *float64 `json:"six_o"`
	Total float64  `json:"total"`
}

type StandingsResponse struct {
	Status    string             `json:"status"`
	State     string             `json:"state"`
	Standings []StandingResponse `json:"standings"`
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	out, err := s.standings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := StandingsResponse{Status: out.Status, State: out.State.String(), Standings: []StandingResponse{}}
	for i, c := range out.Clubs {
		row := StandingResponse{Place: i + 1, Club: c.Club, Total: c.Total()}
		if p, ok := c.PointsFor(competition.IJS); ok {
			row.IJS = &p
		}
		if p, ok := c.PointsFor(competition.SixO); ok {
			row.SixO = &p
		}
		resp.Standings = append(resp.Standings, row)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type EventResponse struct {
	Name     string `json:"name"`
	File     string `json:"file"`
	Path     string `json:"path"`
	Format   string `json:"format"`
	Included bool   `json:"included"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	d, err := s.events(r.Context())
	if err != nil && !errors.Is(err, pipeline.ErrNoResults) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	events := []EventResponse{}
	for _, e := range d.Events {
		events = append(events, EventResponse{
			Name:     e.Name,
			File:     filepath.Base(e.SourcePath),
			Path:     e.SourcePath,
			Format:   e.Format.String(),
			Included: e.Included,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

type IgnoreRequest struct {
	Path    string `json:"path"`
	Ignored bool   `json:"ignored"`
}

func (s *Server) handleIgnoreEvent(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "no database configured", http.StatusNotImplemented)
		return
	}
	var req IgnoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		http.Error(w, "missing path", http.StatusBadRequest)
		return
	}

	write := func() error { return s.DB.SetEventIgnored(r.Context(), req.Path, req.Ignored) }
	var err error
	if s.Lock != nil {
		err = s.Lock(r.Context(), write)
	} else {
		err = write()
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	out, err := s.standings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := report.WriteHTML(&buf, s.Title, out.Clubs); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	out, err := s.standings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(out.Clubs) == 0 {
		http.Error(w, out.Status, http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	if err := report.WriteChart(&buf, s.Title, out.Clubs, s.ChartTop); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}
