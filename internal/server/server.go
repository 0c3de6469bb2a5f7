// Package server publishes live standings over HTTP: the self-refreshing
// standings page, a chart of the leading clubs and a small JSON API. Every
// request recalculates from the competition directory, so the page follows
// the results as the scoring software writes them.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/teamtotals/teamtotals/pkg/pipeline"
	"github.com/teamtotals/teamtotals/pkg/storage"
)

type Server struct {
	Dir      string
	Title    string
	Options  pipeline.Options
	DB       *storage.DB // optional; enables ignored events
	ChartTop int
	Username string
	Password string

	// Lock serialises database writes with other processes. Optional.
	Lock func(ctx context.Context, fn func() error) error
}

func New(dir, title string, opts pipeline.Options, db *storage.DB, user, pass string) *Server {
	return &Server{
		Dir:      dir,
		Title:    title,
		Options:  opts,
		DB:       db,
		ChartTop: 10,
		Username: user,
		Password: pass,
	}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API Group
	mux.HandleFunc("GET /api/standings", s.basicAuth(s.handleStandings))
	mux.HandleFunc("GET /api/events", s.basicAuth(s.handleEvents))
	mux.HandleFunc("POST /api/events/ignore", s.basicAuth(s.handleIgnoreEvent))

	mux.HandleFunc("GET /chart.png", s.basicAuth(s.handleChart))
	mux.HandleFunc("GET /{$}", s.basicAuth(s.handlePage))
	return mux
}

func (s *Server) Start(addr string) error {
	s.logger().Infof("Starting server on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) logger() pipeline.Logger {
	if s.Options.Log == nil {
		return nopLogger{}
	}
	return s.Options.Log
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

// events discovers the competition's events with the stored exclusions applied.
func (s *Server) events(ctx context.Context) (pipeline.Discovery, error) {
	var ignored map[string]bool
	if s.DB != nil {
		var err error
		if ignored, err = s.DB.IgnoredEvents(ctx); err != nil {
			return pipeline.Discovery{}, err
		}
	}
	return pipeline.Discover(ctx, s.Dir, ignored, s.Options.Log)
}

// standings recalculates the table. An empty competition yields an empty
// outcome, not an error.
func (s *Server) standings(ctx context.Context) (pipeline.Outcome, error) {
	d, err := s.events(ctx)
	if errors.Is(err, pipeline.ErrNoResults) {
		return pipeline.Outcome{Status: d.Status, State: d.State}, nil
	}
	if err != nil {
		return pipeline.Outcome{}, err
	}
	out, err := pipeline.Calculate(ctx, d.Events, s.Options)
	if errors.Is(err, pipeline.ErrNoResults) {
		return out, nil
	}
	return out, err
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
