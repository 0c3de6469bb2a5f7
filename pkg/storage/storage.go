// Package storage keeps a history of calculated standings and the set of
// events the user excluded, in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/teamtotals/teamtotals/pkg/competition"
	"github.com/teamtotals/teamtotals/pkg/standings"
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id          INTEGER PRIMARY KEY,
  directory   TEXT NOT NULL,
  created_at  TEXT NOT NULL,
  status      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_time ON runs(created_at);
CREATE TABLE IF NOT EXISTS standings (
  run_id      INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  position    INTEGER NOT NULL,
  club        TEXT NOT NULL CHECK (club <> ''),
  points_ijs  REAL,
  points_60   REAL,
  total       REAL NOT NULL,
  PRIMARY KEY (run_id, position)
);
CREATE TABLE IF NOT EXISTS ignored_events (
  source_path TEXT PRIMARY KEY
);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// SaveRun stores ranked standings for the competition in dir and returns the
// new run id.
func (d *DB) SaveRun(ctx context.Context, dir, status string, clubs []standings.ClubTotal) (id int64, err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `INSERT INTO runs(directory, created_at, status) VALUES(?,?,?)`,
		dir, time.Now().UTC().Format(time.RFC3339), status)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, c := range clubs {
		_, err = tx.ExecContext(ctx, `INSERT INTO standings(run_id, position, club, points_ijs, points_60, total) VALUES(?,?,?,?,?,?)`,
			id, i+1, c.Club, nullIfAbsent(c, competition.IJS), nullIfAbsent(c, competition.SixO), c.Total())
		if err != nil {
			return 0, fmt.Errorf("saving %q: %w", c.Club, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT r.id, r.directory, r.created_at, r.status, COUNT(s.position)
FROM runs r LEFT JOIN standings s ON s.run_id = r.id
GROUP BY r.id ORDER BY r.created_at DESC, r.id DESC LIMIT ?`
	rows, err := d.sql.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Directory, &createdAt, &r.Status, &r.Clubs); err != nil {
			return nil, err
		}
		if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// RunStandings returns the saved standings of one run in ranked order.
func (d *DB) RunStandings(ctx context.Context, runID int64) ([]standings.ClubTotal, error) {
	var exists int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE id = ?", runID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}

	rows, err := d.sql.QueryContext(ctx, "SELECT club, points_ijs, points_60 FROM standings WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clubs := []standings.ClubTotal{}
	for rows.Next() {
		var club string
		var ijs, sixO sql.NullFloat64
		if err := rows.Scan(&club, &ijs, &sixO); err != nil {
			return nil, err
		}
		c := standings.NewClubTotal(club)
		if ijs.Valid {
			c.Points[competition.IJS] = ijs.Float64
		}
		if sixO.Valid {
			c.Points[competition.SixO] = sixO.Float64
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clubs, nil
}

func nullIfAbsent(c standings.ClubTotal, f competition.ScoringFormat) interface{} {
	p, ok := c.PointsFor(f)
	if !ok {
		return nil
	}
	return p
}
