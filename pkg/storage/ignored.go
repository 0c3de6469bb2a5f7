package storage

import "context"

// SetEventIgnored marks the event document at path as excluded from (or
// restored to) future calculations.
func (d *DB) SetEventIgnored(ctx context.Context, path string, ignored bool) error {
	var err error
	if ignored {
		_, err = d.sql.ExecContext(ctx, "INSERT OR IGNORE INTO ignored_events(source_path) VALUES(?)", path)
	} else {
		_, err = d.sql.ExecContext(ctx, "DELETE FROM ignored_events WHERE source_path = ?", path)
	}
	return err
}

// IgnoredEvents returns the set of excluded event paths.
func (d *DB) IgnoredEvents(ctx context.Context) (map[string]bool, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT source_path FROM ignored_events")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ignored := make(map[string]bool)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		ignored[path] = true
	}
	return ignored, rows.Err()
}
