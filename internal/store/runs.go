package store

import (
	"context"
	"time"
)

// RunRow summarizes one monitor invocation.
type RunRow struct {
	ID        int64
	StartedAt time.Time
	Duration  time.Duration
	Total     int
	New       int
	Known     int
	Notified  bool
	Aborted   bool
}

func (d *DB) RecordRun(ctx context.Context, r RunRow) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO runs(started_at, duration_ms, total, new_count, known, notified, aborted)
VALUES(?,?,?,?,?,?,?);`,
		r.StartedAt.UTC().Format(time.RFC3339),
		r.Duration.Milliseconds(),
		r.Total, r.New, r.Known,
		boolInt(r.Notified), boolInt(r.Aborted),
	)
	return err
}

func (d *DB) RecentRuns(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, started_at, duration_ms, total, new_count, known, notified, aborted
FROM runs
ORDER BY id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		var startedAt string
		var durationMs int64
		var notified, aborted int
		if err := rows.Scan(&r.ID, &startedAt, &durationMs, &r.Total, &r.New, &r.Known, &notified, &aborted); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.Notified = notified != 0
		r.Aborted = aborted != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
