package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"diskmon/internal/domain"
)

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) domain.SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Append writes one row per metric inside a single transaction, so a
// concurrent reader sees either the whole cycle or none of it.
func (r *SnapshotRepository) Append(ctx context.Context, ts time.Time, metrics []domain.VolumeMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO disk_snapshots
		(timestamp, hostname, mountpoint, device, fstype, total_bytes, used_bytes, free_bytes, usage_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	stamp := ts.UTC().Format(timeLayout)
	for _, m := range metrics {
		if _, err := stmt.ExecContext(ctx, stamp, m.Hostname, m.Mountpoint, m.Device, m.Fstype,
			m.TotalBytes, m.UsedBytes, m.FreeBytes, m.UsagePercent); err != nil {
			return fmt.Errorf("failed to insert snapshot for %s: %w", m.Mountpoint, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return nil
}

// History returns the usage series for a mountpoint within the last N
// hours, ascending by timestamp. An unknown mountpoint yields an empty
// slice, not an error.
func (r *SnapshotRepository) History(ctx context.Context, mountpoint string, hours int) ([]domain.HistoryPoint, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour).Format(timeLayout)

	rows, err := r.db.QueryContext(ctx, `SELECT timestamp, usage_percent, used_bytes, total_bytes
		FROM disk_snapshots
		WHERE mountpoint = ? AND timestamp > ?
		ORDER BY timestamp, id`, mountpoint, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	points := []domain.HistoryPoint{}
	for rows.Next() {
		var stamp string
		var p domain.HistoryPoint
		if err := rows.Scan(&stamp, &p.UsagePercent, &p.UsedBytes, &p.TotalBytes); err != nil {
			return nil, err
		}
		ts, err := time.Parse(timeLayout, stamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot timestamp %q: %w", stamp, err)
		}
		p.Timestamp = ts
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
