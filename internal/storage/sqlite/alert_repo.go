package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"diskmon/internal/domain"
)

type AlertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) domain.AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Store(ctx context.Context, alerts []domain.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin alert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO alerts
		(timestamp, hostname, mountpoint, usage_percent, threshold, acknowledged)
		VALUES (?, ?, ?, ?, ?, 0)`)
	if err != nil {
		return fmt.Errorf("failed to prepare alert insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range alerts {
		if _, err := stmt.ExecContext(ctx, a.Timestamp.UTC().Format(timeLayout),
			a.Hostname, a.Mountpoint, a.UsagePercent, a.Threshold); err != nil {
			return fmt.Errorf("failed to insert alert for %s: %w", a.Mountpoint, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit alert transaction: %w", err)
	}

	return nil
}

// List returns the most recent alerts first.
func (r *AlertRepository) List(ctx context.Context, limit int) ([]domain.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, timestamp, hostname, mountpoint, usage_percent, threshold, acknowledged
		FROM alerts
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts := []domain.Alert{}
	for rows.Next() {
		var stamp string
		var acknowledged int
		var a domain.Alert
		if err := rows.Scan(&a.ID, &stamp, &a.Hostname, &a.Mountpoint, &a.UsagePercent, &a.Threshold, &acknowledged); err != nil {
			return nil, err
		}
		ts, err := time.Parse(timeLayout, stamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse alert timestamp %q: %w", stamp, err)
		}
		a.Timestamp = ts
		a.Acknowledged = acknowledged != 0
		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

// Acknowledge marks an alert as seen. Acknowledging an already-acknowledged
// or unknown id is a successful no-op.
func (r *AlertRepository) Acknowledge(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE alerts SET acknowledged = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to acknowledge alert %d: %w", id, err)
	}
	return nil
}
