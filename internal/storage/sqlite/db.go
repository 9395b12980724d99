// Package sqlite
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"diskmon/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

// timeLayout is a fixed-width RFC 3339 variant so stored timestamps sort
// lexicographically in the same order as chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func Open(dbPath string, log logger.Logger) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", dbPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database not responding: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info("sqlite connection established", "path", dbPath)

	if err := runMigration(db); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigration(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS disk_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		hostname TEXT NOT NULL,
		mountpoint TEXT NOT NULL,
		device TEXT,
		fstype TEXT,
		total_bytes INTEGER NOT NULL,
		used_bytes INTEGER NOT NULL,
		free_bytes INTEGER NOT NULL,
		usage_percent REAL NOT NULL
	);
	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		hostname TEXT NOT NULL,
		mountpoint TEXT NOT NULL,
		usage_percent REAL NOT NULL,
		threshold REAL NOT NULL,
		acknowledged INTEGER DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON disk_snapshots(timestamp);
	CREATE INDEX IF NOT EXISTS idx_snapshots_mount ON disk_snapshots(mountpoint);
	CREATE INDEX IF NOT EXISTS idx_snapshots_host ON disk_snapshots(hostname);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
