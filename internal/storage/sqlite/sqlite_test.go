package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"diskmon/internal/domain"
	"diskmon/internal/logger"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), logger.Discard())
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMetrics() []domain.VolumeMetric {
	return []domain.VolumeMetric{
		{Hostname: "testhost", Mountpoint: "/", Device: "/dev/sda1", Fstype: "ext4",
			TotalBytes: 1000, UsedBytes: 420, FreeBytes: 580, UsagePercent: 42},
		{Hostname: "testhost", Mountpoint: "/home", Device: "/dev/sda2", Fstype: "ext4",
			TotalBytes: 2000, UsedBytes: 1500, FreeBytes: 500, UsagePercent: 75},
	}
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("append and history round trip", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))
		ts := time.Now().UTC()

		if err := repo.Append(ctx, ts, sampleMetrics()); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		points, err := repo.History(ctx, "/", 24)
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if len(points) != 1 {
			t.Fatalf("expected 1 point for /, got %d", len(points))
		}
		p := points[0]
		if p.UsagePercent != 42 || p.UsedBytes != 420 || p.TotalBytes != 1000 {
			t.Errorf("unexpected point: %+v", p)
		}
		if !p.Timestamp.Equal(ts.Truncate(time.Nanosecond)) {
			t.Errorf("expected timestamp %v, got %v", ts, p.Timestamp)
		}
	})

	t.Run("unknown mountpoint is empty, not an error", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		points, err := repo.History(ctx, "/nope", 24)
		if err != nil {
			t.Fatalf("expected no error for unknown mountpoint, got %v", err)
		}
		if points == nil || len(points) != 0 {
			t.Fatalf("expected empty slice, got %#v", points)
		}
	})

	t.Run("window excludes old rows", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))
		now := time.Now().UTC()

		if err := repo.Append(ctx, now.Add(-48*time.Hour), sampleMetrics()); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if err := repo.Append(ctx, now.Add(-time.Hour), sampleMetrics()); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		points, err := repo.History(ctx, "/", 24)
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if len(points) != 1 {
			t.Fatalf("expected the 48h-old row excluded, got %d points", len(points))
		}

		points, err = repo.History(ctx, "/", 8760)
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if len(points) != 2 {
			t.Fatalf("expected both rows within a year, got %d", len(points))
		}
		if !points[0].Timestamp.Before(points[1].Timestamp) {
			t.Fatal("history must be ascending by timestamp")
		}
	})

	t.Run("repeated query is identical", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))
		now := time.Now().UTC()

		for i := range 3 {
			if err := repo.Append(ctx, now.Add(time.Duration(i)*time.Minute), sampleMetrics()); err != nil {
				t.Fatalf("append failed: %v", err)
			}
		}

		first, err := repo.History(ctx, "/home", 24)
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		second, err := repo.History(ctx, "/home", 24)
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if len(first) != 3 || len(second) != 3 {
			t.Fatalf("expected 3 points in both reads, got %d and %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("reads differ at %d: %+v vs %+v", i, first[i], second[i])
			}
		}
	})
}

func TestAlertRepository(t *testing.T) {
	ctx := context.Background()
	ts := time.Now().UTC()

	seed := func(t *testing.T, repo domain.AlertRepository) {
		t.Helper()
		older := domain.Alert{Timestamp: ts.Add(-time.Hour), Hostname: "testhost", Mountpoint: "/", UsagePercent: 91, Threshold: 90}
		newer := domain.Alert{Timestamp: ts, Hostname: "testhost", Mountpoint: "/home", UsagePercent: 95, Threshold: 90}
		if err := repo.Store(ctx, []domain.Alert{older}); err != nil {
			t.Fatalf("store failed: %v", err)
		}
		if err := repo.Store(ctx, []domain.Alert{newer}); err != nil {
			t.Fatalf("store failed: %v", err)
		}
	}

	t.Run("list returns newest first", func(t *testing.T) {
		repo := NewAlertRepository(newTestDB(t))
		seed(t, repo)

		alerts, err := repo.List(ctx, 10)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(alerts) != 2 {
			t.Fatalf("expected 2 alerts, got %d", len(alerts))
		}
		if alerts[0].Mountpoint != "/home" || alerts[1].Mountpoint != "/" {
			t.Fatalf("expected newest first, got %+v", alerts)
		}

		limited, err := repo.List(ctx, 1)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(limited) != 1 || limited[0].Mountpoint != "/home" {
			t.Fatalf("expected only the newest alert, got %+v", limited)
		}
	})

	t.Run("acknowledge is idempotent", func(t *testing.T) {
		repo := NewAlertRepository(newTestDB(t))
		seed(t, repo)

		alerts, err := repo.List(ctx, 10)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		id := alerts[0].ID

		for range 2 {
			if err := repo.Acknowledge(ctx, id); err != nil {
				t.Fatalf("acknowledge failed: %v", err)
			}
			alerts, err = repo.List(ctx, 10)
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if !alerts[0].Acknowledged {
				t.Fatal("expected the alert to be acknowledged")
			}
			if alerts[1].Acknowledged {
				t.Fatal("the other alert must be untouched")
			}
		}
	})

	t.Run("acknowledging an unknown id is a no-op", func(t *testing.T) {
		repo := NewAlertRepository(newTestDB(t))
		seed(t, repo)

		if err := repo.Acknowledge(ctx, 99999); err != nil {
			t.Fatalf("expected success for unknown id, got %v", err)
		}

		alerts, err := repo.List(ctx, 10)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(alerts) != 2 {
			t.Fatalf("expected 2 alerts untouched, got %d", len(alerts))
		}
		for _, a := range alerts {
			if a.Acknowledged {
				t.Fatalf("no alert should be acknowledged, got %+v", a)
			}
		}
	})
}
