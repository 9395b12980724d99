// Package domain
package domain

import (
	"context"
	"time"
)

// VolumeMetric is one measurement of one mounted volume, produced fresh
// each poll cycle.
type VolumeMetric struct {
	Hostname     string  `json:"hostname"`
	Mountpoint   string  `json:"mountpoint"`
	Device       string  `json:"device"`
	Fstype       string  `json:"fstype"`
	TotalBytes   uint64  `json:"total_bytes"`
	UsedBytes    uint64  `json:"used_bytes"`
	FreeBytes    uint64  `json:"free_bytes"`
	UsagePercent float64 `json:"usage_percent"`
}

// Alert records that a volume met or exceeded the configured threshold at
// a given cycle. Acknowledged is the only field that ever changes after
// the row is written.
type Alert struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Hostname     string    `json:"hostname"`
	Mountpoint   string    `json:"mountpoint"`
	UsagePercent float64   `json:"usage_percent"`
	Threshold    float64   `json:"threshold"`
	Acknowledged bool      `json:"acknowledged"`
}

// HistoryPoint is one row of a mountpoint's usage time series.
type HistoryPoint struct {
	Timestamp    time.Time `json:"timestamp"`
	UsagePercent float64   `json:"usage_percent"`
	UsedBytes    uint64    `json:"used_bytes"`
	TotalBytes   uint64    `json:"total_bytes"`
}

// Update is the message pushed to every live subscriber after a cycle.
type Update struct {
	Type      string         `json:"type"`
	Disks     []VolumeMetric `json:"disks"`
	Timestamp time.Time      `json:"timestamp"`
}

// VolumeSampler reads the current state of all mounted volumes. It never
// fails and never returns an empty slice.
type VolumeSampler interface {
	Sample(ctx context.Context) []VolumeMetric
}

type SnapshotRepository interface {
	Append(ctx context.Context, ts time.Time, metrics []VolumeMetric) error
	History(ctx context.Context, mountpoint string, hours int) ([]HistoryPoint, error)
}

type AlertRepository interface {
	Store(ctx context.Context, alerts []Alert) error
	List(ctx context.Context, limit int) ([]Alert, error)
	Acknowledge(ctx context.Context, id int64) error
}

// AlertService is the alert surface exposed to the transport layer.
type AlertService interface {
	List(ctx context.Context, limit int) ([]Alert, error)
	Acknowledge(ctx context.Context, id int64) error
}
