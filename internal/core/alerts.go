package core

import (
	"context"
	"fmt"
	"time"

	"diskmon/internal/domain"
	"diskmon/internal/logger"
)

// Notifier delivers freshly raised alerts to an outbound destination.
type Notifier interface {
	Deliver(ctx context.Context, alerts []domain.Alert) error
}

// EvaluateThreshold emits one alert per metric at or above the threshold.
// It is a pure function of the cycle's input: no deduplication, no
// hysteresis — a volume that stays hot produces one alert every cycle.
func EvaluateThreshold(ts time.Time, metrics []domain.VolumeMetric, threshold float64) []domain.Alert {
	var alerts []domain.Alert
	for _, m := range metrics {
		if m.UsagePercent >= threshold {
			alerts = append(alerts, domain.Alert{
				Timestamp:    ts,
				Hostname:     m.Hostname,
				Mountpoint:   m.Mountpoint,
				UsagePercent: m.UsagePercent,
				Threshold:    threshold,
			})
		}
	}
	return alerts
}

type AlertEngine struct {
	repo      domain.AlertRepository
	notifier  Notifier
	threshold float64
	log       logger.Logger
}

// NewAlertEngine wires threshold evaluation to durable alert storage.
// notifier may be nil, in which case the outbound delivery step is skipped.
func NewAlertEngine(repo domain.AlertRepository, notifier Notifier, threshold float64, log logger.Logger) *AlertEngine {
	return &AlertEngine{repo: repo, notifier: notifier, threshold: threshold, log: log}
}

func (e *AlertEngine) Threshold() float64 {
	return e.threshold
}

// EvaluateCycle evaluates one cycle's metrics, stores any alerts, and
// hands them to the notifier. A notifier failure is logged but never
// fails the cycle.
func (e *AlertEngine) EvaluateCycle(ctx context.Context, ts time.Time, metrics []domain.VolumeMetric) error {
	alerts := EvaluateThreshold(ts, metrics, e.threshold)
	if len(alerts) == 0 {
		return nil
	}

	if err := e.repo.Store(ctx, alerts); err != nil {
		return fmt.Errorf("store alerts: %w", err)
	}

	for _, a := range alerts {
		e.log.Warn("volume over threshold",
			"mountpoint", a.Mountpoint,
			"usage_percent", a.UsagePercent,
			"threshold", a.Threshold,
		)
	}

	if e.notifier != nil {
		if err := e.notifier.Deliver(ctx, alerts); err != nil {
			e.log.Warn("alert delivery failed", "error", err)
		}
	}

	return nil
}

func (e *AlertEngine) List(ctx context.Context, limit int) ([]domain.Alert, error) {
	return e.repo.List(ctx, limit)
}

func (e *AlertEngine) Acknowledge(ctx context.Context, id int64) error {
	return e.repo.Acknowledge(ctx, id)
}
