package core

import (
	"context"
	"fmt"
	"time"

	"diskmon/internal/domain"
	"diskmon/internal/logger"
)

// Broadcaster fans one cycle's update out to the live subscribers.
type Broadcaster interface {
	Publish(update domain.Update)
}

// Pipeline is one poll cycle: sample -> persist -> evaluate -> broadcast.
type Pipeline struct {
	sampler   domain.VolumeSampler
	snapshots domain.SnapshotRepository
	alerts    *AlertEngine
	broadcast Broadcaster
	log       logger.Logger
}

func NewPipeline(sampler domain.VolumeSampler, snapshots domain.SnapshotRepository, alerts *AlertEngine, broadcast Broadcaster, log logger.Logger) *Pipeline {
	return &Pipeline{
		sampler:   sampler,
		snapshots: snapshots,
		alerts:    alerts,
		broadcast: broadcast,
		log:       log,
	}
}

func (p *Pipeline) RunCycle(ctx context.Context) error {
	ts := time.Now().UTC()

	metrics := p.sampler.Sample(ctx)

	if err := p.snapshots.Append(ctx, ts, metrics); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}

	if err := p.alerts.EvaluateCycle(ctx, ts, metrics); err != nil {
		return fmt.Errorf("evaluate alerts: %w", err)
	}

	p.broadcast.Publish(domain.Update{
		Type:      "update",
		Disks:     metrics,
		Timestamp: ts,
	})

	p.log.Debug("poll cycle complete", "volumes", len(metrics))

	return nil
}
