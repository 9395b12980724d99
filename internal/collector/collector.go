// Package collector reads the current utilization of every mounted volume.
//
// Sources are tried in order: native OS enumeration, the duf tool, and a
// synthetic generator. The first source that yields at least one metric
// wins, so a sample is never empty and never fails.
package collector

import (
	"context"
	"math"

	"diskmon/internal/domain"
	"diskmon/internal/logger"
)

type Provider interface {
	Name() string
	Probe(ctx context.Context) ([]domain.VolumeMetric, error)
}

type Collector struct {
	providers []Provider
	log       logger.Logger
}

func New(hostname string, log logger.Logger) *Collector {
	return &Collector{
		providers: []Provider{
			&nativeProvider{hostname: hostname, log: log},
			&dufProvider{hostname: hostname},
			&syntheticProvider{hostname: hostname},
		},
		log: log,
	}
}

// Sample returns the current volume metrics from the first usable source.
func (c *Collector) Sample(ctx context.Context) []domain.VolumeMetric {
	for _, p := range c.providers {
		metrics, err := p.Probe(ctx)
		if err != nil {
			c.log.Debug("volume source failed", "source", p.Name(), "error", err)
			continue
		}
		if len(metrics) == 0 {
			c.log.Debug("volume source returned nothing", "source", p.Name())
			continue
		}
		return metrics
	}

	// Unreachable: the synthetic provider cannot fail or come back empty.
	return nil
}

// roundPercent normalizes a usage percentage to one decimal within [0, 100].
func roundPercent(pct float64) float64 {
	rounded := math.Round(pct*10) / 10
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
