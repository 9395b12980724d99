package collector

import (
	"context"

	"diskmon/internal/domain"
	"diskmon/internal/logger"

	"github.com/shirou/gopsutil/v3/disk"
)

// nativeProvider enumerates mounted volumes through the OS. A volume whose
// usage cannot be read (permissions, stale mounts) is skipped; only a
// failure to enumerate partitions at all abandons the source.
type nativeProvider struct {
	hostname string
	log      logger.Logger
}

func (p *nativeProvider) Name() string { return "native" }

func (p *nativeProvider) Probe(ctx context.Context) ([]domain.VolumeMetric, error) {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}

	var metrics []domain.VolumeMetric
	for _, part := range partitions {
		usage, err := disk.UsageWithContext(ctx, part.Mountpoint)
		if err != nil {
			p.log.Debug("skipping volume", "mountpoint", part.Mountpoint, "error", err)
			continue
		}

		metrics = append(metrics, domain.VolumeMetric{
			Hostname:     p.hostname,
			Mountpoint:   part.Mountpoint,
			Device:       part.Device,
			Fstype:       part.Fstype,
			TotalBytes:   usage.Total,
			UsedBytes:    usage.Used,
			FreeBytes:    usage.Free,
			UsagePercent: roundPercent(usage.UsedPercent),
		})
	}

	return metrics, nil
}
