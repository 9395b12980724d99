package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"diskmon/internal/domain"
)

const dufTimeout = 10 * time.Second

// dufProvider shells out to duf for a structured volume report. Any
// invocation, timeout, or parse failure abandons the whole source; there
// is no partial result.
type dufProvider struct {
	hostname string
}

type dufEntry struct {
	MountPoint string `json:"mount_point"`
	Device     string `json:"device"`
	FileSystem string `json:"file_system"`
	Total      uint64 `json:"total"`
	Used       uint64 `json:"used"`
	Free       uint64 `json:"free"`
}

func (p *dufProvider) Name() string { return "duf" }

func (p *dufProvider) Probe(ctx context.Context) ([]domain.VolumeMetric, error) {
	ctx, cancel := context.WithTimeout(ctx, dufTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "duf", "--json").Output()
	if err != nil {
		return nil, fmt.Errorf("invoke duf: %w", err)
	}

	var entries []dufEntry
	if err := json.Unmarshal(out, &entries); err != nil {
		return nil, fmt.Errorf("parse duf output: %w", err)
	}

	return p.convert(entries), nil
}

func (p *dufProvider) convert(entries []dufEntry) []domain.VolumeMetric {
	metrics := make([]domain.VolumeMetric, 0, len(entries))
	for _, e := range entries {
		mount := e.MountPoint
		if mount == "" {
			mount = "unknown"
		}
		device := e.Device
		if device == "" {
			device = "unknown"
		}
		fstype := e.FileSystem
		if fstype == "" {
			fstype = "unknown"
		}

		// duf omits free for some pseudo filesystems.
		free := e.Free
		if free == 0 && e.Total >= e.Used {
			free = e.Total - e.Used
		}

		var pct float64
		if e.Total > 0 {
			pct = roundPercent(float64(e.Used) / float64(e.Total) * 100)
		}

		metrics = append(metrics, domain.VolumeMetric{
			Hostname:     p.hostname,
			Mountpoint:   mount,
			Device:       device,
			Fstype:       fstype,
			TotalBytes:   e.Total,
			UsedBytes:    e.Used,
			FreeBytes:    free,
			UsagePercent: pct,
		})
	}
	return metrics
}
