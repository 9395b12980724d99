package collector

import (
	"context"
	"errors"
	"testing"

	"diskmon/internal/domain"
	"diskmon/internal/logger"
)

type fakeProvider struct {
	name    string
	metrics []domain.VolumeMetric
	err     error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Probe(ctx context.Context) ([]domain.VolumeMetric, error) {
	return p.metrics, p.err
}

func metric(mount string, pct float64) domain.VolumeMetric {
	return domain.VolumeMetric{
		Hostname:     "testhost",
		Mountpoint:   mount,
		Device:       "/dev/sda1",
		Fstype:       "ext4",
		TotalBytes:   100 * gib,
		UsedBytes:    uint64(float64(100*gib) * pct / 100),
		UsagePercent: pct,
	}
}

func TestSample(t *testing.T) {
	t.Run("first non-empty source wins", func(t *testing.T) {
		c := &Collector{
			providers: []Provider{
				&fakeProvider{name: "first", metrics: []domain.VolumeMetric{metric("/", 42)}},
				&fakeProvider{name: "second", metrics: []domain.VolumeMetric{metric("/home", 10)}},
			},
			log: logger.Discard(),
		}

		got := c.Sample(context.Background())
		if len(got) != 1 || got[0].Mountpoint != "/" {
			t.Fatalf("expected the first source's metrics, got %+v", got)
		}
	})

	t.Run("failed and empty sources fall through", func(t *testing.T) {
		c := &Collector{
			providers: []Provider{
				&fakeProvider{name: "broken", err: errors.New("boom")},
				&fakeProvider{name: "empty"},
				&fakeProvider{name: "last", metrics: []domain.VolumeMetric{metric("/data", 55)}},
			},
			log: logger.Discard(),
		}

		got := c.Sample(context.Background())
		if len(got) != 1 || got[0].Mountpoint != "/data" {
			t.Fatalf("expected fall-through to the last source, got %+v", got)
		}
	})

	t.Run("never empty when only synthetic remains", func(t *testing.T) {
		c := &Collector{
			providers: []Provider{
				&fakeProvider{name: "broken", err: errors.New("boom")},
				&fakeProvider{name: "also broken", err: errors.New("boom")},
				&syntheticProvider{hostname: "testhost"},
			},
			log: logger.Discard(),
		}

		got := c.Sample(context.Background())
		if len(got) == 0 {
			t.Fatal("expected synthetic fallback to produce metrics")
		}
	})
}

func TestSyntheticProvider(t *testing.T) {
	p := &syntheticProvider{hostname: "testhost"}

	metrics, err := p.Probe(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(metrics) == 0 {
		t.Fatal("expected at least one synthetic volume")
	}

	for _, m := range metrics {
		if m.TotalBytes == 0 {
			t.Errorf("%s: total_bytes must be positive", m.Mountpoint)
		}
		if m.UsagePercent < 0 || m.UsagePercent > 100 {
			t.Errorf("%s: usage_percent %v out of range", m.Mountpoint, m.UsagePercent)
		}
		if m.UsedBytes+m.FreeBytes != m.TotalBytes {
			t.Errorf("%s: used+free != total", m.Mountpoint)
		}
		if m.Hostname != "testhost" {
			t.Errorf("%s: unexpected hostname %q", m.Mountpoint, m.Hostname)
		}
	}
}

func TestRoundPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{42.34, 42.3},
		{42.35, 42.4},
		{-0.5, 0},
		{100.04, 100},
		{101, 100},
		{0, 0},
		{100, 100},
	}

	for _, tc := range cases {
		if got := roundPercent(tc.in); got != tc.want {
			t.Errorf("roundPercent(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
