package collector

import (
	"encoding/json"
	"testing"
)

func TestDufConvert(t *testing.T) {
	raw := []byte(`[
		{"mount_point": "/", "device": "/dev/sda1", "file_system": "ext4", "total": 1000, "used": 930, "free": 70},
		{"mount_point": "/boot", "device": "/dev/sda2", "file_system": "vfat", "total": 500, "used": 100},
		{"device": "tmpfs", "total": 0, "used": 0}
	]`)

	var entries []dufEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	p := &dufProvider{hostname: "testhost"}
	metrics := p.convert(entries)

	if len(metrics) != 3 {
		t.Fatalf("expected 3 metrics, got %d", len(metrics))
	}

	t.Run("complete entry", func(t *testing.T) {
		m := metrics[0]
		if m.UsagePercent != 93 {
			t.Errorf("expected 93%%, got %v", m.UsagePercent)
		}
		if m.FreeBytes != 70 {
			t.Errorf("expected free 70, got %d", m.FreeBytes)
		}
	})

	t.Run("missing free is derived from total-used", func(t *testing.T) {
		m := metrics[1]
		if m.FreeBytes != 400 {
			t.Errorf("expected derived free 400, got %d", m.FreeBytes)
		}
		if m.UsagePercent != 20 {
			t.Errorf("expected 20%%, got %v", m.UsagePercent)
		}
	})

	t.Run("zero total and missing fields", func(t *testing.T) {
		m := metrics[2]
		if m.UsagePercent != 0 {
			t.Errorf("expected 0%% for zero total, got %v", m.UsagePercent)
		}
		if m.Mountpoint != "unknown" {
			t.Errorf("expected mountpoint 'unknown', got %q", m.Mountpoint)
		}
		if m.Fstype != "unknown" {
			t.Errorf("expected fstype 'unknown', got %q", m.Fstype)
		}
	})
}

func TestDufMalformedOutput(t *testing.T) {
	var entries []dufEntry
	if err := json.Unmarshal([]byte(`{"not": "a list"}`), &entries); err == nil {
		t.Fatal("expected parse error for malformed duf output")
	}
}
