package rest

import (
	"net/http"
	"strings"
	"time"

	"diskmon/internal/domain"
)

type UsageHandler struct {
	sampler   domain.VolumeSampler
	snapshots domain.SnapshotRepository
	hostname  string
	threshold float64
}

func NewUsageHandler(sampler domain.VolumeSampler, snapshots domain.SnapshotRepository, hostname string, threshold float64) *UsageHandler {
	return &UsageHandler{
		sampler:   sampler,
		snapshots: snapshots,
		hostname:  hostname,
		threshold: threshold,
	}
}

type currentUsage struct {
	Hostname       string                `json:"hostname"`
	Timestamp      time.Time             `json:"timestamp"`
	Disks          []domain.VolumeMetric `json:"disks"`
	AlertThreshold float64               `json:"alert_threshold"`
}

// Current samples the volumes on demand, independent of the poll loop.
func (h *UsageHandler) Current(w http.ResponseWriter, r *http.Request) {
	disks := h.sampler.Sample(r.Context())

	JSONSuccess(w, http.StatusOK, APIResponse{
		Data: currentUsage{
			Hostname:       h.hostname,
			Timestamp:      time.Now().UTC(),
			Disks:          disks,
			AlertThreshold: h.threshold,
		},
	})
}

type historyQuery struct {
	Hours int `validate:"min=1,max=8760"`
}

type usageHistory struct {
	Mountpoint string                `json:"mountpoint"`
	Hours      int                   `json:"hours"`
	Data       []domain.HistoryPoint `json:"data"`
}

func (h *UsageHandler) History(w http.ResponseWriter, r *http.Request) {
	// Mountpoints are absolute paths; the leading slash is swallowed by
	// the route pattern, so "home" here means "/home".
	mountpoint := r.PathValue("mountpoint")
	if !strings.HasPrefix(mountpoint, "/") {
		mountpoint = "/" + mountpoint
	}

	query := historyQuery{Hours: GetInt(r.URL.Query(), "hours", 24)}
	if errors := ValidateStruct(query); errors != nil {
		JSONValidationError(w, errors)
		return
	}

	data, err := h.snapshots.History(r.Context(), mountpoint, query.Hours)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "failed to query history")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Data: usageHistory{
			Mountpoint: mountpoint,
			Hours:      query.Hours,
			Data:       data,
		},
	})
}
