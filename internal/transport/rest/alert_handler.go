package rest

import (
	"net/http"
	"strconv"

	"diskmon/internal/domain"
)

type AlertHandler struct {
	svc domain.AlertService
}

func NewAlertHandler(svc domain.AlertService) *AlertHandler {
	return &AlertHandler{svc: svc}
}

type alertsQuery struct {
	Limit int `validate:"min=1,max=500"`
}

func (h *AlertHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := alertsQuery{Limit: GetInt(r.URL.Query(), "limit", 50)}
	if errors := ValidateStruct(query); errors != nil {
		JSONValidationError(w, errors)
		return
	}

	alerts, err := h.svc.List(r.Context(), query.Limit)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "failed to query alerts")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Data: alerts,
	})
}

// Acknowledge is idempotent; an unknown id still reports success.
func (h *AlertHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusNotFound, "alert not found")
		return
	}

	if err := h.svc.Acknowledge(r.Context(), id); err != nil {
		JSONError(w, http.StatusInternalServerError, "failed to acknowledge alert")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Data: map[string]string{"status": "ok"},
	})
}
