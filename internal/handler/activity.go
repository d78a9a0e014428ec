package handler

import (
	"net/http"

	"github.com/osse101/ShadowArmy_Go/internal/eventlog"
)

// ActivityHandler serves the recent game event log
type ActivityHandler struct {
	log eventlog.Service
}

// NewActivityHandler creates a new activity handler. svc may be nil when the
// activity log is disabled.
func NewActivityHandler(svc eventlog.Service) *ActivityHandler {
	return &ActivityHandler{log: svc}
}

// ActivityResponse lists log entries newest first
type ActivityResponse struct {
	Entries []eventlog.Entry `json:"entries"`
	Count   int              `json:"count"`
}

// HandleRecent returns recent game events
// @Summary Recent activity
// @Tags activity
// @Produce json
// @Param type query string false "Event type, e.g. hunt.completed"
// @Param limit query int false "Maximum entries (default 50, max 500)"
// @Success 200 {object} ActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/activity [get]
func (h *ActivityHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	if h.log == nil {
		respondError(w, http.StatusServiceUnavailable, ErrMsgActivityUnavailable)
		return
	}

	limit, ok := GetLimitParam(r, w)
	if !ok {
		return
	}
	eventType := GetOptionalQueryParam(r, "type", "")

	entries, err := h.log.Recent(r.Context(), eventType, limit)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetActivityFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, ActivityResponse{Entries: entries, Count: len(entries)})
}
