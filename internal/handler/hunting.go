package handler

import (
	"net/http"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/game"
	"github.com/osse101/ShadowArmy_Go/internal/utils"
)

// HuntingHandler drives the active hunting session
type HuntingHandler struct {
	game game.Service
}

// NewHuntingHandler creates a new hunting handler
func NewHuntingHandler(svc game.Service) *HuntingHandler {
	return &HuntingHandler{game: svc}
}

// StartHuntingRequest names the area to hunt in
type StartHuntingRequest struct {
	AreaID string `json:"area_id" validate:"required,slug,max=64"`
}

// HuntingStatusResponse adds a countdown to the session status
type HuntingStatusResponse struct {
	domain.HuntingStatus
	AreaName  string `json:"area_name,omitempty"`
	Countdown string `json:"countdown,omitempty"`
}

// HuntResultResponse is returned when a hunt is forced to completion
type HuntResultResponse struct {
	Message string            `json:"message"`
	Result  domain.HuntResult `json:"result"`
}

// HandleStart begins hunting in an unlocked area, replacing any current session
// @Summary Start hunting
// @Tags hunting
// @Accept json
// @Produce json
// @Param request body StartHuntingRequest true "Area to hunt"
// @Success 200 {object} HuntingStatusResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/hunting/start [post]
func (h *HuntingHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req StartHuntingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start hunting"); err != nil {
		return
	}

	if err := h.game.StartHunting(r.Context(), req.AreaID); err != nil {
		respondServiceError(w, r, "Start hunting", err)
		return
	}
	respondJSON(w, http.StatusOK, h.status(r))
}

// HandleStop ends the current session; stopping while idle is not an error
// @Summary Stop hunting
// @Tags hunting
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/hunting/stop [post]
func (h *HuntingHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	h.game.StopHunting(r.Context())
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgHuntingStopped})
}

// HandleComplete resolves the current cycle immediately
// @Summary Complete hunt
// @Description Resolves the current hunt cycle now, granting its reward and rolling drops
// @Tags hunting
// @Produce json
// @Success 200 {object} HuntResultResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/hunting/complete [post]
func (h *HuntingHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	result, err := h.game.CompleteHunt(r.Context())
	if err != nil {
		respondServiceError(w, r, "Complete hunt", err)
		return
	}
	respondJSON(w, http.StatusOK, HuntResultResponse{Message: MsgHuntCompleted, Result: result})
}

// HandleStatus reports progress through the current cycle
// @Summary Hunting status
// @Tags hunting
// @Produce json
// @Success 200 {object} HuntingStatusResponse
// @Router /api/v1/hunting/status [get]
func (h *HuntingHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.status(r))
}

func (h *HuntingHandler) status(r *http.Request) HuntingStatusResponse {
	st := h.game.HuntingStatus(r.Context())
	resp := HuntingStatusResponse{HuntingStatus: st}
	if !st.Active {
		return resp
	}
	if area, ok := h.game.Catalog().AreaByID(st.AreaID); ok {
		resp.AreaName = area.Name
	}
	resp.Countdown = utils.FormatCountdown(time.Duration(st.RemainingMs) * time.Millisecond)
	return resp
}
