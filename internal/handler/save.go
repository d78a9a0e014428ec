package handler

import (
	"net/http"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/game"
	"github.com/osse101/ShadowArmy_Go/internal/utils"
)

// SaveHandler exposes persistence and offline catch-up
type SaveHandler struct {
	game game.Service
}

// NewSaveHandler creates a new save handler
func NewSaveHandler(svc game.Service) *SaveHandler {
	return &SaveHandler{game: svc}
}

// OfflineReportResponse is an offline report with a readable duration
type OfflineReportResponse struct {
	Message string               `json:"message"`
	Report  domain.OfflineReport `json:"report"`
	Away    string               `json:"away"`
}

func newOfflineReportResponse(msg string, report domain.OfflineReport) OfflineReportResponse {
	return OfflineReportResponse{
		Message: msg,
		Report:  report,
		Away:    utils.FormatDuration(report.TimeOffline),
	}
}

// HandleSave writes the game to its save slot
// @Summary Save game
// @Tags persistence
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/game/save [post]
func (h *SaveHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if err := h.game.Save(r.Context()); err != nil {
		respondServiceError(w, r, "Save game", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGameSaved})
}

// HandleLoad replaces the running game with the saved one and applies offline progress
// @Summary Load game
// @Tags persistence
// @Produce json
// @Success 200 {object} OfflineReportResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/game/load [post]
func (h *SaveHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	report, err := h.game.Load(r.Context())
	if err != nil {
		respondServiceError(w, r, "Load game", err)
		return
	}
	respondJSON(w, http.StatusOK, newOfflineReportResponse(MsgGameLoaded, report))
}

// HandleSnapshot returns the serializable game state
// @Summary Export snapshot
// @Tags persistence
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Router /api/v1/game/snapshot [get]
func (h *SaveHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.game.Snapshot(r.Context()))
}
