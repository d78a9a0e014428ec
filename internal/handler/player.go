package handler

import (
	"net/http"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/game"
	"github.com/osse101/ShadowArmy_Go/internal/utils"
)

// PlayerHandler serves the hunter's progress
type PlayerHandler struct {
	game game.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(svc game.Service) *PlayerHandler {
	return &PlayerHandler{game: svc}
}

// PlayerResponse is the player's progress plus display strings
type PlayerResponse struct {
	domain.PlayerProgress
	ExpPerSecond    float64 `json:"exp_per_second"`
	ExpDisplay      string  `json:"exp_display"`
	ProgressPercent float64 `json:"progress_percent"`
}

// AllocateStatRequest spends one stat point
type AllocateStatRequest struct {
	Stat string `json:"stat" validate:"required,stat"`
}

// AllocateStatResponse reports whether a point was spent
type AllocateStatResponse struct {
	Message             string             `json:"message"`
	Spent               bool               `json:"spent"`
	AvailableStatPoints int                `json:"available_stat_points"`
	Stats               domain.PlayerStats `json:"stats"`
}

func newPlayerResponse(p domain.PlayerProgress, rate float64) PlayerResponse {
	resp := PlayerResponse{
		PlayerProgress: p,
		ExpPerSecond:   rate,
		ExpDisplay:     utils.FormatNumber(utils.RoundTo(p.CurrentExp, 1)) + " / " + utils.FormatNumber(p.ExpToNext),
	}
	if p.ExpToNext > 0 {
		resp.ProgressPercent = utils.RoundTo(utils.Clamp(p.CurrentExp/p.ExpToNext*100, 0, 100), 1)
	}
	return resp
}

// HandleGetPlayer returns the player's level, experience and stats
// @Summary Get player
// @Description Returns the hunter's level, experience, stat points and current exp/s
// @Tags player
// @Produce json
// @Success 200 {object} PlayerResponse
// @Router /api/v1/player [get]
func (h *PlayerHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	respondJSON(w, http.StatusOK, newPlayerResponse(h.game.Player(ctx), h.game.ExpPerSecond(ctx)))
}

// HandleAllocateStat spends an available stat point
// @Summary Allocate stat point
// @Description Spends one stat point on strength, agility, intelligence, vitality or sense
// @Tags player
// @Accept json
// @Produce json
// @Param request body AllocateStatRequest true "Stat to raise"
// @Success 200 {object} AllocateStatResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/player/stats [post]
func (h *PlayerHandler) HandleAllocateStat(w http.ResponseWriter, r *http.Request) {
	var req AllocateStatRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Allocate stat"); err != nil {
		return
	}

	spent, err := h.game.AllocateStatPoint(r.Context(), req.Stat)
	if err != nil {
		respondServiceError(w, r, "Allocate stat", err)
		return
	}

	p := h.game.Player(r.Context())
	msg := MsgStatAllocated
	if !spent {
		msg = MsgNoStatPoints
	}
	respondJSON(w, http.StatusOK, AllocateStatResponse{
		Message:             msg,
		Spent:               spent,
		AvailableStatPoints: p.AvailableStatPoints,
		Stats:               p.Stats,
	})
}
