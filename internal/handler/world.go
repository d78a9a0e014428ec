package handler

import (
	"net/http"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/game"
	"github.com/osse101/ShadowArmy_Go/internal/utils"
)

// WorldHandler serves the static catalog and aggregate statistics
type WorldHandler struct {
	game game.Service
}

// NewWorldHandler creates a new world handler
func NewWorldHandler(svc game.Service) *WorldHandler {
	return &WorldHandler{game: svc}
}

// AreaResponse is a catalog area with the player's access to it
type AreaResponse struct {
	domain.Area
	Unlocked         bool   `json:"unlocked"`
	HuntDurationText string `json:"hunt_duration_text"`
}

// CatalogResponse is the full static content
type CatalogResponse struct {
	Areas   []AreaResponse          `json:"areas"`
	Shadows []domain.ShadowTemplate `json:"shadows"`
}

// StatsResponse combines army and lifetime statistics
type StatsResponse struct {
	Army             domain.ShadowArmyStats `json:"army"`
	Hunter           domain.HunterStats     `json:"hunter"`
	ExpPerSecond     float64                `json:"exp_per_second"`
	ExpPerSecondText string                 `json:"exp_per_second_text"`
	TimeHuntingText  string                 `json:"time_hunting_text"`
}

// ExpRateResponse is the current passive income
type ExpRateResponse struct {
	ExpPerSecond float64 `json:"exp_per_second"`
	ExpPerHour   float64 `json:"exp_per_hour"`
	Display      string  `json:"display"`
}

// HandleCatalog lists every area and shadow template
// @Summary Game catalog
// @Tags world
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /api/v1/catalog [get]
func (h *WorldHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := h.game.Catalog()
	unlocked := make(map[string]bool)
	for _, a := range h.game.UnlockedAreas(r.Context()) {
		unlocked[a.ID] = true
	}

	areas := make([]AreaResponse, 0, len(cat.Areas()))
	for _, a := range cat.Areas() {
		areas = append(areas, AreaResponse{
			Area:             a,
			Unlocked:         unlocked[a.ID],
			HuntDurationText: utils.FormatDuration(a.HuntDuration()),
		})
	}
	respondJSON(w, http.StatusOK, CatalogResponse{Areas: areas, Shadows: cat.ShadowTemplates()})
}

// HandleUnlockedAreas lists areas the player can hunt in or deploy to
// @Summary Unlocked areas
// @Tags world
// @Produce json
// @Success 200 {array} domain.Area
// @Router /api/v1/areas [get]
func (h *WorldHandler) HandleUnlockedAreas(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.game.UnlockedAreas(r.Context()))
}

// HandleStats returns army and hunter statistics
// @Summary Statistics
// @Tags world
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /api/v1/stats [get]
func (h *WorldHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hunter := h.game.HunterStats(ctx)
	rate := h.game.ExpPerSecond(ctx)
	respondJSON(w, http.StatusOK, StatsResponse{
		Army:             h.game.ArmyStats(ctx),
		Hunter:           hunter,
		ExpPerSecond:     rate,
		ExpPerSecondText: utils.FormatNumber(utils.RoundTo(rate, 2)) + "/s",
		TimeHuntingText:  utils.FormatDuration(time.Duration(hunter.TimeSpentHuntingMs) * time.Millisecond),
	})
}

// HandleExpRate returns passive experience per second
// @Summary Experience rate
// @Tags world
// @Produce json
// @Success 200 {object} ExpRateResponse
// @Router /api/v1/exp-rate [get]
func (h *WorldHandler) HandleExpRate(w http.ResponseWriter, r *http.Request) {
	rate := h.game.ExpPerSecond(r.Context())
	respondJSON(w, http.StatusOK, ExpRateResponse{
		ExpPerSecond: rate,
		ExpPerHour:   rate * 3600,
		Display:      utils.FormatNumber(utils.RoundTo(rate, 2)) + "/s",
	})
}
