package handler

import (
	"net/http"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/game"
)

// AdminHandler exposes commands that bypass normal play
type AdminHandler struct {
	game game.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(svc game.Service) *AdminHandler {
	return &AdminHandler{game: svc}
}

// ApplyExperienceRequest grants player experience directly
type ApplyExperienceRequest struct {
	Amount float64 `json:"amount" validate:"gt=0,max=1000000000"`
}

// ExperienceResponse reports level changes from a grant
type ExperienceResponse struct {
	Message string                 `json:"message"`
	Outcome game.ExperienceOutcome `json:"outcome"`
	Player  domain.PlayerProgress  `json:"player"`
}

// ExtractShadowRequest adds a shadow from a template
type ExtractShadowRequest struct {
	TemplateID string `json:"template_id" validate:"required,slug,max=64"`
}

// ExtractShadowResponse returns the new shadow's id
type ExtractShadowResponse struct {
	Message  string `json:"message"`
	ShadowID string `json:"shadow_id"`
}

// ShadowExperienceRequest grants experience to one shadow
type ShadowExperienceRequest struct {
	Amount float64 `json:"amount" validate:"gt=0,max=1000000000"`
}

// HandleApplyExperience grants player experience
// @Summary Grant player experience
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ApplyExperienceRequest true "Amount"
// @Success 200 {object} ExperienceResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/admin/experience [post]
func (h *AdminHandler) HandleApplyExperience(w http.ResponseWriter, r *http.Request) {
	var req ApplyExperienceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Apply experience"); err != nil {
		return
	}
	out, err := h.game.ApplyExperience(r.Context(), req.Amount)
	if err != nil {
		respondServiceError(w, r, "Apply experience", err)
		return
	}
	respondJSON(w, http.StatusOK, ExperienceResponse{
		Message: MsgExperienceAdded,
		Outcome: out,
		Player:  h.game.Player(r.Context()),
	})
}

// HandleExtractShadow adds a shadow without a hunt drop
// @Summary Extract shadow
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ExtractShadowRequest true "Template"
// @Success 201 {object} ExtractShadowResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/shadows [post]
func (h *AdminHandler) HandleExtractShadow(w http.ResponseWriter, r *http.Request) {
	var req ExtractShadowRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Extract shadow"); err != nil {
		return
	}
	id, err := h.game.ExtractShadow(r.Context(), req.TemplateID)
	if err != nil {
		respondServiceError(w, r, "Extract shadow", err)
		return
	}
	respondJSON(w, http.StatusCreated, ExtractShadowResponse{Message: MsgShadowExtracted, ShadowID: id})
}

// HandleShadowExperience grants experience to a shadow
// @Summary Grant shadow experience
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Shadow ID"
// @Param request body ShadowExperienceRequest true "Amount"
// @Success 200 {object} domain.ShadowLevelResult
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/shadows/{id}/experience [post]
func (h *AdminHandler) HandleShadowExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	var req ShadowExperienceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Shadow experience"); err != nil {
		return
	}
	result, err := h.game.GainShadowExp(r.Context(), id, req.Amount)
	if err != nil {
		respondServiceError(w, r, "Shadow experience", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleReconcile applies progress for time since the last checkpoint
// @Summary Reconcile offline progress
// @Tags admin
// @Produce json
// @Success 200 {object} OfflineReportResponse
// @Router /api/v1/admin/reconcile [post]
func (h *AdminHandler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.game.Reconcile(r.Context())
	if err != nil {
		respondServiceError(w, r, "Reconcile", err)
		return
	}
	msg := MsgOfflineApplied
	if !report.Applied {
		msg = MsgNothingOffline
	}
	respondJSON(w, http.StatusOK, newOfflineReportResponse(msg, report))
}

// HandleReset starts a new game and overwrites the save slot
// @Summary Reset game
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/reset [post]
func (h *AdminHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.game.ResetGame(r.Context()); err != nil {
		respondServiceError(w, r, "Reset game", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGameReset})
}
