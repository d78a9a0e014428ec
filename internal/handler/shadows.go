package handler

import (
	"context"
	"net/http"
	"sort"

	"github.com/osse101/ShadowArmy_Go/internal/game"
	"github.com/osse101/ShadowArmy_Go/internal/utils"
)

// ShadowHandler manages the shadow army
type ShadowHandler struct {
	game game.Service
}

// NewShadowHandler creates a new shadow handler
func NewShadowHandler(svc game.Service) *ShadowHandler {
	return &ShadowHandler{game: svc}
}

// AssignAreaRequest names the area for deploy and reassign
type AssignAreaRequest struct {
	AreaID string `json:"area_id" validate:"required,slug,max=64"`
}

// ShadowResponse is one shadow with display fields
type ShadowResponse struct {
	game.ShadowView
	RarityDisplay string `json:"rarity_display"`
	RateDisplay   string `json:"rate_display"`
}

// ShadowListResponse lists the army
type ShadowListResponse struct {
	Shadows []ShadowResponse `json:"shadows"`
	Count   int              `json:"count"`
}

// DeploymentGroup is one area's deployed shadows
type DeploymentGroup struct {
	AreaID    string   `json:"area_id"`
	AreaName  string   `json:"area_name"`
	ShadowIDs []string `json:"shadow_ids"`
}

func newShadowResponse(v game.ShadowView) ShadowResponse {
	return ShadowResponse{
		ShadowView:    v,
		RarityDisplay: utils.TitleCase(string(v.Rarity)),
		RateDisplay:   utils.FormatNumber(utils.RoundTo(v.ExpPerSecond, 2)) + "/s",
	}
}

// HandleList returns every owned shadow
// @Summary List shadows
// @Tags shadows
// @Produce json
// @Success 200 {object} ShadowListResponse
// @Router /api/v1/shadows [get]
func (h *ShadowHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	views := h.game.Shadows(r.Context())
	out := make([]ShadowResponse, 0, len(views))
	for _, v := range views {
		out = append(out, newShadowResponse(v))
	}
	respondJSON(w, http.StatusOK, ShadowListResponse{Shadows: out, Count: len(out)})
}

// HandleGet returns a single shadow
// @Summary Get shadow
// @Tags shadows
// @Produce json
// @Param id path string true "Shadow ID"
// @Success 200 {object} ShadowResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shadows/{id} [get]
func (h *ShadowHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	view, err := h.game.Shadow(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get shadow", err)
		return
	}
	respondJSON(w, http.StatusOK, newShadowResponse(view))
}

// HandleDeploy sends an idle shadow to farm an area
// @Summary Deploy shadow
// @Tags shadows
// @Accept json
// @Produce json
// @Param id path string true "Shadow ID"
// @Param request body AssignAreaRequest true "Target area"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/shadows/{id}/deploy [post]
func (h *ShadowHandler) HandleDeploy(w http.ResponseWriter, r *http.Request) {
	h.assign(w, r, "Deploy shadow", MsgShadowDeployed, h.game.Deploy)
}

// HandleReassign moves a deployed shadow to another area
// @Summary Reassign shadow
// @Tags shadows
// @Accept json
// @Produce json
// @Param id path string true "Shadow ID"
// @Param request body AssignAreaRequest true "Target area"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/shadows/{id}/reassign [post]
func (h *ShadowHandler) HandleReassign(w http.ResponseWriter, r *http.Request) {
	h.assign(w, r, "Reassign shadow", MsgShadowReassigned, h.game.Reassign)
}

// HandleRecall returns a shadow to idle; recalling an idle shadow is a no-op
// @Summary Recall shadow
// @Tags shadows
// @Produce json
// @Param id path string true "Shadow ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shadows/{id}/recall [post]
func (h *ShadowHandler) HandleRecall(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	if err := h.game.Recall(r.Context(), id); err != nil {
		respondServiceError(w, r, "Recall shadow", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgShadowRecalled})
}

// HandleDeployments lists deployed shadow ids per area
// @Summary List deployments
// @Tags shadows
// @Produce json
// @Success 200 {array} DeploymentGroup
// @Router /api/v1/deployments [get]
func (h *ShadowHandler) HandleDeployments(w http.ResponseWriter, r *http.Request) {
	deployments := h.game.Deployments(r.Context())
	cat := h.game.Catalog()

	groups := make([]DeploymentGroup, 0, len(deployments))
	for areaID, ids := range deployments {
		g := DeploymentGroup{AreaID: areaID, ShadowIDs: ids}
		if area, ok := cat.AreaByID(areaID); ok {
			g.AreaName = area.Name
		}
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].AreaID < groups[j].AreaID })
	respondJSON(w, http.StatusOK, groups)
}

func (h *ShadowHandler) assign(w http.ResponseWriter, r *http.Request, opName, okMsg string, action func(ctx context.Context, shadowID, areaID string) error) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	var req AssignAreaRequest
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}
	if err := action(r.Context(), id, req.AreaID); err != nil {
		respondServiceError(w, r, opName, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: okMsg})
}
