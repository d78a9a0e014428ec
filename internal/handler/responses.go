package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/game"
	"github.com/osse101/ShadowArmy_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON encodes payload before writing any headers, so an encoding
// failure still produces a clean 500.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(buf).Encode(ErrorResponse{Error: ErrMsgGenericServerError})
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed game command and maps it to a user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Debug(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgAuthFailedError    = "Authentication failed. Please check your API key."
	ErrMsgResourceNotFound   = "Resource not found."
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."

	// Game messages
	ErrMsgAreaNotFoundError     = "Area not found"
	ErrMsgShadowNotFoundError   = "Shadow not found"
	ErrMsgTemplateNotFoundError = "Shadow template not found"
	ErrMsgSaveNotFoundError     = "No saved game in this slot"
	ErrMsgUnknownStatError      = "Unknown stat"
	ErrMsgNoActiveHuntError     = "You are not hunting"
	ErrMsgAlreadyDeployedError  = "That shadow is already deployed"
	ErrMsgNotDeployedError      = "That shadow is not deployed"
	ErrMsgAreaLockedError       = "That area is still locked. Level up to reach it."
	ErrMsgInvalidInputError     = "Invalid request. Please check your inputs."
	ErrMsgStorageDisabledError  = "Saving is not configured on this server"
	ErrMsgBadSaveError          = "The saved game could not be read"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Specific sentinels are checked before the NotFound/InvalidState/InvalidInput kinds.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrAreaNotFound):
		return http.StatusNotFound, ErrMsgAreaNotFoundError
	case errors.Is(err, domain.ErrShadowNotFound):
		return http.StatusNotFound, ErrMsgShadowNotFoundError
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, ErrMsgTemplateNotFoundError
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound, ErrMsgSaveNotFoundError
	case errors.Is(err, domain.ErrStatNotFound):
		return http.StatusBadRequest, ErrMsgUnknownStatError
	case errors.Is(err, domain.ErrNoActiveSession):
		return http.StatusConflict, ErrMsgNoActiveHuntError
	case errors.Is(err, domain.ErrAlreadyDeployed):
		return http.StatusConflict, ErrMsgAlreadyDeployedError
	case errors.Is(err, domain.ErrNotDeployed):
		return http.StatusConflict, ErrMsgNotDeployedError
	case errors.Is(err, domain.ErrAreaLocked):
		return http.StatusConflict, ErrMsgAreaLockedError
	case errors.Is(err, game.ErrNoRepository):
		return http.StatusServiceUnavailable, ErrMsgStorageDisabledError
	case errors.Is(err, domain.ErrCorruptSnapshot), errors.Is(err, domain.ErrUnsupportedSnapshot):
		return http.StatusUnprocessableEntity, ErrMsgBadSaveError
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgResourceNotFound
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
