package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Code is set for rejected
// actions so clients can branch on it.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgFarmNotFoundError  = "Farm not found. Register first."
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
)

// conflictReasons are rejections caused by the farm's current state rather
// than by the request itself.
var conflictReasons = map[domain.ReasonCode]bool{
	domain.ReasonPlotAlreadyUnlocked: true,
	domain.ReasonPlotOccupied:        true,
	domain.ReasonAlreadyFertilized:   true,
	domain.ReasonAlreadyCheckedIn:    true,
	domain.ReasonAlreadyRedeemed:     true,
	domain.ReasonPetOwned:            true,
}

// mapServiceError converts a service error to a status code and response body.
// Reason errors keep their message and code; anything unexpected is hidden
// behind a generic message.
func mapServiceError(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgUnknownError}
	}

	var re *domain.ReasonError
	if errors.As(err, &re) {
		status := http.StatusBadRequest
		if conflictReasons[re.Code] {
			status = http.StatusConflict
		}
		return status, ErrorResponse{Error: err.Error(), Code: string(re.Code)}
	}

	switch {
	case errors.Is(err, domain.ErrFarmNotFound):
		return http.StatusNotFound, ErrorResponse{Error: ErrMsgFarmNotFoundError}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidInputError}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgGenericServerError}
}

// respondServiceError logs err at a level matching its kind and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, body := mapServiceError(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Info(opName+" rejected", "error", err, "code", body.Code)
	}
	respondJSON(w, status, body)
}
