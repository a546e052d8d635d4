package handler

import (
	"net/http"

	"github.com/osse101/ZetaFarm_Go/internal/eventlog"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
)

// HandleGetActivity returns a farm's recent events, newest first
// @Summary Farm activity
// @Tags farm
// @Produce json
// @Param address query string true "Player address"
// @Param limit query int false "Maximum number of events"
// @Success 200 {array} eventlog.Event
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /farm/activity [get]
func HandleGetActivity(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, ok := GetQueryParam(r, w, "address")
		if !ok {
			return
		}
		limit, ok := GetOptionalIntQueryParam(r, w, "limit", 0)
		if !ok {
			return
		}

		events, err := svc.Activity(r.Context(), address, limit)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to load activity", "address", address, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgActivityUnavailable)
			return
		}
		if events == nil {
			events = []eventlog.Event{}
		}
		respondJSON(w, http.StatusOK, events)
	}
}
