package handler

import (
	"net/http"

	"github.com/osse101/ZetaFarm_Go/internal/checkin"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/letters"
)

// Draw spends tickets on the gacha
// @Summary Draw from the gacha
// @Tags gacha
// @Accept json
// @Produce json
// @Param request body DrawData true "Number of draws (address alongside)"
// @Success 200 {object} gacha.DrawResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /gacha/draw [post]
func (h *ActionHandler) Draw(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionDraw)(w, r)
}

// CheckIn claims today's check-in reward
// @Summary Daily check-in
// @Tags checkin
// @Accept json
// @Produce json
// @Param request body AddressRequest true "Player address"
// @Success 200 {object} checkin.Result
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /checkin [post]
func (h *ActionHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionCheckIn)(w, r)
}

// Redeem trades a completed phrase for its reward
// @Summary Redeem a letter phrase
// @Tags letters
// @Accept json
// @Produce json
// @Param request body RedeemData true "Phrase index (address alongside)"
// @Success 200 {object} letters.Redemption
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /letters/redeem [post]
func (h *ActionHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionLetterExchange)(w, r)
}

// HandleCheckInHistory lists the days a player checked in
// @Summary Check-in history
// @Tags checkin
// @Produce json
// @Param address query string true "Player address"
// @Param month query string false "Month as YYYY-MM, defaults to the current month"
// @Success 200 {object} checkin.History
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /checkin/history [get]
func HandleCheckInHistory(svc checkin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, ok := GetQueryParam(r, w, "address")
		if !ok {
			return
		}
		month := GetOptionalQueryParam(r, "month", "")

		history, err := svc.History(r.Context(), address, month)
		if err != nil {
			respondServiceError(w, r, "Check-in history", err)
			return
		}
		respondJSON(w, http.StatusOK, history)
	}
}

// HandleLetterProgress shows letter progress for every phrase
// @Summary Letter progress
// @Tags letters
// @Produce json
// @Param address query string true "Player address"
// @Success 200 {array} letters.PhraseProgress
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /letters [get]
func HandleLetterProgress(svc letters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, ok := GetQueryParam(r, w, "address")
		if !ok {
			return
		}

		progress, err := svc.Progress(r.Context(), address)
		if err != nil {
			respondServiceError(w, r, "Letter progress", err)
			return
		}
		respondJSON(w, http.StatusOK, progress)
	}
}
