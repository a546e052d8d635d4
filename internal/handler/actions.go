package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/osse101/ZetaFarm_Go/internal/checkin"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/farm"
	"github.com/osse101/ZetaFarm_Go/internal/gacha"
	"github.com/osse101/ZetaFarm_Go/internal/letters"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
	"github.com/osse101/ZetaFarm_Go/internal/shop"
)

// command runs one action type for address with its decoded data
type command func(ctx context.Context, address string, data json.RawMessage) (interface{}, error)

// dataError marks a malformed or invalid data payload
type dataError struct {
	err error
}

func (e *dataError) Error() string { return e.err.Error() }
func (e *dataError) Unwrap() error { return e.err }

// bind decodes and validates the data payload before calling fn
func bind[D any](fn func(ctx context.Context, address string, d D) (interface{}, error)) command {
	return func(ctx context.Context, address string, raw json.RawMessage) (interface{}, error) {
		var d D
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &d); err != nil {
				return nil, &dataError{err: err}
			}
		}
		if err := GetValidator().ValidateStruct(d); err != nil {
			return nil, &dataError{err: err}
		}
		return fn(ctx, address, d)
	}
}

// ActionHandler serves every player action, both through the dedicated
// routes and the generic /actions endpoint.
type ActionHandler struct {
	commands map[string]command
}

// NewActionHandler builds the command table over the game services
func NewActionHandler(farmSvc farm.Service, shopSvc shop.Service, gachaSvc gacha.Service, checkinSvc checkin.Service, lettersSvc letters.Service) *ActionHandler {
	plot := func(fn func(context.Context, string, int) (*farm.View, error)) command {
		return bind(func(ctx context.Context, address string, d PlotData) (interface{}, error) {
			return fn(ctx, address, d.PlotID)
		})
	}

	return &ActionHandler{commands: map[string]command{
		domain.ActionPlant: bind(func(ctx context.Context, address string, d PlantData) (interface{}, error) {
			return farmSvc.Plant(ctx, address, d.PlotID, d.CropID)
		}),
		domain.ActionWater:      plot(farmSvc.Water),
		domain.ActionWeed:       plot(farmSvc.Weed),
		domain.ActionFertilize:  plot(farmSvc.Fertilize),
		domain.ActionPesticide:  plot(farmSvc.Pesticide),
		domain.ActionShovel:     plot(farmSvc.Shovel),
		domain.ActionUnlockPlot: plot(farmSvc.UnlockPlot),
		domain.ActionHarvest: bind(func(ctx context.Context, address string, d PlotData) (interface{}, error) {
			return farmSvc.Harvest(ctx, address, d.PlotID)
		}),
		domain.ActionRobotSubscribe: bind(func(ctx context.Context, address string, d RobotData) (interface{}, error) {
			return farmSvc.SubscribeRobot(ctx, address, farm.RobotRequest{
				Name:            d.Name,
				Email:           d.Email,
				AcceptMarketing: d.AcceptMarketing,
			})
		}),
		domain.ActionBuySeed: bind(func(ctx context.Context, address string, d ItemData) (interface{}, error) {
			return shopSvc.BuySeed(ctx, address, d.ItemID, d.Quantity)
		}),
		domain.ActionBuyFertilizer: bind(func(ctx context.Context, address string, d QuantityData) (interface{}, error) {
			return shopSvc.BuyFertilizer(ctx, address, d.Quantity)
		}),
		domain.ActionSellFruit: bind(func(ctx context.Context, address string, d ItemData) (interface{}, error) {
			return shopSvc.SellFruit(ctx, address, d.ItemID, d.Quantity)
		}),
		domain.ActionExchange: bind(func(ctx context.Context, address string, d ExchangeData) (interface{}, error) {
			return shopSvc.Exchange(ctx, address, d.Currency, d.Coins)
		}),
		domain.ActionBuyPet: bind(func(ctx context.Context, address string, d PetData) (interface{}, error) {
			return shopSvc.BuyPet(ctx, address, d.PetID)
		}),
		domain.ActionDraw: bind(func(ctx context.Context, address string, d DrawData) (interface{}, error) {
			return gachaSvc.Draw(ctx, address, d.Count)
		}),
		domain.ActionCheckIn: bind(func(ctx context.Context, address string, _ struct{}) (interface{}, error) {
			return checkinSvc.CheckIn(ctx, address)
		}),
		domain.ActionLetterExchange: bind(func(ctx context.Context, address string, d RedeemData) (interface{}, error) {
			return lettersSvc.Redeem(ctx, address, d.PhraseIndex)
		}),
	}}
}

// Types lists the action types the handler dispatches
func (h *ActionHandler) Types() []string {
	out := make([]string, 0, len(h.commands))
	for t := range h.commands {
		out = append(out, t)
	}
	return out
}

// HandleAction dispatches a generic action
// @Summary Run a player action
// @Description Dispatches {address, type, data} to the matching farm, shop, gacha, check-in or letter operation
// @Tags actions
// @Accept json
// @Produce json
// @Param request body ActionRequest true "Action envelope"
// @Success 200 {object} interface{} "Operation result"
// @Failure 400 {object} ErrorResponse "Invalid request or rejected action"
// @Failure 404 {object} ErrorResponse "Farm not found"
// @Failure 409 {object} ErrorResponse "Action conflicts with farm state"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /actions [post]
func (h *ActionHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Action"); err != nil {
		return
	}
	h.run(w, r, req.Type, req.Address, req.Data)
}

// Route returns the dedicated handler for one action type. The request body
// is the action's data with the address alongside.
func (h *ActionHandler) Route(actionType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		var req AddressRequest
		if err := json.Unmarshal(body, &req); err != nil {
			logger.FromContext(r.Context()).Warn("Failed to decode action request", "type", actionType, "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := validateRequest(w, &req); err != nil {
			return
		}
		h.run(w, r, actionType, req.Address, body)
	}
}

func (h *ActionHandler) run(w http.ResponseWriter, r *http.Request, actionType, address string, data json.RawMessage) {
	log := logger.FromContext(r.Context())

	cmd, ok := h.commands[actionType]
	if !ok {
		log.Warn("Unknown action type", "type", actionType)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgUnknownActionType, actionType))
		return
	}

	LogRequestFields(log, "type", actionType, "address", address)
	result, err := cmd(r.Context(), address, data)
	if err != nil {
		var de *dataError
		if errors.As(err, &de) {
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  fmt.Sprintf(ErrMsgInvalidActionData, actionType),
				Fields: FormatValidationError(de.err),
			})
			return
		}
		respondServiceError(w, r, actionType, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
