package handler

import (
	"net/http"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/farm"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
)

// RegisterResponse is the farm returned by registration
type RegisterResponse struct {
	Farm    *farm.View `json:"farm"`
	Created bool       `json:"created"`
}

// FarmHandler serves farm registration and projections
type FarmHandler struct {
	farmSvc farm.Service
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(farmSvc farm.Service) *FarmHandler {
	return &FarmHandler{farmSvc: farmSvc}
}

// Register creates the default farm for a new player
// @Summary Register a farm
// @Description Creates the starter farm. Registering an existing address returns the current farm.
// @Tags farm
// @Accept json
// @Produce json
// @Param request body AddressRequest true "Player address"
// @Success 200 {object} RegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /farm/register [post]
func (h *FarmHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req AddressRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
		return
	}

	view, created, err := h.farmSvc.Register(r.Context(), req.Address)
	if err != nil {
		respondServiceError(w, r, "Register", err)
		return
	}
	if created {
		logger.FromContext(r.Context()).Info("Farm registered", "address", req.Address)
	}
	respondJSON(w, http.StatusOK, RegisterResponse{Farm: view, Created: created})
}

// Login credits offline pet earnings and returns the farm
// @Summary Log in
// @Description Registers unknown players, credits pet earnings since the last login and stamps the login time
// @Tags farm
// @Accept json
// @Produce json
// @Param request body AddressRequest true "Player address"
// @Success 200 {object} farm.LoginResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /farm/login [post]
func (h *FarmHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req AddressRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
		return
	}

	res, err := h.farmSvc.Login(r.Context(), req.Address)
	if err != nil {
		respondServiceError(w, r, "Login", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// GetFarm returns the farm with every plot's growth status
// @Summary Get a farm
// @Tags farm
// @Produce json
// @Param address query string true "Player address"
// @Success 200 {object} farm.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /farm [get]
func (h *FarmHandler) GetFarm(w http.ResponseWriter, r *http.Request) {
	address, ok := GetQueryParam(r, w, "address")
	if !ok {
		return
	}

	view, err := h.farmSvc.GetFarm(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, "Get farm", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Plant plants a seed on an empty plot
// @Summary Plant a crop
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlantData true "Plot and crop (address alongside)"
// @Success 200 {object} farm.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /farm/plant [post]
func (h *ActionHandler) Plant(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionPlant)(w, r)
}

// Water fulfils the plot's due water requirement
// @Summary Water a plot
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlotData true "Plot (address alongside)"
// @Success 200 {object} farm.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /farm/water [post]
func (h *ActionHandler) Water(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionWater)(w, r)
}

// Weed fulfils the plot's due weed requirement and clears weeds
// @Summary Weed a plot
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlotData true "Plot (address alongside)"
// @Success 200 {object} farm.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /farm/weed [post]
func (h *ActionHandler) Weed(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionWeed)(w, r)
}

// Fertilize warps the crop's growth forward once per planting
// @Summary Fertilize a plot
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlotData true "Plot (address alongside)"
// @Success 200 {object} farm.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /farm/fertilize [post]
func (h *ActionHandler) Fertilize(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionFertilize)(w, r)
}

// Harvest collects a ripe crop
// @Summary Harvest a plot
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlotData true "Plot (address alongside)"
// @Success 200 {object} farm.HarvestResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /farm/harvest [post]
func (h *ActionHandler) Harvest(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionHarvest)(w, r)
}

// Pesticide clears pests from a plot
// @Summary Clear pests
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlotData true "Plot (address alongside)"
// @Success 200 {object} farm.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /farm/pesticide [post]
func (h *ActionHandler) Pesticide(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionPesticide)(w, r)
}

// Shovel removes whatever is growing on a plot
// @Summary Shovel a plot
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlotData true "Plot (address alongside)"
// @Success 200 {object} farm.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /farm/shovel [post]
func (h *ActionHandler) Shovel(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionShovel)(w, r)
}

// UnlockPlot buys a locked plot
// @Summary Unlock a plot
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlotData true "Plot (address alongside)"
// @Success 200 {object} farm.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /farm/unlock [post]
func (h *ActionHandler) UnlockPlot(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionUnlockPlot)(w, r)
}

// SubscribeRobot records a robot helper subscription
// @Summary Subscribe to the robot helper
// @Tags farm
// @Accept json
// @Produce json
// @Param request body RobotData true "Subscriber (address alongside)"
// @Success 200 {object} farm.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /farm/robot [post]
func (h *ActionHandler) SubscribeRobot(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionRobotSubscribe)(w, r)
}
