package handler

import (
	"net/http"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
)

// BuySeed buys seeds
// @Summary Buy seeds
// @Tags shop
// @Accept json
// @Produce json
// @Param request body ItemData true "Crop id or seed_N and quantity (address alongside)"
// @Success 200 {object} shop.Receipt
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shop/seeds [post]
func (h *ActionHandler) BuySeed(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionBuySeed)(w, r)
}

// BuyFertilizer buys fertilizer
// @Summary Buy fertilizer
// @Tags shop
// @Accept json
// @Produce json
// @Param request body QuantityData true "Quantity (address alongside)"
// @Success 200 {object} shop.Receipt
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shop/fertilizer [post]
func (h *ActionHandler) BuyFertilizer(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionBuyFertilizer)(w, r)
}

// SellFruit sells harvested fruit
// @Summary Sell fruit
// @Tags shop
// @Accept json
// @Produce json
// @Param request body ItemData true "Crop id or fruit_N and quantity (address alongside)"
// @Success 200 {object} shop.Receipt
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shop/sell [post]
func (h *ActionHandler) SellFruit(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionSellFruit)(w, r)
}

// BuyPet adopts a pet
// @Summary Buy a pet
// @Tags shop
// @Accept json
// @Produce json
// @Param request body PetData true "Pet id (address alongside)"
// @Success 200 {object} shop.Receipt
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shop/pets [post]
func (h *ActionHandler) BuyPet(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionBuyPet)(w, r)
}

// Exchange converts coins to zeta or tickets
// @Summary Exchange coins
// @Tags bank
// @Accept json
// @Produce json
// @Param request body ExchangeData true "Currency and coins (address alongside)"
// @Success 200 {object} shop.Receipt
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /bank/exchange [post]
func (h *ActionHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	h.Route(domain.ActionExchange)(w, r)
}
