package handler

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AddressRequest identifies the player a request acts for
type AddressRequest struct {
	Address string `json:"address" validate:"required,max=128,address"`
}

// ActionRequest is the generic action envelope. Data holds the fields of the
// matching dedicated request, without the address.
type ActionRequest struct {
	Address string          `json:"address" validate:"required,max=128,address"`
	Type    string          `json:"type" validate:"required"`
	Data    json.RawMessage `json:"data" swaggertype:"object"`
}

// PlotData targets one plot
type PlotData struct {
	PlotID int `json:"plotId" validate:"min=0"`
}

// PlantData plants a crop on a plot. CropID accepts crop ids and seed_N ids.
type PlantData struct {
	PlotID int    `json:"plotId" validate:"min=0"`
	CropID string `json:"cropId" validate:"required,max=32"`
}

// ItemData buys or sells qty of a crop item
type ItemData struct {
	ItemID   string `json:"itemId" validate:"required,max=32"`
	Quantity int64  `json:"quantity"`
}

// QuantityData carries a quantity only
type QuantityData struct {
	Quantity int64 `json:"quantity"`
}

// ExchangeData converts coins into another currency
type ExchangeData struct {
	Currency string          `json:"currency" validate:"required,max=16"`
	Coins    decimal.Decimal `json:"coins" swaggertype:"string"`
}

// PetData names a pet
type PetData struct {
	PetID string `json:"petId" validate:"required,max=32"`
}

// DrawData is a gacha request
type DrawData struct {
	Count int `json:"count"`
}

// RedeemData picks a phrase to redeem
type RedeemData struct {
	PhraseIndex int `json:"phraseIndex"`
}

// RobotData subscribes the farm to the robot helper
type RobotData struct {
	Name            string `json:"name" validate:"required,max=64"`
	Email           string `json:"email" validate:"required,email"`
	AcceptMarketing bool   `json:"acceptMarketing"`
}
