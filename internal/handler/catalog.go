package handler

import (
	"net/http"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
)

// CatalogResponse is the static game data clients render shops from
type CatalogResponse struct {
	Crops   []domain.Crop           `json:"crops"`
	Pets    []catalog.Pet           `json:"pets"`
	Phrases []catalog.Phrase        `json:"phrases"`
	CheckIn []catalog.CheckInReward `json:"checkIn"`
}

// Catalog lists the game tables exposed to clients
type Catalog interface {
	Crops() []domain.Crop
	Pets() []catalog.Pet
	Phrases() []catalog.Phrase
	CheckInRewards() []catalog.CheckInReward
}

// HandleGetCatalog returns crops, pets, phrases and check-in rewards
// @Summary Game catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /catalog [get]
func HandleGetCatalog(cat Catalog) http.HandlerFunc {
	resp := CatalogResponse{
		Crops:   cat.Crops(),
		Pets:    cat.Pets(),
		Phrases: cat.Phrases(),
		CheckIn: cat.CheckInRewards(),
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, resp)
	}
}
