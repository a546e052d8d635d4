package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "crop.planted")
const (
	EventTypeFarmRegistered    = "farm.registered"
	EventTypeCropPlanted       = "crop.planted"
	EventTypeCropTended        = "crop.tended"
	EventTypeCropFertilized    = "crop.fertilized"
	EventTypeCropHarvested     = "crop.harvested"
	EventTypeCropShoveled      = "crop.shoveled"
	EventTypePestsAppeared     = "crop.pests_appeared"
	EventTypePestsCleared      = "crop.pests_cleared"
	EventTypePlotUnlocked      = "plot.unlocked"
	EventTypeSeedBought        = "shop.seed_bought"
	EventTypeFertilizerBought  = "shop.fertilizer_bought"
	EventTypeFruitSold         = "shop.fruit_sold"
	EventTypePetBought         = "shop.pet_bought"
	EventTypeCurrencyExchanged = "bank.exchanged"
	EventTypeGachaDrawn        = "gacha.drawn"
	EventTypeCheckedIn         = "checkin.completed"
	EventTypeLetterDropped     = "letter.dropped"
	EventTypeRewardRedeemed    = "letter.reward_redeemed"
	EventTypeOfflineEarnings   = "pet.offline_earnings"
	EventTypeRobotSubscribed   = "robot.subscribed"
)

// CropPayloadV1 describes a single-plot crop event
type CropPayloadV1 struct {
	Address   string `json:"address"`
	PlotID    int    `json:"plot_id"`
	CropID    string `json:"crop_id"`
	Action    string `json:"action,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// HarvestPayloadV1 is published after a successful harvest
type HarvestPayloadV1 struct {
	Address   string `json:"address"`
	PlotID    int    `json:"plot_id"`
	CropID    string `json:"crop_id"`
	Yield     int64  `json:"yield"`
	Exp       int64  `json:"exp"`
	Letter    string `json:"letter,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// PurchasePayloadV1 covers shop purchases and sales
type PurchasePayloadV1 struct {
	Address   string `json:"address"`
	ItemID    string `json:"item_id"`
	Quantity  int64  `json:"quantity"`
	Coins     string `json:"coins"`
	Timestamp int64  `json:"timestamp"`
}

// RewardPayloadV1 covers check-ins, gacha draws, offline earnings and redemptions
type RewardPayloadV1 struct {
	Address   string `json:"address"`
	Kind      string `json:"kind"`
	Amount    string `json:"amount,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
