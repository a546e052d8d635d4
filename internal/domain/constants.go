package domain

// Farm layout and simulation constants
const (
	// PlotCount is the fixed number of plots every farm owns
	PlotCount = 18

	// TickSeconds is how much pausedDuration grows per paused tick
	TickSeconds int64 = 1

	// PestProbability is the per-tick chance that a GROWING or RIPE crop gets pests
	PestProbability = 0.004

	// WeedProbability is the per-tick chance that cosmetic weeds sprout on a planted plot
	WeedProbability = 0.002

	// LetterDropProbability is the chance a harvest also yields a letter
	LetterDropProbability = 0.5

	// DefaultStartingPlots is how many plots a new farm has unlocked
	DefaultStartingPlots = 6

	// StarterCropID is the seed every new farm receives
	StarterCropID = "radish"

	// MaxLevel is the highest player and crop level
	MaxLevel = 18
)

// Shop and bank constants
const (
	FertilizerCost     = 50
	ZetaExchangeRate   = 20
	TicketExchangeRate = 50
	GachaTicketCost    = 1
	MaxPurchaseQty     = 999
	MaxDrawsPerRequest = 10
)

// Currency names accepted by the bank exchange
const (
	CurrencyZeta    = "zeta"
	CurrencyTickets = "tickets"
)

// Action types accepted by the generic action endpoint
const (
	ActionPlant          = "plant"
	ActionWater          = "water"
	ActionWeed           = "weed"
	ActionHarvest        = "harvest"
	ActionFertilize      = "fertilize"
	ActionPesticide      = "pesticide"
	ActionShovel         = "shovel"
	ActionUnlockPlot     = "unlock_plot"
	ActionBuySeed        = "buy_seed"
	ActionBuyFertilizer  = "buy_fertilizer"
	ActionSellFruit      = "sell_fruit"
	ActionCheckIn        = "checkin"
	ActionBuyPet         = "buy_pet"
	ActionExchange       = "exchange"
	ActionDraw           = "draw"
	ActionLetterExchange = "letter_exchange"
	ActionRobotSubscribe = "robot_subscribe"
)
