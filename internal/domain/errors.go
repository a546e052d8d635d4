package domain

import "errors"

// ReasonCode is a stable, machine-readable code attached to a rejected player action.
type ReasonCode string

// Reason codes surfaced to clients when an action's precondition fails
const (
	ReasonInvalidPlot            ReasonCode = "INVALID_PLOT"
	ReasonPlotLocked             ReasonCode = "PLOT_LOCKED"
	ReasonPlotAlreadyUnlocked    ReasonCode = "PLOT_ALREADY_UNLOCKED"
	ReasonPlotOccupied           ReasonCode = "PLOT_OCCUPIED"
	ReasonPlotEmpty              ReasonCode = "PLOT_EMPTY"
	ReasonUnknownCrop            ReasonCode = "UNKNOWN_CROP"
	ReasonInsufficientSeeds      ReasonCode = "INSUFFICIENT_SEEDS"
	ReasonInsufficientFruit      ReasonCode = "INSUFFICIENT_FRUIT"
	ReasonInsufficientFertilizer ReasonCode = "INSUFFICIENT_FERTILIZER"
	ReasonInsufficientCoins      ReasonCode = "INSUFFICIENT_COINS"
	ReasonInsufficientTickets    ReasonCode = "INSUFFICIENT_TICKETS"
	ReasonNothingToWater         ReasonCode = "NOTHING_TO_WATER"
	ReasonNothingToWeed          ReasonCode = "NOTHING_TO_WEED"
	ReasonNotRipe                ReasonCode = "NOT_RIPE"
	ReasonPestsPresent           ReasonCode = "PESTS_PRESENT"
	ReasonNoPests                ReasonCode = "NO_PESTS"
	ReasonAlreadyFertilized      ReasonCode = "ALREADY_FERTILIZED"
	ReasonLevelTooLow            ReasonCode = "LEVEL_TOO_LOW"
	ReasonAmountTooSmall         ReasonCode = "AMOUNT_TOO_SMALL"
	ReasonInvalidQuantity        ReasonCode = "INVALID_QUANTITY"
	ReasonUnknownCurrency        ReasonCode = "UNKNOWN_CURRENCY"
	ReasonUnknownPet             ReasonCode = "UNKNOWN_PET"
	ReasonPetOwned               ReasonCode = "PET_OWNED"
	ReasonAlreadyCheckedIn       ReasonCode = "ALREADY_CHECKED_IN"
	ReasonUnknownPhrase          ReasonCode = "UNKNOWN_PHRASE"
	ReasonPhraseIncomplete       ReasonCode = "PHRASE_INCOMPLETE"
	ReasonAlreadyRedeemed        ReasonCode = "ALREADY_REDEEMED"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgInvalidPlot            = "plot does not exist"
	ErrMsgPlotLocked             = "plot is locked"
	ErrMsgPlotAlreadyUnlocked    = "plot is already unlocked"
	ErrMsgPlotOccupied           = "plot already has a crop"
	ErrMsgPlotEmpty              = "plot has no crop"
	ErrMsgUnknownCrop            = "unknown crop"
	ErrMsgInsufficientSeeds      = "not enough seeds"
	ErrMsgInsufficientFruit      = "not enough fruit"
	ErrMsgInsufficientFertilizer = "not enough fertilizer"
	ErrMsgInsufficientCoins      = "not enough coins"
	ErrMsgInsufficientTickets    = "not enough tickets"
	ErrMsgNothingToWater         = "nothing to water"
	ErrMsgNothingToWeed          = "nothing to weed"
	ErrMsgNotRipe                = "crop is not ripe"
	ErrMsgPestsPresent           = "pests must be cleared before harvesting"
	ErrMsgNoPests                = "plot has no pests"
	ErrMsgAlreadyFertilized      = "crop was already fertilized"
	ErrMsgLevelTooLow            = "level too low"
	ErrMsgAmountTooSmall         = "amount is below the exchange rate"
	ErrMsgInvalidQuantity        = "quantity must be positive"
	ErrMsgUnknownCurrency        = "unknown currency"
	ErrMsgUnknownPet             = "unknown pet"
	ErrMsgPetOwned               = "pet already owned"
	ErrMsgAlreadyCheckedIn       = "already checked in today"
	ErrMsgUnknownPhrase          = "unknown phrase"
	ErrMsgPhraseIncomplete       = "phrase letters are not all collected"
	ErrMsgAlreadyRedeemed        = "reward already redeemed"

	ErrMsgFarmNotFound  = "farm not found"
	ErrMsgInvalidInput  = "invalid input"
	ErrMsgTxClosed      = "tx is closed"
	ErrMsgDatabaseError = "database error"
)

// ReasonError is a rejected precondition. It never indicates a fault.
type ReasonError struct {
	Code ReasonCode
	Msg  string
}

func (e *ReasonError) Error() string {
	return e.Msg
}

func newReason(code ReasonCode, msg string) *ReasonError {
	return &ReasonError{Code: code, Msg: msg}
}

// Precondition errors. Wrap with fmt.Errorf("%w: ...") for context;
// errors.Is and ReasonOf both see through the wrapping.
var (
	ErrInvalidPlot            = newReason(ReasonInvalidPlot, ErrMsgInvalidPlot)
	ErrPlotLocked             = newReason(ReasonPlotLocked, ErrMsgPlotLocked)
	ErrPlotAlreadyUnlocked    = newReason(ReasonPlotAlreadyUnlocked, ErrMsgPlotAlreadyUnlocked)
	ErrPlotOccupied           = newReason(ReasonPlotOccupied, ErrMsgPlotOccupied)
	ErrPlotEmpty              = newReason(ReasonPlotEmpty, ErrMsgPlotEmpty)
	ErrUnknownCrop            = newReason(ReasonUnknownCrop, ErrMsgUnknownCrop)
	ErrInsufficientSeeds      = newReason(ReasonInsufficientSeeds, ErrMsgInsufficientSeeds)
	ErrInsufficientFruit      = newReason(ReasonInsufficientFruit, ErrMsgInsufficientFruit)
	ErrInsufficientFertilizer = newReason(ReasonInsufficientFertilizer, ErrMsgInsufficientFertilizer)
	ErrInsufficientCoins      = newReason(ReasonInsufficientCoins, ErrMsgInsufficientCoins)
	ErrInsufficientTickets    = newReason(ReasonInsufficientTickets, ErrMsgInsufficientTickets)
	ErrNothingToWater         = newReason(ReasonNothingToWater, ErrMsgNothingToWater)
	ErrNothingToWeed          = newReason(ReasonNothingToWeed, ErrMsgNothingToWeed)
	ErrNotRipe                = newReason(ReasonNotRipe, ErrMsgNotRipe)
	ErrPestsPresent           = newReason(ReasonPestsPresent, ErrMsgPestsPresent)
	ErrNoPests                = newReason(ReasonNoPests, ErrMsgNoPests)
	ErrAlreadyFertilized      = newReason(ReasonAlreadyFertilized, ErrMsgAlreadyFertilized)
	ErrLevelTooLow            = newReason(ReasonLevelTooLow, ErrMsgLevelTooLow)
	ErrAmountTooSmall         = newReason(ReasonAmountTooSmall, ErrMsgAmountTooSmall)
	ErrInvalidQuantity        = newReason(ReasonInvalidQuantity, ErrMsgInvalidQuantity)
	ErrUnknownCurrency        = newReason(ReasonUnknownCurrency, ErrMsgUnknownCurrency)
	ErrUnknownPet             = newReason(ReasonUnknownPet, ErrMsgUnknownPet)
	ErrPetOwned               = newReason(ReasonPetOwned, ErrMsgPetOwned)
	ErrAlreadyCheckedIn       = newReason(ReasonAlreadyCheckedIn, ErrMsgAlreadyCheckedIn)
	ErrUnknownPhrase          = newReason(ReasonUnknownPhrase, ErrMsgUnknownPhrase)
	ErrPhraseIncomplete       = newReason(ReasonPhraseIncomplete, ErrMsgPhraseIncomplete)
	ErrAlreadyRedeemed        = newReason(ReasonAlreadyRedeemed, ErrMsgAlreadyRedeemed)
)

// Infrastructure and lookup errors
var (
	ErrFarmNotFound  = errors.New(ErrMsgFarmNotFound)
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)

// ReasonOf extracts the reason code from a precondition error anywhere in err's chain.
func ReasonOf(err error) (ReasonCode, bool) {
	var re *ReasonError
	if errors.As(err, &re) {
		return re.Code, true
	}
	return "", false
}
