package shop

// Log messages
const (
	LogMsgPurchaseRejected = "Shop purchase rejected"
	LogMsgPurchaseFailed   = "Shop purchase failed"
)

// ItemFertilizer is the item id recorded for fertilizer purchases
const ItemFertilizer = "fertilizer"
