package farm

// Log messages
const (
	LogMsgFarmRegistered    = "Farm registered"
	LogMsgOfflineEarnings   = "Credited offline pet earnings"
	LogMsgActionRejected    = "Farm action rejected"
	LogMsgActionFailed      = "Farm action failed"
	LogMsgTickPassSkipped   = "Tick pass still running, skipping"
	LogMsgTickFarmFailed    = "Tick failed for farm"
	LogMsgTickPassComplete  = "Tick pass complete"
	LogMsgUnknownCropOnTick = "Plot references a crop missing from the catalog"
)

// Payload kinds for reward-shaped events emitted by this package
const (
	KindRegistered = "registered"
	KindOffline    = "offline_earnings"
	KindLetter     = "letter"
	KindRobot      = "robot"
)

// Tick job
const (
	TickJobName = "farm_tick"

	// SecondsPerHour converts offline seconds into pet earning hours
	SecondsPerHour = 3600
)
