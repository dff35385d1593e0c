package economy

import "time"

// Player-identity cache sizing. The cache stores only the immutable
// external-id → player-id mapping, never balances.
const (
	IdentityCacheSize = 4096
	IdentityCacheTTL  = 15 * time.Minute
)

// Log Messages
const (
	LogMsgStatusCalled    = "Status called"
	LogMsgRollCalled      = "Roll requested"
	LogMsgInventoryCalled = "Inventory called"
	LogMsgCreditCalled    = "Credit called"
)
