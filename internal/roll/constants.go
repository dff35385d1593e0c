package roll

// Cost is the fixed price of one roll.
const Cost = 20

// GrantLevel is the level every granted item starts at.
const GrantLevel = 1

// maxConflictRetries bounds transparent retries on concurrency-control
// conflicts before the error is surfaced as an infrastructure fault.
const maxConflictRetries = 3

// Log Messages
const (
	LogMsgRollCalled       = "Roll called"
	LogMsgItemGranted      = "Item granted"
	LogMsgConflictRetried  = "Roll retried after concurrent conflict"
	LogMsgInsufficientRoll = "Roll rejected for insufficient funds"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToBeginTx  = "failed to begin roll transaction"
	ErrContextFailedToCommitTx = "failed to commit roll transaction"
)
