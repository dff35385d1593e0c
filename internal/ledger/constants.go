package ledger

// StartingBalance is the currency amount every player begins with.
const StartingBalance = 100

// Log Messages
const (
	LogMsgPlayerCreated = "Player created"
	LogMsgCreditApplied = "Credit applied"
)
