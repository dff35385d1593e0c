package domain

import "time"

// Player represents a registered player and their currency balance.
// Players are created lazily with the starting balance the first time any
// operation references their external ID; they are never deleted.
type Player struct {
	ID         string    `json:"player_id"`
	ExternalID string    `json:"external_id"`
	Balance    int       `json:"balance"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}
