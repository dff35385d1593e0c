package economy

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// identityCache is an in-memory LRU of external-id → internal player-id.
// The mapping is immutable once a player exists, so caching it is safe; it
// saves the get-or-create round-trip on hot paths. Balances are never cached.
type identityCache struct {
	lru *expirable.LRU[string, string]
}

// newIdentityCache creates a cache with the given size and TTL.
func newIdentityCache(size int, ttl time.Duration) *identityCache {
	return &identityCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// Get returns the cached player ID for the external ID, if present.
func (c *identityCache) Get(externalID string) (string, bool) {
	return c.lru.Get(externalID)
}

// Set stores the mapping.
func (c *identityCache) Set(externalID, playerID string) {
	c.lru.Add(externalID, playerID)
}
