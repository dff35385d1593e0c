// Package catalog holds the static weighted table of obtainable items.
// The catalog is loaded and validated once at startup and is immutable
// afterwards; there is no mutation API.
package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/skyaree/rollbox/internal/domain"
)

// WeightSumEpsilon is the tolerance when checking that weights sum to 1.0.
// Weights are authored as decimal fractions; exact float equality is too strict.
const WeightSumEpsilon = 1e-9

// Entry is one obtainable item with its rarity weight.
type Entry struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// fileConfig is the on-disk shape of the catalog config.
type fileConfig struct {
	Items []Entry `json:"items"`
}

// Catalog is the validated, ordered item table. Entries are sorted by
// descending weight (ties broken by name); this ordering determines the
// cumulative bands used for selection and must not change at runtime.
type Catalog struct {
	entries []Entry
}

// New validates the entries and builds a catalog.
// Validation failures are startup-time fatal (domain.ErrCatalogMisconfigured):
// empty table, empty or duplicate names, non-positive weights, or weights not
// summing to 1.0 within WeightSumEpsilon.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no items defined", domain.ErrCatalogMisconfigured)
	}

	seen := make(map[string]bool, len(entries))
	sum := 0.0
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: item with empty name", domain.ErrCatalogMisconfigured)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("%w: duplicate item %q", domain.ErrCatalogMisconfigured, e.Name)
		}
		seen[e.Name] = true
		if e.Weight <= 0 {
			return nil, fmt.Errorf("%w: item %q has non-positive weight %v", domain.ErrCatalogMisconfigured, e.Name, e.Weight)
		}
		sum += e.Weight
	}

	if math.Abs(sum-1.0) > WeightSumEpsilon {
		return nil, fmt.Errorf("%w: weights sum to %v, want 1.0", domain.ErrCatalogMisconfigured, sum)
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weight != sorted[j].Weight {
			return sorted[i].Weight > sorted[j].Weight
		}
		return sorted[i].Name < sorted[j].Name
	})

	return &Catalog{entries: sorted}, nil
}

// Load reads and validates a catalog from a JSON config file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var cfg fileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return New(cfg.Items)
}

// Default returns the built-in catalog, used when no config file is provided.
func Default() *Catalog {
	cat, err := New([]Entry{
		{Name: "Novice Sword", Weight: 0.50},
		{Name: "Hero Shield", Weight: 0.30},
		{Name: "Epic Boost", Weight: 0.15},
		{Name: "Legendary Artifact", Weight: 0.05},
	})
	if err != nil {
		// The built-in table is validated by tests; this is unreachable.
		panic(err)
	}
	return cat
}

// Entries returns the items in descending-weight order. The returned slice is
// shared and must be treated as read-only.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Names returns all item names in descending-weight order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}
