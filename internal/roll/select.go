package roll

import "github.com/skyaree/rollbox/internal/catalog"

// Select picks an item by inverse-CDF sampling: the entries partition [0,1)
// into contiguous bands sized by weight, most-probable band first, and the
// draw lands in exactly one band. Given the same entries and draw the result
// is fully determined, so selection is unit-testable without randomness.
//
// ok is false only when the accumulated weight never reaches the draw, which
// cannot happen for a validated catalog (weights sum to 1.0 and draw < 1).
func Select(entries []catalog.Entry, draw float64) (name string, ok bool) {
	cumulative := 0.0
	for _, e := range entries {
		cumulative += e.Weight
		if cumulative >= draw {
			return e.Name, true
		}
	}
	return "", false
}
