// README: Immutable in-memory rate catalog; tier lookup with parent-chain inheritance.
package rate

import (
	"errors"
	"sort"
	"time"
)

var (
	// ErrRateCycle means the parent_rate_id chain loops back on itself.
	// This is a configuration defect that must surface to administrators.
	ErrRateCycle = errors.New("rate parent chain contains a cycle")

	// ErrNoTier means no bucket covers the duration anywhere in the
	// parent chain.
	ErrNoTier = errors.New("no tier covers the duration")

	ErrNotFound = errors.New("rate not found")
)

// Catalog is a point-in-time snapshot of all rate reference data, stored as
// flat maps keyed by id. Parent traversal is done by repeated id lookups
// rather than a recursive object graph. A Catalog is never mutated after
// load, so concurrent resolutions need no locking.
type Catalog struct {
	Rates       map[int64]*Rate       `json:"rates"`
	TiersByRate map[int64][]Tier      `json:"tiers_by_rate"`
	DayRanges   map[int64][]DayRange  `json:"day_ranges"`
	HourRanges  map[int64][]HourRange `json:"hour_ranges"`
	KmRanges    map[int64][]KmRange   `json:"km_ranges"`
}

func NewCatalog() *Catalog {
	return &Catalog{
		Rates:       make(map[int64]*Rate),
		TiersByRate: make(map[int64][]Tier),
		DayRanges:   make(map[int64][]DayRange),
		HourRanges:  make(map[int64][]HourRange),
		KmRanges:    make(map[int64][]KmRange),
	}
}

// ActiveRatesOn returns the active rates whose validity window contains
// date, ordered by the selection tie-break for groupID: rates with an
// explicit tier for the group before rates relying on inheritance, then
// most recently created first (id as the final tie-break).
func (c *Catalog) ActiveRatesOn(date time.Time, groupID int64) []*Rate {
	var out []*Rate
	for _, r := range c.Rates {
		if r.IsActive && r.ValidOn(date) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := c.hasDirectTier(out[i].ID, groupID), c.hasDirectTier(out[j].ID, groupID)
		if di != dj {
			return di
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (c *Catalog) hasDirectTier(rateID, groupID int64) bool {
	for _, t := range c.TiersByRate[rateID] {
		if t.VehicleGroupID == groupID {
			return true
		}
	}
	return false
}

// ResolveTier finds the tier whose bucket contains days for the given
// vehicle group, looking first at the rate itself and then walking
// parent_rate_id upward. A visited set guards against cyclic chains:
// a cycle returns ErrRateCycle, never an infinite loop. Returns ErrNoTier
// when the chain is exhausted without a match.
func (c *Catalog) ResolveTier(rateID, groupID int64, days int) (*Tier, error) {
	visited := make(map[int64]bool)
	current := rateID
	for {
		if visited[current] {
			return nil, ErrRateCycle
		}
		visited[current] = true

		r, ok := c.Rates[current]
		if !ok {
			return nil, ErrNotFound
		}
		for i := range c.TiersByRate[current] {
			t := &c.TiersByRate[current][i]
			if t.VehicleGroupID == groupID && t.Contains(days) {
				return t, nil
			}
		}
		if r.ParentRateID == nil {
			return nil, ErrNoTier
		}
		current = *r.ParentRateID
	}
}

// CheckTierOverlap reports whether nt would overlap an existing bucket for
// the same (rate, vehicle group). The tier being updated (matching id) is
// ignored.
func (c *Catalog) CheckTierOverlap(nt *Tier) bool {
	for i := range c.TiersByRate[nt.RateID] {
		t := &c.TiersByRate[nt.RateID][i]
		if t.ID == nt.ID || t.VehicleGroupID != nt.VehicleGroupID {
			continue
		}
		if t.Overlaps(nt) {
			return true
		}
	}
	return false
}
