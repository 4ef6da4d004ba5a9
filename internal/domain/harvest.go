package domain

import (
	"time"

	"github.com/google/uuid"
)

// BucketTag identifies which half of the map a reset window belongs to
type BucketTag string

const (
	BucketMorning BucketTag = "AM"
	BucketEvening BucketTag = "PM"
)

// ResourceKind is a harvestable resource
type ResourceKind string

const (
	ResourceMetal  ResourceKind = "metal"
	ResourceEnergy ResourceKind = "energy"
)

// IsValid reports whether r is a known resource kind
func (r ResourceKind) IsValid() bool {
	return r == ResourceMetal || r == ResourceEnergy
}

// ResetWindow is the half-day slot a location is currently harvested in.
// It is derived from the clock on every call and never stored.
type ResetWindow struct {
	ID       string    `json:"bucket_id"`
	Tag      BucketTag `json:"tag"`
	OpensAt  time.Time `json:"opens_at"`
	ClosesAt time.Time `json:"closes_at"`
}

// HarvestRecord is the audit entry written for every successful harvest
type HarvestRecord struct {
	ID           uuid.UUID    `json:"id"`
	PlayerID     string       `json:"player_id"`
	LocationKey  string       `json:"location_key"`
	BucketID     string       `json:"bucket_id"`
	HarvestedAt  time.Time    `json:"harvested_at"`
	AmountGained int          `json:"amount_gained"`
	ResourceKind ResourceKind `json:"resource_kind"`
}

// PlayerBonuses holds the percentage bonuses applied to harvest yield
type PlayerBonuses struct {
	PermanentPct     float64    `json:"permanent_pct"`
	TemporaryPct     float64    `json:"temporary_pct"`
	TemporaryExpires *time.Time `json:"temporary_expires_at,omitempty"`
}

// ActiveTemporaryPct returns the temporary bonus if it has not expired at now
func (b PlayerBonuses) ActiveTemporaryPct(now time.Time) float64 {
	if b.TemporaryExpires == nil || !b.TemporaryExpires.After(now) {
		return 0
	}
	return b.TemporaryPct
}

// HarvestResult is returned to the caller after a successful harvest
type HarvestResult struct {
	Resource      ResourceKind `json:"resource"`
	BaseYield     int          `json:"base_yield"`
	AmountGained  int          `json:"amount_gained"`
	CrowdBonusPct float64      `json:"crowd_bonus_pct"`
	Window        ResetWindow  `json:"window"`
	NextResetAt   time.Time    `json:"next_reset_at"`
	Message       string       `json:"message"`
}

// WindowStatus describes the active reset window for a column of the map
type WindowStatus struct {
	Window         ResetWindow `json:"window"`
	TimeUntilReset string      `json:"time_until_reset"`
	ResetInSeconds int64       `json:"reset_in_seconds"`
}
