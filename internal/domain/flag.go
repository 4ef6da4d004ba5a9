package domain

import "time"

// FlagBot is the roaming flag carrier. Players claim it by reaching its tile.
type FlagBot struct {
	ID          string     `json:"id"`
	X           int        `json:"x"`
	Y           int        `json:"y"`
	HolderID    *string    `json:"holder_id,omitempty"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
	LastMovedAt *time.Time `json:"last_moved_at,omitempty"`
	SpawnedAt   time.Time  `json:"spawned_at"`
	Version     int64      `json:"version"`
}

// IsHeld reports whether a player currently carries the flag
func (f FlagBot) IsHeld() bool {
	return f.HolderID != nil && *f.HolderID != ""
}

// FlagUpdateKind distinguishes routine movement from a respawn
type FlagUpdateKind string

const (
	FlagUpdateMove    FlagUpdateKind = "move"
	FlagUpdateRespawn FlagUpdateKind = "respawn"
)

// FlagUpdate is a staged write for one flag bot, guarded by Version
type FlagUpdate struct {
	FlagID          string
	Kind            FlagUpdateKind
	ExpectedVersion int64
	X               int
	Y               int
	At              time.Time
}
