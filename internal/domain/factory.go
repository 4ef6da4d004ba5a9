package domain

import "time"

// Factory is a player-owned building whose production slots regenerate over time
type Factory struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	X             int        `json:"x"`
	Y             int        `json:"y"`
	Level         *int       `json:"level,omitempty"`
	Slots         int        `json:"slots"`
	UsedSlots     int        `json:"used_slots"`
	LastSlotRegen *time.Time `json:"last_slot_regen,omitempty"`
}

// SlotUpdate is a staged compare-and-set write produced by slot regeneration.
// It only applies while used_slots still equals PreviousUsed.
type SlotUpdate struct {
	FactoryID     string
	PreviousUsed  int
	UsedSlots     int
	LastSlotRegen time.Time
}
