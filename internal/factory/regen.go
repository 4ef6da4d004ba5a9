// Package factory regenerates factory production slots over time.
package factory

import (
	"fmt"
	"math"
	"time"

	"github.com/osse101/DarkFrame_Go/internal/domain"
)

const (
	// DefaultLevel is used for factories stored without a level
	DefaultLevel = 1

	// BaseRegenPerHour is the slot regeneration rate of a level 1 factory
	BaseRegenPerHour = 1.0

	// RegenPerLevel is the extra slots per hour gained for each level above 1
	RegenPerLevel = 0.1
)

// Eligible selects factories with at least one used slot and no more used than they have
func Eligible() domain.Eligibility {
	return domain.All(
		domain.ValueCompare("used_slots", domain.OpGreaterThan, 0),
		domain.FieldCompare("used_slots", domain.OpLessOrEqual, "slots"),
	)
}

// RegenRate returns slots regenerated per hour for a factory level.
// A missing or non-positive level counts as level 1.
func RegenRate(level *int) float64 {
	l := DefaultLevel
	if level != nil && *level > 0 {
		l = *level
	}
	return BaseRegenPerHour + float64(l-1)*RegenPerLevel
}

// ComputeSlotUpdate works out how many slots f has regenerated by now.
//
// It returns ok == false when nothing changed. A factory that was never
// regenerated is treated as infinitely idle and frees every slot. Otherwise
// LastSlotRegen only advances by the time the freed slots took, so partial
// progress carries into the next tick.
func ComputeSlotUpdate(f domain.Factory, now time.Time) (domain.SlotUpdate, bool, error) {
	if f.Slots < 0 || f.UsedSlots < 0 {
		return domain.SlotUpdate{}, false, fmt.Errorf("%w: factory %s has slots=%d used=%d",
			domain.ErrInvalidInput, f.ID, f.Slots, f.UsedSlots)
	}

	current := min(f.UsedSlots, f.Slots)
	upd := domain.SlotUpdate{
		FactoryID:    f.ID,
		PreviousUsed: f.UsedSlots,
	}

	if f.LastSlotRegen == nil {
		upd.UsedSlots = 0
		upd.LastSlotRegen = now
		return upd, f.UsedSlots != 0, nil
	}

	upd.LastSlotRegen = *f.LastSlotRegen
	rate := RegenRate(f.Level)

	delta := 0
	if elapsed := now.Sub(*f.LastSlotRegen); elapsed > 0 {
		delta = int(math.Floor(elapsed.Hours() * rate))
	}

	switch {
	case delta >= current:
		upd.UsedSlots = 0
		if current > 0 {
			upd.LastSlotRegen = now
		}
	case delta > 0:
		upd.UsedSlots = current - delta
		spent := time.Duration(float64(delta) / rate * float64(time.Hour))
		upd.LastSlotRegen = f.LastSlotRegen.Add(spent)
	default:
		upd.UsedSlots = current
	}

	return upd, upd.UsedSlots != f.UsedSlots, nil
}
