package repository

import (
	"context"

	"github.com/osse101/DarkFrame_Go/internal/domain"
)

// FactoryRepository is the store used by slot regeneration
type FactoryRepository interface {
	// FindFactories returns every factory matching the predicate
	FindFactories(ctx context.Context, filter domain.Eligibility) ([]domain.Factory, error)

	// ApplySlotUpdates sends all updates in a single round trip and returns how many applied
	ApplySlotUpdates(ctx context.Context, updates []domain.SlotUpdate) (int64, error)
}
