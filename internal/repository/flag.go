package repository

import (
	"context"

	"github.com/osse101/DarkFrame_Go/internal/domain"
)

// FlagRepository is the store used by the flag bot job
type FlagRepository interface {
	ListFlagBots(ctx context.Context) ([]domain.FlagBot, error)

	// ApplyFlagUpdates sends all updates in a single round trip and returns how many applied
	ApplyFlagUpdates(ctx context.Context, updates []domain.FlagUpdate) (int64, error)
}
