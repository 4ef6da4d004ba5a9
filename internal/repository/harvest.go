package repository

import (
	"context"

	"github.com/osse101/DarkFrame_Go/internal/domain"
)

// HarvestRepository handles harvest records and the player balances they credit
type HarvestRepository interface {
	// HasHarvested reports whether the player already harvested the location in the bucket
	HasHarvested(ctx context.Context, playerID, locationKey, bucketID string) (bool, error)

	// CountHarvesters returns how many distinct players harvested the location in the bucket
	CountHarvesters(ctx context.Context, locationKey, bucketID string) (int, error)

	// GetPlayerBonuses returns the harvest bonuses for a player
	GetPlayerBonuses(ctx context.Context, playerID string) (*domain.PlayerBonuses, error)

	// RecordHarvest inserts the record and credits the player atomically.
	// Returns domain.ErrAlreadyHarvested if the (player, location, bucket) triple exists.
	RecordHarvest(ctx context.Context, record domain.HarvestRecord) error
}
