package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/repository"
)

// HarvestRepository implements repository.HarvestRepository for PostgreSQL
type HarvestRepository struct {
	db *pgxpool.Pool
}

// NewHarvestRepository creates a new HarvestRepository
func NewHarvestRepository(db *pgxpool.Pool) *HarvestRepository {
	return &HarvestRepository{db: db}
}

var _ repository.HarvestRepository = (*HarvestRepository)(nil)

// HasHarvested reports whether the player already harvested the location in the bucket
func (r *HarvestRepository) HasHarvested(ctx context.Context, playerID, locationKey, bucketID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM harvest_records
			WHERE player_id = $1 AND location_key = $2 AND bucket_id = $3
		)`, playerID, locationKey, bucketID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check harvest record: %w", err)
	}
	return exists, nil
}

// CountHarvesters returns the distinct players who harvested the location in the bucket
func (r *HarvestRepository) CountHarvesters(ctx context.Context, locationKey, bucketID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT player_id) FROM harvest_records
		WHERE location_key = $1 AND bucket_id = $2`, locationKey, bucketID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count harvesters: %w", err)
	}
	return n, nil
}

// GetPlayerBonuses loads the harvest bonus columns of a player
func (r *HarvestRepository) GetPlayerBonuses(ctx context.Context, playerID string) (*domain.PlayerBonuses, error) {
	var b domain.PlayerBonuses
	err := r.db.QueryRow(ctx, `
		SELECT permanent_bonus_pct, temporary_bonus_pct, temporary_bonus_expires_at
		FROM players WHERE id = $1`, playerID).
		Scan(&b.PermanentPct, &b.TemporaryPct, &b.TemporaryExpires)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
		}
		return nil, fmt.Errorf("failed to get player bonuses: %w", err)
	}
	return &b, nil
}

// RecordHarvest inserts the record and credits the player's balance in one transaction
func (r *HarvestRepository) RecordHarvest(ctx context.Context, rec domain.HarvestRecord) error {
	column, ok := resourceColumns[string(rec.ResourceKind)]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrInvalidResource, rec.ResourceKind)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO harvest_records
			(id, player_id, location_key, bucket_id, harvested_at, amount_gained, resource_kind)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (player_id, location_key, bucket_id) DO NOTHING`,
		rec.ID, rec.PlayerID, rec.LocationKey, rec.BucketID, rec.HarvestedAt, rec.AmountGained, string(rec.ResourceKind))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyHarvested
		}
		return fmt.Errorf("failed to insert harvest record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyHarvested
	}

	// column comes from resourceColumns, never from input
	tag, err = tx.Exec(ctx,
		fmt.Sprintf(`UPDATE players SET %[1]s = %[1]s + $1, updated_at = NOW() WHERE id = $2`, column),
		rec.AmountGained, rec.PlayerID)
	if err != nil {
		return fmt.Errorf("failed to credit player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, rec.PlayerID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
