package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/repository"
)

const (
	flagMoveSQL = `
		UPDATE flag_bots SET x = $1, y = $2, last_moved_at = $3, version = version + 1
		WHERE id = $4 AND version = $5`

	flagRespawnSQL = `
		UPDATE flag_bots SET x = $1, y = $2, last_moved_at = $3, spawned_at = $3,
			holder_id = NULL, claimed_at = NULL, version = version + 1
		WHERE id = $4 AND version = $5`
)

// FlagRepository implements repository.FlagRepository for PostgreSQL
type FlagRepository struct {
	db *pgxpool.Pool
}

// NewFlagRepository creates a new FlagRepository
func NewFlagRepository(db *pgxpool.Pool) *FlagRepository {
	return &FlagRepository{db: db}
}

var _ repository.FlagRepository = (*FlagRepository)(nil)

// ListFlagBots returns all flag bots ordered by id
func (r *FlagRepository) ListFlagBots(ctx context.Context) ([]domain.FlagBot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, x, y, holder_id, claimed_at, last_moved_at, spawned_at, version
		FROM flag_bots ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query flag bots: %w", err)
	}

	bots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FlagBot, error) {
		var b domain.FlagBot
		err := row.Scan(&b.ID, &b.X, &b.Y, &b.HolderID, &b.ClaimedAt, &b.LastMovedAt, &b.SpawnedAt, &b.Version)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan flag bots: %w", err)
	}
	return bots, nil
}

// ApplyFlagUpdates sends every update in one batch, each guarded by the bot version
func (r *FlagRepository) ApplyFlagUpdates(ctx context.Context, updates []domain.FlagUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, u := range updates {
		sql := flagMoveSQL
		if u.Kind == domain.FlagUpdateRespawn {
			sql = flagRespawnSQL
		}
		batch.Queue(sql, u.X, u.Y, u.At, u.FlagID, u.ExpectedVersion)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	var applied int64
	for range updates {
		tag, err := results.Exec()
		if err != nil {
			return applied, fmt.Errorf("failed to apply flag update: %w", err)
		}
		applied += tag.RowsAffected()
	}
	return applied, nil
}
