package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/repository"
)

// FactoryRepository implements repository.FactoryRepository for PostgreSQL
type FactoryRepository struct {
	db *pgxpool.Pool
}

// NewFactoryRepository creates a new FactoryRepository
func NewFactoryRepository(db *pgxpool.Pool) *FactoryRepository {
	return &FactoryRepository{db: db}
}

var _ repository.FactoryRepository = (*FactoryRepository)(nil)

// FindFactories returns every factory matching the predicate
func (r *FactoryRepository) FindFactories(ctx context.Context, filter domain.Eligibility) ([]domain.Factory, error) {
	where, args, err := whereClause(filter, factoryColumns, nil)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, COALESCE(owner_id, ''), x, y, level, slots, used_slots, last_slot_regen
		FROM factories WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query factories: %w", err)
	}
	defer rows.Close()

	var factories []domain.Factory
	for rows.Next() {
		var f domain.Factory
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.X, &f.Y, &f.Level, &f.Slots, &f.UsedSlots, &f.LastSlotRegen); err != nil {
			return nil, fmt.Errorf("failed to scan factory: %w", err)
		}
		factories = append(factories, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate factories: %w", err)
	}
	return factories, nil
}

// ApplySlotUpdates sends every update in one batch. Each update only applies if
// used_slots still holds the value the job read, so concurrent consumption wins.
func (r *FactoryRepository) ApplySlotUpdates(ctx context.Context, updates []domain.SlotUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(`
			UPDATE factories SET used_slots = $1, last_slot_regen = $2
			WHERE id = $3 AND used_slots = $4`,
			u.UsedSlots, u.LastSlotRegen, u.FactoryID, u.PreviousUsed)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	var applied int64
	for range updates {
		tag, err := results.Exec()
		if err != nil {
			return applied, fmt.Errorf("failed to apply slot update: %w", err)
		}
		applied += tag.RowsAffected()
	}
	return applied, nil
}
