package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DarkFrame_Go/internal/database/postgres"
	"github.com/osse101/DarkFrame_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Harvest repository.HarvestRepository
	Factory repository.FactoryRepository
	Flag    repository.FlagRepository
}

// InitializeRepositories creates the postgres-backed repositories
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Harvest: postgres.NewHarvestRepository(dbPool),
		Factory: postgres.NewFactoryRepository(dbPool),
		Flag:    postgres.NewFlagRepository(dbPool),
	}
}
