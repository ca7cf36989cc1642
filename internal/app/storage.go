package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BradenHooton/parliament/internal/config"
	"github.com/BradenHooton/parliament/internal/database"
	"github.com/BradenHooton/parliament/internal/handlers"
	"github.com/BradenHooton/parliament/internal/repositories"
	"github.com/BradenHooton/parliament/internal/repositories/memory"
	"github.com/BradenHooton/parliament/internal/seed"
	"github.com/BradenHooton/parliament/internal/services"
)

// Storage is one repository per collection plus the backend's health probe
type Storage struct {
	Accounts    services.AccountRepository
	Lockouts    services.LockoutRepository
	Legislators services.LegislatorRepository
	Parties     services.PartyRepository
	Sessions    services.SessionRepository

	// Health is nil for the in-memory backend
	Health handlers.HealthChecker

	close func()
}

// MemoryStorage is a fresh in-process backend
func MemoryStorage() *Storage {
	store := memory.NewStore()
	return &Storage{
		Accounts:    store.Accounts,
		Lockouts:    store.Lockouts,
		Legislators: store.Legislators,
		Parties:     store.Parties,
		Sessions:    store.Sessions,
		close:       func() {},
	}
}

// OpenStorage selects the backend named by cfg.Driver. PostgreSQL is migrated up before use.
func OpenStorage(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.StorageMemory:
		logger.Info("using in-memory storage")
		return MemoryStorage(), nil
	case config.StoragePostgres:
		if err := database.Migrate(ctx, cfg.URL(), database.MigrateUp); err != nil {
			return nil, err
		}

		db, err := database.NewConnection(cfg, logger)
		if err != nil {
			return nil, err
		}

		return &Storage{
			Accounts:    repositories.NewAccountRepository(db),
			Lockouts:    repositories.NewLockoutRepository(db),
			Legislators: repositories.NewLegislatorRepository(db),
			Parties:     repositories.NewPartyRepository(db),
			Sessions:    repositories.NewSessionRepository(db),
			Health:      db,
			close:       db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// SeedRepositories exposes the collections the demo fixture writes to
func (s *Storage) SeedRepositories() seed.Repositories {
	return seed.Repositories{
		Accounts:    s.Accounts,
		Legislators: s.Legislators,
		Parties:     s.Parties,
		Sessions:    s.Sessions,
	}
}
