//go:build integration

package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"

	"github.com/BradenHooton/parliament/internal/database"
	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/repositories"
	"github.com/BradenHooton/parliament/internal/services"
)

var (
	_ services.AccountRepository    = (*repositories.AccountRepository)(nil)
	_ services.LockoutRepository    = (*repositories.LockoutRepository)(nil)
	_ services.LegislatorRepository = (*repositories.LegislatorRepository)(nil)
	_ services.PartyRepository      = (*repositories.PartyRepository)(nil)
	_ services.SessionRepository    = (*repositories.SessionRepository)(nil)
)

// setupDatabase starts PostgreSQL in a container and applies the embedded migrations
func setupDatabase(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("parliament"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, connStr, database.MigrateUp))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return database.NewFromPool(pool, nil)
}

func TestPostgresRepositories(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()

	accounts := repositories.NewAccountRepository(db)
	lockouts := repositories.NewLockoutRepository(db)
	legislators := repositories.NewLegislatorRepository(db)
	parties := repositories.NewPartyRepository(db)
	sessions := repositories.NewSessionRepository(db)

	t.Run("legislator round trip", func(t *testing.T) {
		party := "Green"
		created, err := legislators.Create(ctx, &models.Legislator{Name: "Ivanov I.I.", PartyName: &party, AttendancePercent: 95})
		require.NoError(t, err)
		assert.Positive(t, created.ID)

		got, err := legislators.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Green", *got.PartyName)

		got.PartyName = nil
		updated, err := legislators.Update(ctx, created.ID, got)
		require.NoError(t, err)
		assert.Nil(t, updated.PartyName)

		count, err := legislators.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		_, err = legislators.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("party delete", func(t *testing.T) {
		created, err := parties.Create(ctx, &models.Party{Name: "Union", Color: "#1976d2", FoundedYear: 1998})
		require.NoError(t, err)
		require.NoError(t, parties.Delete(ctx, created.ID))
		assert.ErrorIs(t, parties.Delete(ctx, created.ID), models.ErrNotFound)
	})

	t.Run("session arrays and date", func(t *testing.T) {
		created, err := sessions.Create(ctx, &models.Session{
			Title: "Plenary 234", Date: "2025-01-25", Time: "10:00",
			Kind: models.SessionKindPlenary, Status: models.SessionStatusScheduled,
			Agenda: []string{"Budget"},
		})
		require.NoError(t, err)
		assert.Equal(t, "2025-01-25", created.Date)
		assert.Empty(t, created.AttendeeIDs)

		created.AttendeeIDs = []int64{1, 2}
		created.AttendancePercent = 40
		created.Status = models.SessionStatusCompleted
		updated, err := sessions.Update(ctx, created.ID, created)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, updated.AttendeeIDs)
		assert.Equal(t, []string{"Budget"}, updated.Agenda)
	})

	t.Run("account uniqueness", func(t *testing.T) {
		id := int64(1)
		_, err := accounts.Create(ctx, &models.Account{LoginName: "deputy1", PasswordHash: "h", Role: models.RoleLegislator, DisplayName: "D", LegislatorID: &id})
		require.NoError(t, err)

		_, err = accounts.Create(ctx, &models.Account{LoginName: "deputy9", PasswordHash: "h", Role: models.RoleLegislator, DisplayName: "D", LegislatorID: &id})
		assert.ErrorIs(t, err, models.ErrConflict)

		linked, err := accounts.GetByLegislatorID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "deputy1", linked.LoginName)

		require.NoError(t, accounts.Delete(ctx, "deputy1"))
		assert.ErrorIs(t, accounts.Delete(ctx, "deputy1"), models.ErrNotFound)
	})

	t.Run("lockout update is serialized", func(t *testing.T) {
		const n = 20
		var g errgroup.Group
		for i := 0; i < n; i++ {
			g.Go(func() error {
				_, err := lockouts.Update(ctx, "deputy2", func(s *models.LockoutState) error {
					s.FailedAttempts++
					return nil
				})
				return err
			})
		}
		require.NoError(t, g.Wait())

		state, err := lockouts.Get(ctx, "deputy2")
		require.NoError(t, err)
		assert.Equal(t, n, state.FailedAttempts)

		_, err = lockouts.Update(ctx, "deputy2", func(s *models.LockoutState) error {
			s.Reset()
			return nil
		})
		require.NoError(t, err)
		state, err = lockouts.Get(ctx, "deputy2")
		require.NoError(t, err)
		assert.True(t, state.IsEmpty())
	})

	t.Run("prune expired locks", func(t *testing.T) {
		past := time.Now().Add(-time.Minute)
		_, err := lockouts.Update(ctx, "expired", func(s *models.LockoutState) error {
			s.LockedUntil = &past
			return nil
		})
		require.NoError(t, err)

		pruned, err := lockouts.PruneExpired(ctx, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), pruned)
	})
}
