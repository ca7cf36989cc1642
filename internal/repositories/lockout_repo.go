package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BradenHooton/parliament/internal/database"
	"github.com/BradenHooton/parliament/internal/models"
	"github.com/jackc/pgx/v5"
)

// LockoutRepository keeps failed login counters in login_lockouts
type LockoutRepository struct {
	db *database.DB
}

func NewLockoutRepository(db *database.DB) *LockoutRepository {
	return &LockoutRepository{db: db}
}

func (r *LockoutRepository) Get(ctx context.Context, loginName string) (*models.LockoutState, error) {
	query := `
		SELECT login_name, failed_attempts, locked_until, updated_at
		FROM login_lockouts WHERE login_name = $1
	`

	var state models.LockoutState
	err := r.db.Pool.QueryRow(ctx, query, loginName).Scan(
		&state.LoginName, &state.FailedAttempts, &state.LockedUntil, &state.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.LockoutState{LoginName: loginName}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read lockout state: %w", err)
	}
	return &state, nil
}

// Update locks the row for loginName, applies fn and writes the result back in one transaction
func (r *LockoutRepository) Update(ctx context.Context, loginName string, fn func(*models.LockoutState) error) (*models.LockoutState, error) {
	var result *models.LockoutState

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		// Make sure a row exists so FOR UPDATE has something to lock
		if _, err := tx.Exec(ctx,
			`INSERT INTO login_lockouts (login_name) VALUES ($1) ON CONFLICT (login_name) DO NOTHING`,
			loginName,
		); err != nil {
			return fmt.Errorf("failed to ensure lockout row: %w", err)
		}

		state := &models.LockoutState{LoginName: loginName}
		err := tx.QueryRow(ctx, `
			SELECT failed_attempts, locked_until, updated_at
			FROM login_lockouts WHERE login_name = $1
			FOR UPDATE
		`, loginName).Scan(&state.FailedAttempts, &state.LockedUntil, &state.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to lock lockout row: %w", err)
		}

		if err := fn(state); err != nil {
			return err
		}

		if state.IsEmpty() {
			if _, err := tx.Exec(ctx, `DELETE FROM login_lockouts WHERE login_name = $1`, loginName); err != nil {
				return fmt.Errorf("failed to clear lockout state: %w", err)
			}
			result = state.Clone()
			return nil
		}

		err = tx.QueryRow(ctx, `
			UPDATE login_lockouts
			SET failed_attempts = $2, locked_until = $3, updated_at = NOW()
			WHERE login_name = $1
			RETURNING updated_at
		`, loginName, state.FailedAttempts, state.LockedUntil).Scan(&state.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to write lockout state: %w", err)
		}

		result = state.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PruneExpired removes locks that ended before now
func (r *LockoutRepository) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM login_lockouts WHERE locked_until IS NOT NULL AND locked_until <= $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune lockouts: %w", err)
	}
	return tag.RowsAffected(), nil
}
