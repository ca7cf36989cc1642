package repositories

import (
	"context"
	"fmt"

	"github.com/BradenHooton/parliament/internal/database"
	"github.com/BradenHooton/parliament/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `login_name, password_hash, role, display_name, legislator_id, created_at, updated_at`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{pool: db.Pool}
}

func scanAccountRow(scanner rowScanner) (*models.Account, error) {
	var account models.Account
	err := scanner.Scan(
		&account.LoginName, &account.PasswordHash, &account.Role, &account.DisplayName,
		&account.LegislatorID, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (login_name, password_hash, role, display_name, legislator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + accountColumns

	created, err := scanAccountRow(r.pool.QueryRow(ctx, query,
		account.LoginName, account.PasswordHash, account.Role, account.DisplayName, account.LegislatorID,
	))
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *AccountRepository) GetByLoginName(ctx context.Context, loginName string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE login_name = $1`
	return scanAccountRow(r.pool.QueryRow(ctx, query, loginName))
}

func (r *AccountRepository) GetByLegislatorID(ctx context.Context, legislatorID int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE legislator_id = $1`
	return scanAccountRow(r.pool.QueryRow(ctx, query, legislatorID))
}

func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, loginName, passwordHash string) (*models.Account, error) {
	query := `
		UPDATE accounts SET password_hash = $2, updated_at = NOW()
		WHERE login_name = $1
		RETURNING ` + accountColumns

	return scanAccountRow(r.pool.QueryRow(ctx, query, loginName, passwordHash))
}

func (r *AccountRepository) Delete(ctx context.Context, loginName string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE login_name = $1`, loginName)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY login_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	return scanRows(rows, scanAccountRow)
}
