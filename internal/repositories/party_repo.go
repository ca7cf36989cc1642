package repositories

import (
	"context"
	"fmt"

	"github.com/BradenHooton/parliament/internal/database"
	"github.com/BradenHooton/parliament/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

const partyColumns = `id, name, color, declared_member_count, leader_name, founded_year, created_at, updated_at`

type PartyRepository struct {
	pool *pgxpool.Pool
}

func NewPartyRepository(db *database.DB) *PartyRepository {
	return &PartyRepository{pool: db.Pool}
}

func scanPartyRow(scanner rowScanner) (*models.Party, error) {
	var p models.Party
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Color, &p.DeclaredMemberCount, &p.LeaderName, &p.FoundedYear, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &p, nil
}

func (r *PartyRepository) Create(ctx context.Context, p *models.Party) (*models.Party, error) {
	query := `
		INSERT INTO parties (name, color, declared_member_count, leader_name, founded_year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + partyColumns

	return scanPartyRow(r.pool.QueryRow(ctx, query, p.Name, p.Color, p.DeclaredMemberCount, p.LeaderName, p.FoundedYear))
}

func (r *PartyRepository) GetByID(ctx context.Context, id int64) (*models.Party, error) {
	return scanPartyRow(r.pool.QueryRow(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = $1`, id))
}

func (r *PartyRepository) Update(ctx context.Context, id int64, p *models.Party) (*models.Party, error) {
	query := `
		UPDATE parties
		SET name = $2, color = $3, declared_member_count = $4, leader_name = $5, founded_year = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + partyColumns

	return scanPartyRow(r.pool.QueryRow(ctx, query, id, p.Name, p.Color, p.DeclaredMemberCount, p.LeaderName, p.FoundedYear))
}

func (r *PartyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PartyRepository) List(ctx context.Context) ([]*models.Party, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+partyColumns+` FROM parties ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	return scanRows(rows, scanPartyRow)
}
