package repositories

import (
	"context"
	"fmt"

	"github.com/BradenHooton/parliament/internal/database"
	"github.com/BradenHooton/parliament/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

const legislatorColumns = `id, name, party_name, district_label, attendance_percent, vote_count, speech_count,
	email, phone, created_at, updated_at`

type LegislatorRepository struct {
	pool *pgxpool.Pool
}

func NewLegislatorRepository(db *database.DB) *LegislatorRepository {
	return &LegislatorRepository{pool: db.Pool}
}

func scanLegislatorRow(scanner rowScanner) (*models.Legislator, error) {
	var l models.Legislator
	err := scanner.Scan(
		&l.ID, &l.Name, &l.PartyName, &l.DistrictLabel, &l.AttendancePercent, &l.VoteCount, &l.SpeechCount,
		&l.Email, &l.Phone, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &l, nil
}

func (r *LegislatorRepository) Create(ctx context.Context, l *models.Legislator) (*models.Legislator, error) {
	query := `
		INSERT INTO legislators (name, party_name, district_label, attendance_percent, vote_count, speech_count, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + legislatorColumns

	return scanLegislatorRow(r.pool.QueryRow(ctx, query,
		l.Name, l.PartyName, l.DistrictLabel, l.AttendancePercent, l.VoteCount, l.SpeechCount, l.Email, l.Phone,
	))
}

func (r *LegislatorRepository) GetByID(ctx context.Context, id int64) (*models.Legislator, error) {
	return scanLegislatorRow(r.pool.QueryRow(ctx, `SELECT `+legislatorColumns+` FROM legislators WHERE id = $1`, id))
}

func (r *LegislatorRepository) Update(ctx context.Context, id int64, l *models.Legislator) (*models.Legislator, error) {
	query := `
		UPDATE legislators
		SET name = $2, party_name = $3, district_label = $4, attendance_percent = $5,
			vote_count = $6, speech_count = $7, email = $8, phone = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + legislatorColumns

	return scanLegislatorRow(r.pool.QueryRow(ctx, query,
		id, l.Name, l.PartyName, l.DistrictLabel, l.AttendancePercent, l.VoteCount, l.SpeechCount, l.Email, l.Phone,
	))
}

func (r *LegislatorRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM legislators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete legislator: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *LegislatorRepository) List(ctx context.Context) ([]*models.Legislator, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+legislatorColumns+` FROM legislators ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query legislators: %w", err)
	}
	return scanRows(rows, scanLegislatorRow)
}

func (r *LegislatorRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM legislators`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count legislators: %w", err)
	}
	return count, nil
}
