package repositories

import (
	"context"
	"fmt"

	"github.com/BradenHooton/parliament/internal/database"
	"github.com/BradenHooton/parliament/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// session_date is a DATE column; it travels as YYYY-MM-DD text in both directions
const sessionColumns = `id, title, to_char(session_date, 'YYYY-MM-DD'), session_time, kind, status,
	attendee_ids, attendance_percent, agenda, duration_minutes, created_at, updated_at`

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{pool: db.Pool}
}

func scanSessionRow(scanner rowScanner) (*models.Session, error) {
	var s models.Session
	err := scanner.Scan(
		&s.ID, &s.Title, &s.Date, &s.Time, &s.Kind, &s.Status,
		&s.AttendeeIDs, &s.AttendancePercent, &s.Agenda, &s.DurationMinutes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	if s.AttendeeIDs == nil {
		s.AttendeeIDs = []int64{}
	}
	if s.Agenda == nil {
		s.Agenda = []string{}
	}
	return &s, nil
}

func (r *SessionRepository) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	query := `
		INSERT INTO sessions (title, session_date, session_time, kind, status, attendee_ids, attendance_percent, agenda, duration_minutes)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + sessionColumns

	return scanSessionRow(r.pool.QueryRow(ctx, query,
		s.Title, s.Date, s.Time, s.Kind, s.Status, nonNilIDs(s.AttendeeIDs), s.AttendancePercent, nonNilStrings(s.Agenda), s.DurationMinutes,
	))
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	return scanSessionRow(r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id))
}

func (r *SessionRepository) Update(ctx context.Context, id int64, s *models.Session) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET title = $2, session_date = $3::date, session_time = $4, kind = $5, status = $6,
			attendee_ids = $7, attendance_percent = $8, agenda = $9, duration_minutes = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + sessionColumns

	return scanSessionRow(r.pool.QueryRow(ctx, query,
		id, s.Title, s.Date, s.Time, s.Kind, s.Status, nonNilIDs(s.AttendeeIDs), s.AttendancePercent, nonNilStrings(s.Agenda), s.DurationMinutes,
	))
}

func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) List(ctx context.Context) ([]*models.Session, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	return scanRows(rows, scanSessionRow)
}

// nil slices would be sent as NULL and trip the NOT NULL columns
func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
