package memory

import (
	"context"
	"time"

	"github.com/BradenHooton/parliament/internal/models"
)

type LegislatorRepository struct {
	rows *table[models.Legislator]
}

func NewLegislatorRepository() *LegislatorRepository {
	return &LegislatorRepository{rows: newTable((*models.Legislator).Clone,
		func(l *models.Legislator) (*int64, *time.Time, *time.Time) { return &l.ID, &l.CreatedAt, &l.UpdatedAt },
	)}
}

func (r *LegislatorRepository) Create(_ context.Context, l *models.Legislator) (*models.Legislator, error) {
	return r.rows.create(l), nil
}

func (r *LegislatorRepository) GetByID(_ context.Context, id int64) (*models.Legislator, error) {
	return r.rows.get(id)
}

func (r *LegislatorRepository) Update(_ context.Context, id int64, l *models.Legislator) (*models.Legislator, error) {
	return r.rows.replace(id, l)
}

func (r *LegislatorRepository) Delete(_ context.Context, id int64) error {
	return r.rows.delete(id)
}

func (r *LegislatorRepository) List(_ context.Context) ([]*models.Legislator, error) {
	return r.rows.list(), nil
}

func (r *LegislatorRepository) Count(_ context.Context) (int, error) {
	return r.rows.count(), nil
}

type PartyRepository struct {
	rows *table[models.Party]
}

func NewPartyRepository() *PartyRepository {
	return &PartyRepository{rows: newTable((*models.Party).Clone,
		func(p *models.Party) (*int64, *time.Time, *time.Time) { return &p.ID, &p.CreatedAt, &p.UpdatedAt },
	)}
}

func (r *PartyRepository) Create(_ context.Context, p *models.Party) (*models.Party, error) {
	return r.rows.create(p), nil
}

func (r *PartyRepository) GetByID(_ context.Context, id int64) (*models.Party, error) {
	return r.rows.get(id)
}

func (r *PartyRepository) Update(_ context.Context, id int64, p *models.Party) (*models.Party, error) {
	return r.rows.replace(id, p)
}

func (r *PartyRepository) Delete(_ context.Context, id int64) error {
	return r.rows.delete(id)
}

func (r *PartyRepository) List(_ context.Context) ([]*models.Party, error) {
	return r.rows.list(), nil
}

type SessionRepository struct {
	rows *table[models.Session]
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{rows: newTable((*models.Session).Clone,
		func(s *models.Session) (*int64, *time.Time, *time.Time) { return &s.ID, &s.CreatedAt, &s.UpdatedAt },
	)}
}

func (r *SessionRepository) Create(_ context.Context, s *models.Session) (*models.Session, error) {
	return r.rows.create(s), nil
}

func (r *SessionRepository) GetByID(_ context.Context, id int64) (*models.Session, error) {
	return r.rows.get(id)
}

func (r *SessionRepository) Update(_ context.Context, id int64, s *models.Session) (*models.Session, error) {
	return r.rows.replace(id, s)
}

func (r *SessionRepository) Delete(_ context.Context, id int64) error {
	return r.rows.delete(id)
}

func (r *SessionRepository) List(_ context.Context) ([]*models.Session, error) {
	return r.rows.list(), nil
}
