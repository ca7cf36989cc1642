package services

import (
	"context"
	"time"

	"github.com/BradenHooton/parliament/internal/models"
)

// AccountRepository persists login accounts keyed by login name.
// Create returns models.ErrConflict when the login name is taken or the legislator is already linked.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByLoginName(ctx context.Context, loginName string) (*models.Account, error)
	GetByLegislatorID(ctx context.Context, legislatorID int64) (*models.Account, error)
	UpdatePasswordHash(ctx context.Context, loginName, passwordHash string) (*models.Account, error)
	Delete(ctx context.Context, loginName string) error
	List(ctx context.Context) ([]*models.Account, error)
}

// LockoutRepository stores per-login failure counters.
// Update applies fn to the current state (empty when none) as one atomic read-modify-write;
// a state left empty by fn is removed.
type LockoutRepository interface {
	Get(ctx context.Context, loginName string) (*models.LockoutState, error)
	Update(ctx context.Context, loginName string, fn func(state *models.LockoutState) error) (*models.LockoutState, error)
	PruneExpired(ctx context.Context, now time.Time) (int64, error)
}

type LegislatorRepository interface {
	Create(ctx context.Context, legislator *models.Legislator) (*models.Legislator, error)
	GetByID(ctx context.Context, id int64) (*models.Legislator, error)
	Update(ctx context.Context, id int64, legislator *models.Legislator) (*models.Legislator, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Legislator, error)
	Count(ctx context.Context) (int, error)
}

type PartyRepository interface {
	Create(ctx context.Context, party *models.Party) (*models.Party, error)
	GetByID(ctx context.Context, id int64) (*models.Party, error)
	Update(ctx context.Context, id int64, party *models.Party) (*models.Party, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Party, error)
}

// SessionRepository persists sittings. Update replaces every mutable column, attendees included.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) (*models.Session, error)
	GetByID(ctx context.Context, id int64) (*models.Session, error)
	Update(ctx context.Context, id int64, session *models.Session) (*models.Session, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Session, error)
}
