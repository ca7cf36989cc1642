package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/BradenHooton/parliament/internal/models"
)

type AccountRepository struct {
	mu           sync.RWMutex
	byLogin      map[string]*models.Account
	byLegislator map[int64]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byLogin:      make(map[string]*models.Account),
		byLegislator: make(map[int64]string),
	}
}

func (r *AccountRepository) Create(_ context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byLogin[account.LoginName]; exists {
		return nil, models.ErrConflict
	}
	if account.LegislatorID != nil {
		if _, linked := r.byLegislator[*account.LegislatorID]; linked {
			return nil, models.ErrConflict
		}
	}

	stored := account.Clone()
	stored.CreatedAt = now()
	stored.UpdatedAt = stored.CreatedAt
	r.byLogin[stored.LoginName] = stored
	if stored.LegislatorID != nil {
		r.byLegislator[*stored.LegislatorID] = stored.LoginName
	}
	return stored.Clone(), nil
}

func (r *AccountRepository) GetByLoginName(_ context.Context, loginName string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byLogin[loginName]
	if !ok {
		return nil, models.ErrNotFound
	}
	return account.Clone(), nil
}

func (r *AccountRepository) GetByLegislatorID(_ context.Context, legislatorID int64) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	login, ok := r.byLegislator[legislatorID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return r.byLogin[login].Clone(), nil
}

func (r *AccountRepository) UpdatePasswordHash(_ context.Context, loginName, passwordHash string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byLogin[loginName]
	if !ok {
		return nil, models.ErrNotFound
	}
	account.PasswordHash = passwordHash
	account.UpdatedAt = now()
	return account.Clone(), nil
}

func (r *AccountRepository) Delete(_ context.Context, loginName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byLogin[loginName]
	if !ok {
		return models.ErrNotFound
	}
	if account.LegislatorID != nil {
		delete(r.byLegislator, *account.LegislatorID)
	}
	delete(r.byLogin, loginName)
	return nil
}

func (r *AccountRepository) List(_ context.Context) ([]*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]*models.Account, 0, len(r.byLogin))
	for _, account := range r.byLogin {
		accounts = append(accounts, account.Clone())
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].LoginName < accounts[j].LoginName })
	return accounts, nil
}
