package memory

import (
	"context"
	"sync"
	"time"

	"github.com/BradenHooton/parliament/internal/models"
)

type LockoutRepository struct {
	mu     sync.Mutex
	states map[string]*models.LockoutState
}

func NewLockoutRepository() *LockoutRepository {
	return &LockoutRepository{states: make(map[string]*models.LockoutState)}
}

func (r *LockoutRepository) Get(_ context.Context, loginName string) (*models.LockoutState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state, ok := r.states[loginName]; ok {
		return state.Clone(), nil
	}
	return &models.LockoutState{LoginName: loginName}, nil
}

// Update holds the collection lock for the whole read-modify-write
func (r *LockoutRepository) Update(_ context.Context, loginName string, fn func(*models.LockoutState) error) (*models.LockoutState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := &models.LockoutState{LoginName: loginName}
	if existing, ok := r.states[loginName]; ok {
		state = existing.Clone()
	}

	if err := fn(state); err != nil {
		return nil, err
	}

	state.LoginName = loginName
	if state.IsEmpty() {
		delete(r.states, loginName)
		return state.Clone(), nil
	}

	state.UpdatedAt = now()
	r.states[loginName] = state
	return state.Clone(), nil
}

func (r *LockoutRepository) PruneExpired(_ context.Context, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pruned int64
	for login, state := range r.states {
		if state.LockedUntil != nil && !at.Before(*state.LockedUntil) {
			delete(r.states, login)
			pruned++
		}
	}
	return pruned, nil
}

// Len reports how many login names currently carry state
func (r *LockoutRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}
