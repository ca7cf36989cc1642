// Package memory holds the in-process storage backend. Every read returns a copy and every
// collection is guarded by its own lock, so ids are never handed out twice.
package memory

import (
	"time"
)

// Store bundles one repository per collection
type Store struct {
	Accounts    *AccountRepository
	Lockouts    *LockoutRepository
	Legislators *LegislatorRepository
	Parties     *PartyRepository
	Sessions    *SessionRepository
}

func NewStore() *Store {
	return &Store{
		Accounts:    NewAccountRepository(),
		Lockouts:    NewLockoutRepository(),
		Legislators: NewLegislatorRepository(),
		Parties:     NewPartyRepository(),
		Sessions:    NewSessionRepository(),
	}
}

func now() time.Time {
	return time.Now().UTC()
}
