package models

import "time"

// LockoutState tracks consecutive failed logins for one login name
type LockoutState struct {
	LoginName      string     `db:"login_name"`
	FailedAttempts int        `db:"failed_attempts"`
	LockedUntil    *time.Time `db:"locked_until"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// IsLocked reports whether the lock is still in force at now
func (s *LockoutState) IsLocked(now time.Time) bool {
	return s.LockedUntil != nil && now.Before(*s.LockedUntil)
}

// IsEmpty reports whether the state holds nothing worth keeping
func (s *LockoutState) IsEmpty() bool {
	return s.FailedAttempts == 0 && s.LockedUntil == nil
}

// Reset clears the counter and any lock
func (s *LockoutState) Reset() {
	s.FailedAttempts = 0
	s.LockedUntil = nil
}

// Clone returns a deep copy
func (s *LockoutState) Clone() *LockoutState {
	if s == nil {
		return nil
	}
	c := *s
	if s.LockedUntil != nil {
		t := *s.LockedUntil
		c.LockedUntil = &t
	}
	return &c
}
