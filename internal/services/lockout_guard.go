package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/BradenHooton/parliament/internal/models"
	pkglogger "github.com/BradenHooton/parliament/pkg/logger"
)

// LockoutPolicy is the consecutive-failure rule applied per login name
type LockoutPolicy struct {
	Threshold int
	Duration  time.Duration
}

func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{Threshold: 5, Duration: 60 * time.Second}
}

// LockoutDecision is the result of a pre-authentication check
type LockoutDecision struct {
	Blocked           bool
	RetryAfterSeconds int
}

// FailureOutcome describes the state after a failed attempt was counted
type FailureOutcome struct {
	Locked            bool
	NewlyLocked       bool
	FailedAttempts    int
	AttemptsRemaining int
	RetryAfterSeconds int
}

// LockoutGuard counts failed logins per login name and imposes temporary locks.
// Reaching the threshold locks the name and clears the counter.
type LockoutGuard struct {
	repo   LockoutRepository
	policy LockoutPolicy
	now    func() time.Time
	logger *slog.Logger
}

func NewLockoutGuard(repo LockoutRepository, policy LockoutPolicy, logger *slog.Logger) *LockoutGuard {
	if policy.Threshold < 1 || policy.Duration <= 0 {
		policy = DefaultLockoutPolicy()
	}
	return &LockoutGuard{
		repo:   repo,
		policy: policy,
		now:    time.Now,
		logger: logger,
	}
}

func (g *LockoutGuard) Policy() LockoutPolicy {
	return g.policy
}

// Check reports whether loginName is currently locked. An expired lock is cleared so
// the next window starts at zero.
func (g *LockoutGuard) Check(ctx context.Context, loginName string) (LockoutDecision, error) {
	state, err := g.repo.Get(ctx, loginName)
	if err != nil {
		return LockoutDecision{}, fmt.Errorf("read lockout state: %w", err)
	}

	now := g.now()
	if state.IsLocked(now) {
		return LockoutDecision{Blocked: true, RetryAfterSeconds: secondsUntil(now, *state.LockedUntil)}, nil
	}

	if state.LockedUntil != nil {
		_, err := g.repo.Update(ctx, loginName, func(s *models.LockoutState) error {
			if s.LockedUntil != nil && !s.IsLocked(now) {
				s.Reset()
			}
			return nil
		})
		if err != nil {
			return LockoutDecision{}, fmt.Errorf("clear expired lock: %w", err)
		}
	}

	return LockoutDecision{}, nil
}

// RecordFailure counts one failed attempt. A failure that lands while a lock is
// already in force is not counted and reports the remaining lock instead.
func (g *LockoutGuard) RecordFailure(ctx context.Context, loginName string) (FailureOutcome, error) {
	var outcome FailureOutcome
	now := g.now()

	_, err := g.repo.Update(ctx, loginName, func(s *models.LockoutState) error {
		outcome = FailureOutcome{}

		if s.IsLocked(now) {
			outcome.Locked = true
			outcome.RetryAfterSeconds = secondsUntil(now, *s.LockedUntil)
			return nil
		}
		if s.LockedUntil != nil {
			s.Reset()
		}

		s.FailedAttempts++
		outcome.FailedAttempts = s.FailedAttempts

		if s.FailedAttempts >= g.policy.Threshold {
			until := now.Add(g.policy.Duration)
			s.LockedUntil = &until
			s.FailedAttempts = 0

			outcome.Locked = true
			outcome.NewlyLocked = true
			outcome.RetryAfterSeconds = secondsUntil(now, until)
			return nil
		}

		outcome.AttemptsRemaining = g.policy.Threshold - s.FailedAttempts
		return nil
	})
	if err != nil {
		return FailureOutcome{}, fmt.Errorf("record failed attempt: %w", err)
	}

	if outcome.NewlyLocked {
		g.logger.Warn("login locked after repeated failures",
			slog.String("login", pkglogger.MaskLogin(loginName)),
			slog.Int("threshold", g.policy.Threshold),
			slog.Duration("duration", g.policy.Duration))
	}

	return outcome, nil
}

// RecordSuccess clears the counter and any lock
func (g *LockoutGuard) RecordSuccess(ctx context.Context, loginName string) error {
	_, err := g.repo.Update(ctx, loginName, func(s *models.LockoutState) error {
		s.Reset()
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset lockout state: %w", err)
	}
	return nil
}

// PruneExpired drops lock records whose lock has ended
func (g *LockoutGuard) PruneExpired(ctx context.Context) (int64, error) {
	return g.repo.PruneExpired(ctx, g.now())
}

// secondsUntil rounds the remaining time up to whole seconds
func secondsUntil(now, until time.Time) int {
	remaining := until.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Seconds()))
}
