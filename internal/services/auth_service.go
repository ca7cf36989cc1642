package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/BradenHooton/parliament/internal/auth"
	"github.com/BradenHooton/parliament/internal/models"
	pkglogger "github.com/BradenHooton/parliament/pkg/logger"
)

// PasswordHasher hashes and verifies account secrets
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

// TokenIssuer signs a bearer token for an authenticated session
type TokenIssuer interface {
	Issue(desc models.SessionDescriptor) (string, error)
}

// LoginResult is returned on a successful login
type LoginResult struct {
	Token   string                   `json:"token"`
	Session models.SessionDescriptor `json:"session"`
}

// AuthService handles login and logout
type AuthService struct {
	accounts AccountRepository
	guard    *LockoutGuard
	hasher   PasswordHasher
	tokens   TokenIssuer
	timing   *auth.TimingDelay
	logger   *slog.Logger
	env      string

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(accounts AccountRepository, guard *LockoutGuard, hasher PasswordHasher, tokens TokenIssuer, timing *auth.TimingDelay, logger *slog.Logger, env string) *AuthService {
	return &AuthService{
		accounts: accounts,
		guard:    guard,
		hasher:   hasher,
		tokens:   tokens,
		timing:   timing,
		logger:   logger,
		env:      env,
	}
}

// Login authenticates loginName. Guard state changes are applied even if the caller goes away.
func (s *AuthService) Login(ctx context.Context, loginName, secret string) (*LoginResult, error) {
	start := time.Now()
	ctx = context.WithoutCancel(ctx)

	loginName = strings.TrimSpace(loginName)
	if loginName == "" {
		return nil, &models.ValidationError{Field: "login_name", Reason: "this field is required"}
	}
	if secret == "" {
		return nil, &models.ValidationError{Field: "password", Reason: "this field is required"}
	}
	loginAttr := pkglogger.LoginAttr(loginName, s.env)

	decision, err := s.guard.Check(ctx, loginName)
	if err != nil {
		s.logger.Error("lockout check failed", loginAttr, slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	if decision.Blocked {
		s.logger.Info("login rejected: locked", loginAttr, slog.Int("retry_after_seconds", decision.RetryAfterSeconds))
		return nil, &models.LockedOutError{RetryAfterSeconds: decision.RetryAfterSeconds}
	}

	account, err := s.accounts.GetByLoginName(ctx, loginName)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to load account", loginAttr, slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !s.secretMatches(account, secret) {
		outcome, err := s.guard.RecordFailure(ctx, loginName)
		s.timing.WaitFrom(start, false)
		if err != nil {
			s.logger.Error("failed to record login failure", loginAttr, slog.Any("error", err))
			return nil, models.ErrInternalServer
		}

		if outcome.Locked {
			return nil, &models.LockedOutError{RetryAfterSeconds: outcome.RetryAfterSeconds}
		}
		s.logger.Info("login failed: invalid credentials", loginAttr, slog.Int("attempts_remaining", outcome.AttemptsRemaining))
		return nil, &models.InvalidCredentialsError{AttemptsRemaining: outcome.AttemptsRemaining}
	}

	if err := s.guard.RecordSuccess(ctx, loginName); err != nil {
		s.logger.Error("failed to reset lockout state", loginAttr, slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	desc := models.DescriptorFor(account)
	token, err := s.tokens.Issue(desc)
	if err != nil {
		s.logger.Error("failed to issue token", loginAttr, slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.timing.WaitFrom(start, true)
	s.logger.Info("login succeeded", loginAttr, slog.String("role", desc.Role))

	return &LoginResult{Token: token, Session: desc}, nil
}

// Logout has no server-side state to discard; tokens are not revocable
func (s *AuthService) Logout(_ context.Context, desc models.SessionDescriptor) error {
	s.logger.Info("logout", pkglogger.LoginAttr(desc.LoginName, s.env))
	return nil
}

// secretMatches always runs one hash comparison so unknown logins cost the same as wrong passwords
func (s *AuthService) secretMatches(account *models.Account, secret string) bool {
	if account == nil {
		_ = s.hasher.Compare(s.timingHash(), secret)
		return false
	}
	return s.hasher.Compare(account.PasswordHash, secret) == nil
}

func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("timing-parity-Placeholder1!")
		if err != nil {
			s.logger.Warn("failed to prepare timing hash", slog.Any("error", err))
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
