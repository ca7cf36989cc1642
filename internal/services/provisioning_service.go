package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/BradenHooton/parliament/internal/models"
	pkgauth "github.com/BradenHooton/parliament/pkg/auth"
	pkglogger "github.com/BradenHooton/parliament/pkg/logger"
)

// ProvisionResult reports whether Provision created an account or rotated an existing one
type ProvisionResult struct {
	Account models.AccountView `json:"account"`
	Created bool               `json:"created"`
}

// ProvisioningService manages the one-to-one link between legislators and login accounts
type ProvisioningService struct {
	accounts    AccountRepository
	legislators LegislatorRepository
	hasher      PasswordHasher
	notifier    Notifier
	logger      *slog.Logger
}

func NewProvisioningService(accounts AccountRepository, legislators LegislatorRepository, hasher PasswordHasher, notifier Notifier, logger *slog.Logger) *ProvisioningService {
	return &ProvisioningService{
		accounts:    accounts,
		legislators: legislators,
		hasher:      hasher,
		notifier:    notifier,
		logger:      logger,
	}
}

// ListAccounts returns every account with its secret removed
func (s *ProvisioningService) ListAccounts(ctx context.Context) ([]models.AccountView, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		s.logger.Error("failed to list accounts", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	views := make([]models.AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, a.Redacted())
	}
	return views, nil
}

// Provision creates an account for the legislator, or rotates the secret of the one
// already linked. A rotation keeps the existing login name.
func (s *ProvisioningService) Provision(ctx context.Context, legislatorID int64, loginName, secret string) (*ProvisionResult, error) {
	if err := checkPolicy(secret); err != nil {
		return nil, err
	}

	legislator, err := s.getLegislator(ctx, legislatorID)
	if err != nil {
		return nil, err
	}

	existing, err := s.accounts.GetByLegislatorID(ctx, legislatorID)
	switch {
	case err == nil:
		if loginName = strings.TrimSpace(loginName); loginName != "" && loginName != existing.LoginName {
			s.logger.Info("provision rotates existing account, requested login ignored",
				slog.String("login", pkglogger.MaskLogin(existing.LoginName)))
		}
		rotated, err := s.rotate(ctx, existing.LoginName, secret)
		if err != nil {
			return nil, err
		}
		s.notify(ctx, NoticeRotated, rotated, legislator)
		return &ProvisionResult{Account: rotated.Redacted(), Created: false}, nil
	case !errors.Is(err, models.ErrNotFound):
		s.logger.Error("failed to look up account by legislator", slog.Int64("legislator_id", legislatorID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	created, err := s.create(ctx, legislator, loginName, secret)
	if err != nil {
		return nil, err
	}
	return &ProvisionResult{Account: created.Redacted(), Created: true}, nil
}

// CreateAccount links a new account and fails with ErrDuplicateAccount when one exists
func (s *ProvisioningService) CreateAccount(ctx context.Context, legislatorID int64, loginName, secret string) (*models.AccountView, error) {
	if err := checkPolicy(secret); err != nil {
		return nil, err
	}

	legislator, err := s.getLegislator(ctx, legislatorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.accounts.GetByLegislatorID(ctx, legislatorID); err == nil {
		return nil, models.ErrDuplicateAccount
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to look up account by legislator", slog.Int64("legislator_id", legislatorID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	created, err := s.create(ctx, legislator, loginName, secret)
	if err != nil {
		return nil, err
	}
	view := created.Redacted()
	return &view, nil
}

// RotatePassword replaces the secret of an existing account
func (s *ProvisioningService) RotatePassword(ctx context.Context, loginName, secret string) (*models.AccountView, error) {
	if err := checkPolicy(secret); err != nil {
		return nil, err
	}

	rotated, err := s.rotate(ctx, loginName, secret)
	if err != nil {
		return nil, err
	}

	if rotated.LegislatorID != nil {
		if legislator, err := s.legislators.GetByID(ctx, *rotated.LegislatorID); err == nil {
			s.notify(ctx, NoticeRotated, rotated, legislator)
		}
	}

	view := rotated.Redacted()
	return &view, nil
}

// Revoke removes an account irreversibly. The reserved admin account cannot be revoked.
func (s *ProvisioningService) Revoke(ctx context.Context, loginName string) error {
	if loginName == models.AdminLoginName {
		s.logger.Warn("refused to revoke the admin account")
		return models.ErrForbiddenOperation
	}

	account, err := s.accounts.GetByLoginName(ctx, loginName)
	if err != nil {
		return s.accountError(err, loginName)
	}

	if err := s.accounts.Delete(ctx, loginName); err != nil {
		return s.accountError(err, loginName)
	}

	s.logger.Info("account revoked", slog.String("login", pkglogger.MaskLogin(loginName)))

	if account.LegislatorID != nil {
		if legislator, err := s.legislators.GetByID(ctx, *account.LegislatorID); err == nil {
			s.notify(ctx, NoticeRevoked, account, legislator)
		}
	}
	return nil
}

// EnsureAdmin creates the reserved admin account when it is missing
func (s *ProvisioningService) EnsureAdmin(ctx context.Context, secret string) (bool, error) {
	if _, err := s.accounts.GetByLoginName(ctx, models.AdminLoginName); err == nil {
		return false, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return false, err
	}

	if err := checkPolicy(secret); err != nil {
		return false, err
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return false, err
	}

	account, err := models.NewAccount(models.AdminLoginName, hash, models.RoleAdmin, "Administrator", nil)
	if err != nil {
		return false, err
	}

	if _, err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return false, nil
		}
		return false, err
	}

	s.logger.Info("admin account created")
	return true, nil
}

func (s *ProvisioningService) create(ctx context.Context, legislator *models.Legislator, loginName, secret string) (*models.Account, error) {
	loginName = strings.TrimSpace(loginName)
	if loginName == models.AdminLoginName {
		return nil, models.ErrForbiddenOperation
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	id := legislator.ID
	account, err := models.NewAccount(loginName, hash, models.RoleLegislator, legislator.Name, &id)
	if err != nil {
		return nil, err
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrDuplicateAccount
		}
		s.logger.Error("failed to create account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("account created",
		slog.String("login", pkglogger.MaskLogin(created.LoginName)),
		slog.Int64("legislator_id", legislator.ID))
	s.notify(ctx, NoticeCreated, created, legislator)
	return created, nil
}

func (s *ProvisioningService) rotate(ctx context.Context, loginName, secret string) (*models.Account, error) {
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	updated, err := s.accounts.UpdatePasswordHash(ctx, loginName, hash)
	if err != nil {
		return nil, s.accountError(err, loginName)
	}

	s.logger.Info("password rotated", slog.String("login", pkglogger.MaskLogin(loginName)))
	return updated, nil
}

func (s *ProvisioningService) getLegislator(ctx context.Context, id int64) (*models.Legislator, error) {
	legislator, err := s.legislators.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFound("legislator", id)
		}
		s.logger.Error("failed to get legislator", slog.Int64("legislator_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return legislator, nil
}

func (s *ProvisioningService) accountError(err error, loginName string) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.NewNotFound("account", loginName)
	}
	s.logger.Error("account store failure", slog.String("login", pkglogger.MaskLogin(loginName)), slog.Any("error", err))
	return models.ErrInternalServer
}

// notify never fails the operation; delivery problems are only logged
func (s *ProvisioningService) notify(ctx context.Context, kind string, account *models.Account, legislator *models.Legislator) {
	if s.notifier == nil {
		return
	}
	notice := ProvisioningNotice{
		Kind:        kind,
		LoginName:   account.LoginName,
		DisplayName: account.DisplayName,
		Email:       legislator.Email,
	}
	if err := s.notifier.Notify(ctx, notice); err != nil {
		s.logger.Warn("account notice not delivered", slog.String("kind", kind), slog.Any("error", err))
	}
}

// checkPolicy converts a policy violation into the model error
func checkPolicy(secret string) error {
	err := pkgauth.CheckPasswordPolicy(secret)
	if err == nil {
		return nil
	}
	var violation *pkgauth.PasswordPolicyViolation
	if errors.As(err, &violation) {
		return &models.PasswordPolicyError{Reasons: violation.Reasons}
	}
	return err
}
