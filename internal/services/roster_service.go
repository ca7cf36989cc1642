package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/BradenHooton/parliament/internal/models"
)

// LegislatorFilter narrows a legislator listing. Empty fields match everything.
type LegislatorFilter struct {
	PartyName string
	Query     string
}

// RosterService owns legislators and parties
type RosterService struct {
	legislators LegislatorRepository
	parties     PartyRepository
	logger      *slog.Logger
}

func NewRosterService(legislators LegislatorRepository, parties PartyRepository, logger *slog.Logger) *RosterService {
	return &RosterService{
		legislators: legislators,
		parties:     parties,
		logger:      logger,
	}
}

func (s *RosterService) ListLegislators(ctx context.Context, filter LegislatorFilter) ([]*models.Legislator, error) {
	party := strings.TrimSpace(filter.PartyName)
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	return s.Find(ctx, func(l *models.Legislator) bool {
		if party != "" && !l.InParty(party) {
			return false
		}
		return query == "" || strings.Contains(strings.ToLower(l.Name), query)
	})
}

// Find returns the legislators matching predicate
func (s *RosterService) Find(ctx context.Context, predicate func(*models.Legislator) bool) ([]*models.Legislator, error) {
	all, err := s.legislators.List(ctx)
	if err != nil {
		s.logger.Error("failed to list legislators", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	matched := make([]*models.Legislator, 0, len(all))
	for _, l := range all {
		if predicate(l) {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

func (s *RosterService) FilterByPartyName(ctx context.Context, partyName string) ([]*models.Legislator, error) {
	return s.Find(ctx, func(l *models.Legislator) bool { return l.InParty(partyName) })
}

// Search matches text case-insensitively anywhere in the legislator's name
func (s *RosterService) Search(ctx context.Context, text string) ([]*models.Legislator, error) {
	return s.ListLegislators(ctx, LegislatorFilter{Query: text})
}

func (s *RosterService) GetLegislator(ctx context.Context, id int64) (*models.Legislator, error) {
	l, err := s.legislators.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "legislator", id)
	}
	return l, nil
}

func (s *RosterService) CreateLegislator(ctx context.Context, l *models.Legislator) (*models.Legislator, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	created, err := s.legislators.Create(ctx, l)
	if err != nil {
		s.logger.Error("failed to create legislator", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("legislator created", slog.Int64("legislator_id", created.ID))
	return created, nil
}

func (s *RosterService) UpdateLegislator(ctx context.Context, id int64, l *models.Legislator) (*models.Legislator, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.legislators.Update(ctx, id, l)
	if err != nil {
		return nil, s.mapError(err, "legislator", id)
	}

	s.logger.Info("legislator updated", slog.Int64("legislator_id", id))
	return updated, nil
}

// DeleteLegislator leaves any linked account and recorded attendance in place
func (s *RosterService) DeleteLegislator(ctx context.Context, id int64) error {
	if err := s.legislators.Delete(ctx, id); err != nil {
		return s.mapError(err, "legislator", id)
	}
	s.logger.Info("legislator deleted", slog.Int64("legislator_id", id))
	return nil
}

func (s *RosterService) ListParties(ctx context.Context) ([]*models.Party, error) {
	parties, err := s.parties.List(ctx)
	if err != nil {
		s.logger.Error("failed to list parties", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return parties, nil
}

func (s *RosterService) GetParty(ctx context.Context, id int64) (*models.Party, error) {
	p, err := s.parties.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "party", id)
	}
	return p, nil
}

// PartyMembers lists the legislators naming the party
func (s *RosterService) PartyMembers(ctx context.Context, id int64) ([]*models.Legislator, error) {
	party, err := s.GetParty(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.FilterByPartyName(ctx, party.Name)
}

func (s *RosterService) CreateParty(ctx context.Context, p *models.Party) (*models.Party, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.parties.Create(ctx, p)
	if err != nil {
		s.logger.Error("failed to create party", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("party created", slog.Int64("party_id", created.ID))
	return created, nil
}

func (s *RosterService) UpdateParty(ctx context.Context, id int64, p *models.Party) (*models.Party, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.parties.Update(ctx, id, p)
	if err != nil {
		return nil, s.mapError(err, "party", id)
	}

	s.logger.Info("party updated", slog.Int64("party_id", id))
	return updated, nil
}

// DeleteParty does not touch legislators that still name the party
func (s *RosterService) DeleteParty(ctx context.Context, id int64) error {
	if err := s.parties.Delete(ctx, id); err != nil {
		return s.mapError(err, "party", id)
	}
	s.logger.Info("party deleted", slog.Int64("party_id", id))
	return nil
}

func (s *RosterService) mapError(err error, entity string, id int64) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.NewNotFound(entity, id)
	}
	s.logger.Error("roster store failure", slog.String("entity", entity), slog.Int64("id", id), slog.Any("error", err))
	return models.ErrInternalServer
}
