package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/stats"
	"golang.org/x/sync/errgroup"
)

// StatsService reads the roster and session log into a stats snapshot
type StatsService struct {
	legislators LegislatorRepository
	parties     PartyRepository
	sessions    SessionRepository
	logger      *slog.Logger
}

func NewStatsService(legislators LegislatorRepository, parties PartyRepository, sessions SessionRepository, logger *slog.Logger) *StatsService {
	return &StatsService{
		legislators: legislators,
		parties:     parties,
		sessions:    sessions,
		logger:      logger,
	}
}

// Snapshot loads the three collections concurrently
func (s *StatsService) Snapshot(ctx context.Context) (*stats.Snapshot, error) {
	var (
		legislators []*models.Legislator
		parties     []*models.Party
		sessions    []*models.Session
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		legislators, err = s.legislators.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		parties, err = s.parties.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		sessions, err = s.sessions.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load stats snapshot", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return stats.NewSnapshot(legislators, parties, sessions), nil
}

func (s *StatsService) Summary(ctx context.Context) (*stats.Summary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	summary := snap.Summary()
	return &summary, nil
}

// LegislatorAttendance reports attended over completed sessions for one legislator
func (s *StatsService) LegislatorAttendance(ctx context.Context, legislatorID int64) (*stats.AttendanceRecord, error) {
	if _, err := s.legislators.GetByID(ctx, legislatorID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFound("legislator", legislatorID)
		}
		s.logger.Error("failed to get legislator", slog.Int64("legislator_id", legislatorID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	record := snap.LegislatorAttendance(legislatorID)
	return &record, nil
}
