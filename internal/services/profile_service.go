package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/stats"
)

// Profile is the caller's own view. Legislator and Attendance are nil for the admin
// and for a legislator whose roster entry has since been deleted.
type Profile struct {
	Session    models.SessionDescriptor `json:"session"`
	Legislator *models.Legislator       `json:"legislator,omitempty"`
	Attendance *stats.AttendanceRecord  `json:"attendance,omitempty"`
}

type ProfileService struct {
	legislators LegislatorRepository
	stats       *StatsService
	logger      *slog.Logger
}

func NewProfileService(legislators LegislatorRepository, statsService *StatsService, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		legislators: legislators,
		stats:       statsService,
		logger:      logger,
	}
}

func (s *ProfileService) Me(ctx context.Context, desc models.SessionDescriptor) (*Profile, error) {
	profile := &Profile{Session: desc}
	if desc.LegislatorID == nil {
		return profile, nil
	}

	legislator, err := s.legislators.GetByID(ctx, *desc.LegislatorID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return profile, nil
		}
		s.logger.Error("failed to load own legislator", slog.Int64("legislator_id", *desc.LegislatorID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	profile.Legislator = legislator

	snap, err := s.stats.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	record := snap.LegislatorAttendance(legislator.ID)
	record.Name = legislator.Name
	profile.Attendance = &record
	return profile, nil
}
