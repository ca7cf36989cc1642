package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/stats"
)

// SessionFilter narrows a session listing. Empty fields match everything.
type SessionFilter struct {
	Kind   string
	Status string
}

// SessionService owns the session log and records attendance
type SessionService struct {
	sessions    SessionRepository
	legislators LegislatorRepository
	logger      *slog.Logger
}

func NewSessionService(sessions SessionRepository, legislators LegislatorRepository, logger *slog.Logger) *SessionService {
	return &SessionService{
		sessions:    sessions,
		legislators: legislators,
		logger:      logger,
	}
}

// ListSessions returns sessions ordered by date and time
func (s *SessionService) ListSessions(ctx context.Context, filter SessionFilter) ([]*models.Session, error) {
	all, err := s.sessions.List(ctx)
	if err != nil {
		s.logger.Error("failed to list sessions", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	kind := strings.TrimSpace(filter.Kind)
	status := strings.TrimSpace(filter.Status)

	out := make([]*models.Session, 0, len(all))
	for _, session := range all {
		if kind != "" && session.Kind != kind {
			continue
		}
		if status != "" && session.Status != status {
			continue
		}
		out = append(out, session)
	}

	slices.SortStableFunc(out, func(a, b *models.Session) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		if c := strings.Compare(a.Time, b.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *SessionService) GetSession(ctx context.Context, id int64) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id)
	}
	return session, nil
}

// CreateSession always starts a session as scheduled with nobody recorded
func (s *SessionService) CreateSession(ctx context.Context, session *models.Session) (*models.Session, error) {
	session.Status = models.SessionStatusScheduled
	session.AttendeeIDs = []int64{}
	session.AttendancePercent = 0
	if err := session.Validate(); err != nil {
		return nil, err
	}

	created, err := s.sessions.Create(ctx, session)
	if err != nil {
		s.logger.Error("failed to create session", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("session created", slog.Int64("session_id", created.ID))
	return created, nil
}

// UpdateSession edits descriptive fields. Attendance only changes through RecordAttendance,
// and a session only becomes completed that way.
func (s *SessionService) UpdateSession(ctx context.Context, id int64, changes *models.Session) (*models.Session, error) {
	existing, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	next := existing.Clone()
	next.Title = changes.Title
	next.Date = changes.Date
	next.Time = changes.Time
	next.Kind = changes.Kind
	next.Agenda = changes.Agenda
	next.DurationMinutes = changes.DurationMinutes
	if changes.Status != "" && changes.Status != existing.Status {
		if changes.Status == models.SessionStatusCompleted || existing.IsCompleted() {
			return nil, &models.ValidationError{Field: "status", Reason: "a session is completed only by recording attendance"}
		}
		next.Status = changes.Status
	}

	if err := next.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.sessions.Update(ctx, id, next)
	if err != nil {
		return nil, s.mapError(err, id)
	}

	s.logger.Info("session updated", slog.Int64("session_id", id))
	return updated, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, id int64) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return s.mapError(err, id)
	}
	s.logger.Info("session deleted", slog.Int64("session_id", id))
	return nil
}

// RecordAttendance replaces the attendee set and stores the percentage of the current roster
// that attended. A scheduled session becomes completed; re-recording overwrites.
func (s *SessionService) RecordAttendance(ctx context.Context, id int64, attendeeIDs []int64) (*models.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	roster, err := s.legislators.List(ctx)
	if err != nil {
		s.logger.Error("failed to list legislators", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	known := make(map[int64]bool, len(roster))
	for _, l := range roster {
		known[l.ID] = true
	}

	attendees := make([]int64, 0, len(attendeeIDs))
	seen := make(map[int64]bool, len(attendeeIDs))
	for _, legislatorID := range attendeeIDs {
		if !known[legislatorID] {
			return nil, &models.ValidationError{Field: "attendee_ids", Reason: fmt.Sprintf("unknown legislator id %d", legislatorID)}
		}
		if !seen[legislatorID] {
			seen[legislatorID] = true
			attendees = append(attendees, legislatorID)
		}
	}
	slices.Sort(attendees)

	session.AttendeeIDs = attendees
	session.AttendancePercent = stats.SessionAttendancePercent(len(attendees), len(roster))
	if session.Status == models.SessionStatusScheduled {
		session.Status = models.SessionStatusCompleted
	}

	updated, err := s.sessions.Update(ctx, id, session)
	if err != nil {
		return nil, s.mapError(err, id)
	}

	s.logger.Info("attendance recorded",
		slog.Int64("session_id", id),
		slog.Int("attendees", len(attendees)),
		slog.Int("roster_size", len(roster)),
		slog.Int("attendance_percent", updated.AttendancePercent))
	return updated, nil
}

func (s *SessionService) mapError(err error, id int64) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.NewNotFound("session", id)
	}
	s.logger.Error("session store failure", slog.Int64("session_id", id), slog.Any("error", err))
	return models.ErrInternalServer
}
