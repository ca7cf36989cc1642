package models

import (
	"slices"
	"strings"
	"time"
)

const (
	SessionKindPlenary      = "plenary"
	SessionKindCommittee    = "committee"
	SessionKindWorkingGroup = "working_group"

	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Session is a parliamentary sitting. AttendancePercent is computed when attendance is
// recorded and stored as-is afterwards.
type Session struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title" validate:"required,max=300"`
	Date              string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time              string    `json:"time" validate:"omitempty,datetime=15:04"`
	Kind              string    `json:"kind" validate:"required,oneof=plenary committee working_group"`
	Status            string    `json:"status" validate:"required,oneof=scheduled completed cancelled"`
	AttendeeIDs       []int64   `json:"attendee_ids"`
	AttendancePercent int       `json:"attendance_percent" validate:"gte=0,lte=100"`
	Agenda            []string  `json:"agenda"`
	DurationMinutes   int       `json:"duration_minutes" validate:"gte=0,lte=1440"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Validate trims text fields and checks the record
func (s *Session) Validate() error {
	s.Title = strings.TrimSpace(s.Title)
	s.Date = strings.TrimSpace(s.Date)
	s.Time = strings.TrimSpace(s.Time)
	if s.AttendeeIDs == nil {
		s.AttendeeIDs = []int64{}
	}
	if s.Agenda == nil {
		s.Agenda = []string{}
	}
	return validateRecord(s)
}

// Attended reports whether the legislator is in the attendee set
func (s *Session) Attended(legislatorID int64) bool {
	return slices.Contains(s.AttendeeIDs, legislatorID)
}

// IsCompleted reports whether attendance has been recorded
func (s *Session) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// Clone returns a deep copy
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.AttendeeIDs = slices.Clone(s.AttendeeIDs)
	c.Agenda = slices.Clone(s.Agenda)
	if c.AttendeeIDs == nil {
		c.AttendeeIDs = []int64{}
	}
	if c.Agenda == nil {
		c.Agenda = []string{}
	}
	return &c
}
