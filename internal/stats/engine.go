// Package stats derives attendance figures from a point-in-time copy of the roster and session log.
//
// Three attendance numbers live side by side and are never reconciled:
// the session-derived rate per legislator, the stored attendance_percent field
// on each legislator (averaged per party and overall), and the percent recorded
// on each completed session.
package stats

import (
	"math"
	"slices"

	"github.com/BradenHooton/parliament/internal/models"
)

// ActiveThreshold is the stored attendance above which a legislator counts as active
const ActiveThreshold = 80

// Snapshot is an immutable copy of the roster and session log
type Snapshot struct {
	legislators []*models.Legislator
	parties     []*models.Party
	sessions    []*models.Session
}

// NewSnapshot deep-copies its inputs so later store writes cannot leak in
func NewSnapshot(legislators []*models.Legislator, parties []*models.Party, sessions []*models.Session) *Snapshot {
	s := &Snapshot{
		legislators: make([]*models.Legislator, 0, len(legislators)),
		parties:     make([]*models.Party, 0, len(parties)),
		sessions:    make([]*models.Session, 0, len(sessions)),
	}
	for _, l := range legislators {
		s.legislators = append(s.legislators, l.Clone())
	}
	for _, p := range parties {
		s.parties = append(s.parties, p.Clone())
	}
	for _, ss := range sessions {
		s.sessions = append(s.sessions, ss.Clone())
	}
	return s
}

// AttendanceRecord is a legislator's session-derived attendance
type AttendanceRecord struct {
	LegislatorID int64  `json:"legislator_id"`
	Name         string `json:"name,omitempty"`
	Attended     int    `json:"attended"`
	Completed    int    `json:"completed"`
	Percent      int    `json:"percent"`
}

// LegislatorAttendance counts completed sessions whose attendee set contains the legislator.
// The legislator does not have to exist in the roster.
func (s *Snapshot) LegislatorAttendance(legislatorID int64) AttendanceRecord {
	rec := AttendanceRecord{LegislatorID: legislatorID}
	for _, session := range s.sessions {
		if !session.IsCompleted() {
			continue
		}
		rec.Completed++
		if session.Attended(legislatorID) {
			rec.Attended++
		}
	}
	if rec.Completed > 0 {
		rec.Percent = roundInt(100 * float64(rec.Attended) / float64(rec.Completed))
	}
	return rec
}

// LegislatorAttendanceRate is attended/completed in [0,1], exactly 0 with no completed sessions
func (s *Snapshot) LegislatorAttendanceRate(legislatorID int64) float64 {
	rec := s.LegislatorAttendance(legislatorID)
	if rec.Completed == 0 {
		return 0
	}
	return float64(rec.Attended) / float64(rec.Completed)
}

// PartyAverageAttendance is the rounded mean stored attendance of the party's members, 0 with no members
func (s *Snapshot) PartyAverageAttendance(partyName string) int {
	sum, n := 0, 0
	for _, l := range s.legislators {
		if l.InParty(partyName) {
			sum += l.AttendancePercent
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return roundInt(float64(sum) / float64(n))
}

// OverallAverageAttendance is the mean stored attendance of all legislators to one decimal, 0 when empty
func (s *Snapshot) OverallAverageAttendance() float64 {
	if len(s.legislators) == 0 {
		return 0
	}
	sum := 0
	for _, l := range s.legislators {
		sum += l.AttendancePercent
	}
	return math.Round(float64(sum)/float64(len(s.legislators))*10) / 10
}

// ActiveLegislators counts legislators whose stored attendance exceeds ActiveThreshold
func (s *Snapshot) ActiveLegislators() int {
	n := 0
	for _, l := range s.legislators {
		if l.AttendancePercent > ActiveThreshold {
			n++
		}
	}
	return n
}

// AverageSessionAttendance is the rounded mean recorded percent of completed sessions.
// Sessions recorded at 0 percent are left out of the mean.
func (s *Snapshot) AverageSessionAttendance() int {
	sum, n := 0, 0
	for _, session := range s.sessions {
		if session.IsCompleted() && session.AttendancePercent > 0 {
			sum += session.AttendancePercent
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return roundInt(float64(sum) / float64(n))
}

func (s *Snapshot) countSessions(status string) int {
	n := 0
	for _, session := range s.sessions {
		if session.Status == status {
			n++
		}
	}
	return n
}

type PartyStat struct {
	PartyID           int64  `json:"party_id"`
	Name              string `json:"name"`
	Color             string `json:"color"`
	MemberCount       int    `json:"member_count"`
	AverageAttendance int    `json:"average_attendance"`
}

// Summary is the full statistics view
type Summary struct {
	TotalLegislators         int                `json:"total_legislators"`
	TotalParties             int                `json:"total_parties"`
	TotalSessions            int                `json:"total_sessions"`
	ActiveLegislators        int                `json:"active_legislators"`
	CompletedSessions        int                `json:"completed_sessions"`
	ScheduledSessions        int                `json:"scheduled_sessions"`
	CancelledSessions        int                `json:"cancelled_sessions"`
	AverageSessionAttendance int                `json:"average_session_attendance"`
	OverallAverageAttendance float64            `json:"overall_average_attendance"`
	Parties                  []PartyStat        `json:"parties"`
	Legislators              []AttendanceRecord `json:"legislators"`
}

func (s *Snapshot) Summary() Summary {
	out := Summary{
		TotalLegislators:         len(s.legislators),
		TotalParties:             len(s.parties),
		TotalSessions:            len(s.sessions),
		ActiveLegislators:        s.ActiveLegislators(),
		CompletedSessions:        s.countSessions(models.SessionStatusCompleted),
		ScheduledSessions:        s.countSessions(models.SessionStatusScheduled),
		CancelledSessions:        s.countSessions(models.SessionStatusCancelled),
		AverageSessionAttendance: s.AverageSessionAttendance(),
		OverallAverageAttendance: s.OverallAverageAttendance(),
		Parties:                  make([]PartyStat, 0, len(s.parties)),
		Legislators:              make([]AttendanceRecord, 0, len(s.legislators)),
	}

	for _, p := range s.parties {
		out.Parties = append(out.Parties, PartyStat{
			PartyID:           p.ID,
			Name:              p.Name,
			Color:             p.Color,
			MemberCount:       s.memberCount(p.Name),
			AverageAttendance: s.PartyAverageAttendance(p.Name),
		})
	}

	for _, l := range s.legislators {
		rec := s.LegislatorAttendance(l.ID)
		rec.Name = l.Name
		out.Legislators = append(out.Legislators, rec)
	}
	slices.SortStableFunc(out.Legislators, func(a, b AttendanceRecord) int {
		return b.Percent - a.Percent
	})

	return out
}

func (s *Snapshot) memberCount(partyName string) int {
	n := 0
	for _, l := range s.legislators {
		if l.InParty(partyName) {
			n++
		}
	}
	return n
}

// SessionAttendancePercent is round(100*attendees/rosterSize), 0 for an empty roster
func SessionAttendancePercent(attendees, rosterSize int) int {
	if rosterSize <= 0 {
		return 0
	}
	return roundInt(100 * float64(attendees) / float64(rosterSize))
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
