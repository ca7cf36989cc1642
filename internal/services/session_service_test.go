package services

import (
	"context"
	"testing"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(t *testing.T) (*SessionService, *memory.Store) {
	t.Helper()
	store := seedRoster(t)
	return NewSessionService(store.Sessions, store.Legislators, discardLogger()), store
}

func scheduled(title, date, tm, kind string) *models.Session {
	return &models.Session{Title: title, Date: date, Time: tm, Kind: kind, DurationMinutes: 120}
}

func TestSessionService_CreateSession_StartsScheduled(t *testing.T) {
	svc, _ := newTestSessionService(t)

	in := scheduled("Plenary", "2025-01-28", "", models.SessionKindPlenary)
	in.Status = models.SessionStatusCompleted
	in.AttendeeIDs = []int64{1, 2}
	in.AttendancePercent = 90

	created, err := svc.CreateSession(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusScheduled, created.Status)
	assert.Empty(t, created.AttendeeIDs)
	assert.Equal(t, 0, created.AttendancePercent)
}

func TestSessionService_RecordAttendance(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, scheduled("Working group", "2025-01-23", "11:00", models.SessionKindWorkingGroup))
	require.NoError(t, err)

	recorded, err := svc.RecordAttendance(ctx, created.ID, []int64{4, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, recorded.AttendeeIDs)
	assert.Equal(t, 40, recorded.AttendancePercent)
	assert.Equal(t, models.SessionStatusCompleted, recorded.Status)

	again, err := svc.RecordAttendance(ctx, created.ID, []int64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, again.AttendeeIDs)
	assert.Equal(t, 80, again.AttendancePercent)
	assert.Equal(t, models.SessionStatusCompleted, again.Status)
}

func TestSessionService_RecordAttendance_UnknownLegislator(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, scheduled("Committee", "2025-01-24", "14:00", models.SessionKindCommittee))
	require.NoError(t, err)

	_, err = svc.RecordAttendance(ctx, created.ID, []int64{1, 77})
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "attendee_ids", ve.Field)

	unchanged, err := svc.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusScheduled, unchanged.Status)

	_, err = svc.RecordAttendance(ctx, 999, []int64{1})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSessionService_RecordAttendance_EmptyRoster(t *testing.T) {
	store := memory.NewStore()
	svc := NewSessionService(store.Sessions, store.Legislators, discardLogger())
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, scheduled("Plenary", "2025-01-28", "", models.SessionKindPlenary))
	require.NoError(t, err)

	recorded, err := svc.RecordAttendance(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, recorded.AttendancePercent)
	assert.Equal(t, models.SessionStatusCompleted, recorded.Status)
}

func TestSessionService_RecordAttendance_CancelledStaysCancelled(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, scheduled("Plenary", "2025-01-28", "", models.SessionKindPlenary))
	require.NoError(t, err)

	changes := created.Clone()
	changes.Status = models.SessionStatusCancelled
	_, err = svc.UpdateSession(ctx, created.ID, changes)
	require.NoError(t, err)

	recorded, err := svc.RecordAttendance(ctx, created.ID, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCancelled, recorded.Status)
	assert.Equal(t, 20, recorded.AttendancePercent)
}

func TestSessionService_DeletedLegislatorStaysInAttendees(t *testing.T) {
	svc, store := newTestSessionService(t)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, scheduled("Plenary", "2025-01-25", "10:00", models.SessionKindPlenary))
	require.NoError(t, err)
	_, err = svc.RecordAttendance(ctx, created.ID, []int64{1, 2, 3, 5})
	require.NoError(t, err)

	require.NoError(t, store.Legislators.Delete(ctx, 5))

	got, err := svc.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 5}, got.AttendeeIDs)
	assert.Equal(t, 80, got.AttendancePercent)
}

func TestSessionService_UpdateSession_StatusRules(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, scheduled("Plenary", "2025-01-28", "", models.SessionKindPlenary))
	require.NoError(t, err)

	toCompleted := created.Clone()
	toCompleted.Status = models.SessionStatusCompleted
	_, err = svc.UpdateSession(ctx, created.ID, toCompleted)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)

	_, err = svc.RecordAttendance(ctx, created.ID, []int64{1, 2})
	require.NoError(t, err)

	edit := created.Clone()
	edit.Title = "Plenary 235"
	edit.Status = ""
	edit.AttendeeIDs = []int64{3}
	edit.AttendancePercent = 5
	updated, err := svc.UpdateSession(ctx, created.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "Plenary 235", updated.Title)
	assert.Equal(t, []int64{1, 2}, updated.AttendeeIDs, "attendees only change through RecordAttendance")
	assert.Equal(t, 40, updated.AttendancePercent)
	assert.Equal(t, models.SessionStatusCompleted, updated.Status)

	reopen := updated.Clone()
	reopen.Status = models.SessionStatusScheduled
	_, err = svc.UpdateSession(ctx, created.ID, reopen)
	require.ErrorAs(t, err, &ve)
}

func TestSessionService_ListSessions_FilterAndOrder(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	for _, s := range []*models.Session{
		scheduled("Plenary 4", "2025-01-28", "", models.SessionKindPlenary),
		scheduled("Committee 2", "2025-01-24", "14:00", models.SessionKindCommittee),
		scheduled("Plenary 1", "2025-01-25", "10:00", models.SessionKindPlenary),
		scheduled("Committee 5", "2025-01-29", "15:00", models.SessionKindCommittee),
	} {
		_, err := svc.CreateSession(ctx, s)
		require.NoError(t, err)
	}
	_, err := svc.RecordAttendance(ctx, 3, []int64{1})
	require.NoError(t, err)

	all, err := svc.ListSessions(ctx, SessionFilter{})
	require.NoError(t, err)
	titles := make([]string, 0, len(all))
	for _, s := range all {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Committee 2", "Plenary 1", "Plenary 4", "Committee 5"}, titles)

	committees, err := svc.ListSessions(ctx, SessionFilter{Kind: models.SessionKindCommittee})
	require.NoError(t, err)
	assert.Len(t, committees, 2)

	completed, err := svc.ListSessions(ctx, SessionFilter{Status: models.SessionStatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Plenary 1", completed[0].Title)
}

func TestSessionService_DeleteSession(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, scheduled("Plenary", "2025-01-28", "", models.SessionKindPlenary))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteSession(ctx, created.ID), models.ErrNotFound)
}
