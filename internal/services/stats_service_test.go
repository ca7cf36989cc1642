package services

import (
	"context"
	"errors"
	"testing"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSessions records the demo sitting history against a seeded roster
func seedSessions(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	sessions := NewSessionService(store.Sessions, store.Legislators, discardLogger())

	attendance := map[string][]int64{
		"Plenary 234":   {1, 2, 3, 5},
		"Committee 12":  {1, 2, 3},
		"Working group": {2, 4},
	}
	for _, s := range []*models.Session{
		scheduled("Plenary 234", "2025-01-25", "10:00", models.SessionKindPlenary),
		scheduled("Committee 12", "2025-01-24", "14:00", models.SessionKindCommittee),
		scheduled("Working group", "2025-01-23", "11:00", models.SessionKindWorkingGroup),
		scheduled("Plenary 235", "2025-01-28", "", models.SessionKindPlenary),
	} {
		created, err := sessions.CreateSession(ctx, s)
		require.NoError(t, err)
		if ids, ok := attendance[created.Title]; ok {
			_, err := sessions.RecordAttendance(ctx, created.ID, ids)
			require.NoError(t, err)
		}
	}
}

func TestStatsService_Summary(t *testing.T) {
	store := seedRoster(t)
	seedSessions(t, store)
	svc := NewStatsService(store.Legislators, store.Parties, store.Sessions, discardLogger())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 89.0, summary.OverallAverageAttendance)
	assert.Equal(t, 4, summary.ActiveLegislators)
	assert.Equal(t, 3, summary.CompletedSessions)
	assert.Equal(t, 1, summary.ScheduledSessions)
	assert.Equal(t, 60, summary.AverageSessionAttendance)
}

func TestStatsService_LegislatorAttendance(t *testing.T) {
	store := seedRoster(t)
	seedSessions(t, store)
	svc := NewStatsService(store.Legislators, store.Parties, store.Sessions, discardLogger())
	ctx := context.Background()

	record, err := svc.LegislatorAttendance(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, record.Attended)
	assert.Equal(t, 3, record.Completed)
	assert.Equal(t, 33, record.Percent)

	_, err = svc.LegislatorAttendance(ctx, 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStatsService_SnapshotFailure(t *testing.T) {
	store := memory.NewStore()
	legislators := &MockLegislatorRepository{
		ListFunc: func(ctx context.Context) ([]*models.Legislator, error) {
			return nil, errors.New("boom")
		},
	}
	svc := NewStatsService(legislators, store.Parties, store.Sessions, discardLogger())

	_, err := svc.Summary(context.Background())
	assert.ErrorIs(t, err, models.ErrInternalServer)
}

func TestProfileService_Me(t *testing.T) {
	store := seedRoster(t)
	seedSessions(t, store)
	statsSvc := NewStatsService(store.Legislators, store.Parties, store.Sessions, discardLogger())
	svc := NewProfileService(store.Legislators, statsSvc, discardLogger())
	ctx := context.Background()

	admin, err := svc.Me(ctx, models.SessionDescriptor{LoginName: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Nil(t, admin.Legislator)
	assert.Nil(t, admin.Attendance)

	deputy, err := svc.Me(ctx, models.SessionDescriptor{LoginName: "deputy2", Role: models.RoleLegislator, LegislatorID: int64Ptr(2)})
	require.NoError(t, err)
	require.NotNil(t, deputy.Legislator)
	assert.Equal(t, "Petrov Petr Petrovich", deputy.Legislator.Name)
	require.NotNil(t, deputy.Attendance)
	assert.Equal(t, 3, deputy.Attendance.Attended)
	assert.Equal(t, 100, deputy.Attendance.Percent)

	require.NoError(t, store.Legislators.Delete(ctx, 2))
	orphan, err := svc.Me(ctx, models.SessionDescriptor{LoginName: "deputy2", Role: models.RoleLegislator, LegislatorID: int64Ptr(2)})
	require.NoError(t, err)
	assert.Nil(t, orphan.Legislator)
}
