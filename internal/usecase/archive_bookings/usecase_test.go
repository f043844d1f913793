package archive_bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/inmemory"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/users"
	"github.com/m04kA/SMC-DutyRosterService/pkg/logger"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type partialArchiver struct {
	cutoff time.Time
}

func (a *partialArchiver) MoveToArchive(ctx context.Context, olderThan time.Time) (int, error) {
	a.cutoff = olderThan
	return 2, errors.New("archive insert failed")
}

func newRules(t *testing.T) *calendar.Rules {
	t.Helper()
	rules, err := calendar.NewRules(calendar.Config{})
	require.NoError(t, err)
	return rules
}

func newAdmins(t *testing.T) *users.Service {
	t.Helper()
	store := inmemory.NewUserStore()
	for _, u := range []*domain.User{
		{Email: "admin@example.org", Role: domain.RoleAdmin, Active: true},
		{Email: "anna@example.org", Role: domain.RoleUser, Active: true},
	} {
		_, err := store.Create(context.Background(), u)
		require.NoError(t, err)
	}
	return users.NewService(store, logger.Nop())
}

func TestRun_MovesOnlyOlderThanRetention(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewBookingStore()
	for _, d := range []time.Time{
		time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC),
	} {
		_, err := store.InsertConfirmed(ctx, &domain.Booking{
			SlotDate:  d,
			SlotTime:  types.MustParseTimeRange("17:00-20:00"),
			UserEmail: "anna@example.org",
		})
		require.NoError(t, err)
	}

	uc := NewUseCase(store, newAdmins(t), newRules(t), 360, nil, logger.Nop())
	uc.timeProvider = fixedTime{now: time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)}

	resp, err := uc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-11-15", resp.Cutoff.Format(domain.DateFormat))
	assert.Equal(t, 2, resp.Moved)
	assert.Len(t, store.Archived(), 2)

	active, err := store.FindAll(ctx, domain.BookingsFilter{})
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestRun_PartialFailureReportsCount(t *testing.T) {
	archiver := &partialArchiver{}
	uc := NewUseCase(archiver, newAdmins(t), newRules(t), 30, nil, logger.Nop())
	uc.timeProvider = fixedTime{now: time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)}

	resp, err := uc.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	require.NotNil(t, resp)
	assert.Equal(t, 2, resp.Moved)
	assert.Equal(t, "2025-03-01", archiver.cutoff.Format(domain.DateFormat))
}

func TestExecute_AdminOnly(t *testing.T) {
	uc := NewUseCase(inmemory.NewBookingStore(), newAdmins(t), newRules(t), 360, nil, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{ActorEmail: "anna@example.org"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	resp, err := uc.Execute(context.Background(), &Request{ActorEmail: "admin@example.org"})
	require.NoError(t, err)
	assert.Zero(t, resp.Moved)
}
