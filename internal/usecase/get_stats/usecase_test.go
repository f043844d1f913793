package get_stats

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
	listFreeSlots "github.com/m04kA/SMC-DutyRosterService/internal/usecase/list_free_slots"
	"github.com/m04kA/SMC-DutyRosterService/pkg/logger"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

const adminEmail = "admin@example.org"

var now = time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeFreeSlots struct {
	req  *listFreeSlots.Request
	resp *listFreeSlots.Response
}

func (f *fakeFreeSlots) Execute(ctx context.Context, req *listFreeSlots.Request) (*listFreeSlots.Response, error) {
	f.req = req
	return f.resp, nil
}

type failingRepo struct{}

func (failingRepo) FindAll(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

type fixture struct {
	uc        *UseCase
	free      *fakeFreeSlots
	userStore *inmemory.UserStore
	store     *inmemory.BookingStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	userStore := inmemory.NewUserStore()
	for _, u := range []*domain.User{
		{Email: adminEmail, Role: domain.RoleAdmin, Active: true},
		{Email: "anna@example.org", Role: domain.RoleUser, Active: true},
		{Email: "gone@example.org", Role: domain.RoleUser, Active: false},
	} {
		_, err := userStore.Create(ctx, u)
		require.NoError(t, err)
	}

	rules, err := calendar.NewRules(calendar.Config{})
	require.NoError(t, err)

	free := &fakeFreeSlots{resp: &listFreeSlots.Response{Slots: make([]domain.ResolvedSlot, 5)}}
	store := inmemory.NewBookingStore()
	uc := NewUseCase(store, userStore, users.NewService(userStore, logger.Nop()), rules, free, logger.Nop())
	uc.timeProvider = fixedTime{now: now}

	return &fixture{uc: uc, free: free, userStore: userStore, store: store}
}

func (f *fixture) book(t *testing.T, d time.Time, slot string) *domain.Booking {
	t.Helper()
	b, err := f.store.InsertConfirmed(context.Background(), &domain.Booking{
		SlotDate:  d,
		SlotTime:  types.MustParseTimeRange(slot),
		UserEmail: "anna@example.org",
	})
	require.NoError(t, err)
	return b
}

func TestExecute_Counts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), "17:00-20:00")  // прошлое, текущий месяц
	f.book(t, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC), "17:00-20:00") // сегодня
	f.book(t, time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC), "10:00-13:00") // конец месяца
	f.book(t, time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC), "17:00-20:00")  // следующий месяц
	f.book(t, time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC), "17:00-20:00") // прошлый месяц
	cancelled := f.book(t, time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC), "17:00-20:00")
	_, err := f.store.MarkCancelled(ctx, cancelled.ID, adminEmail, now)
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, &Request{ActorEmail: adminEmail})
	require.NoError(t, err)
	assert.Equal(t, "2025-11-10", resp.Today.Format(domain.DateFormat))
	assert.Equal(t, 2, resp.ActiveUsers)
	assert.Equal(t, 3, resp.FutureBookings)
	assert.Equal(t, 3, resp.MonthBookings)
	assert.Equal(t, 5, resp.FreeSlots)
	assert.False(t, resp.Degraded)

	require.NotNil(t, f.free.req)
	assert.Equal(t, "2025-11-10", f.free.req.From.Format(domain.DateFormat))
	assert.Equal(t, FreeSlotDays, f.free.req.Days)
	assert.True(t, f.free.req.BestEffort)
}

func TestExecute_DegradedFreeSlots(t *testing.T) {
	f := newFixture(t)
	f.free.resp = &listFreeSlots.Response{Degraded: true}

	resp, err := f.uc.Execute(context.Background(), &Request{ActorEmail: adminEmail})
	require.NoError(t, err)
	assert.Zero(t, resp.FreeSlots)
	assert.True(t, resp.Degraded)
}

func TestExecute_AdminOnly(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ActorEmail: "anna@example.org"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.Nil(t, f.free.req)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.uc.bookingRepo = failingRepo{}

	_, err := f.uc.Execute(context.Background(), &Request{ActorEmail: adminEmail})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
