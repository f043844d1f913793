package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/inmemory"
	"github.com/m04kA/SMC-DutyRosterService/internal/schedule"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/users"
	"github.com/m04kA/SMC-DutyRosterService/pkg/logger"
	"github.com/m04kA/SMC-DutyRosterService/pkg/txmanager"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

const (
	adminEmail = "admin@example.org"
	annaEmail  = "anna@example.org"
	bobEmail   = "bob@example.org"
)

var tuesdayEvening = types.MustParseTimeRange("17:00-20:00")

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeNotifier struct {
	mu        sync.Mutex
	created   []*domain.Booking
	cancelled []*domain.Booking
	err       error
}

func (n *fakeNotifier) BookingCreated(ctx context.Context, b *domain.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, b)
	return n.err
}

func (n *fakeNotifier) BookingCancelled(ctx context.Context, b *domain.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, b)
	return n.err
}

// failingInsertStore отказывает во вставке после отмены
type failingInsertStore struct {
	*inmemory.BookingStore
}

func (s failingInsertStore) InsertConfirmed(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	return nil, errors.New("connection reset")
}

type atomicTx struct{}

func (atomicTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
func (atomicTx) IsAtomic() bool                                                 { return true }

type fixture struct {
	uc       *UseCase
	store    *inmemory.BookingStore
	users    *inmemory.UserStore
	notifier *fakeNotifier
}

func newFixture(t *testing.T, template *schedule.Template) *fixture {
	t.Helper()
	ctx := context.Background()

	userStore := inmemory.NewUserStore()
	for _, u := range []*domain.User{
		{Email: adminEmail, Name: "Admin", Role: domain.RoleAdmin, Active: true},
		{Email: annaEmail, Name: "Anna", Role: domain.RoleUser, Active: true},
		{Email: bobEmail, Name: "Bob", Role: domain.RoleUser, Active: true},
		{Email: "gone@example.org", Name: "Gone", Role: domain.RoleUser, Active: false},
	} {
		_, err := userStore.Create(ctx, u)
		require.NoError(t, err)
	}
	for i := 0; i < 20; i++ {
		_, err := userStore.Create(ctx, &domain.User{
			Email: fmt.Sprintf("member%d@example.org", i), Name: fmt.Sprintf("Member %d", i),
			Role: domain.RoleUser, Active: true,
		})
		require.NoError(t, err)
	}

	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	rules, err := calendar.NewRules(calendar.Config{
		Holidays:          map[string][]string{"2025": {"2025-12-26"}},
		BlackoutFromMonth: time.June,
		BlackoutToMonth:   time.September,
		Location:          berlin,
	})
	require.NoError(t, err)

	store := inmemory.NewBookingStore()
	notifier := &fakeNotifier{}
	uc := NewUseCase(store, userStore, users.NewService(userStore, logger.Nop()), rules, template, notifier,
		txmanager.NewPassthrough(), nil, logger.Nop())
	uc.timeProvider = fixedTime{now: time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, store: store, users: userStore, notifier: notifier}
}

func tuesdayOnly(t *testing.T) *schedule.Template {
	t.Helper()
	tpl, err := schedule.New([]domain.SlotDefinition{
		{Weekday: "tuesday", StartTime: "17:00", EndTime: "20:00"},
	})
	require.NoError(t, err)
	return tpl
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestExecute_BookTakenCancelRebook(t *testing.T) {
	f := newFixture(t, tuesdayOnly(t))
	ctx := context.Background()
	date := day(t, "2025-11-04")

	resp, err := f.uc.Execute(ctx, &Request{ActorEmail: annaEmail, SlotDate: date, SlotTime: tuesdayEvening})
	require.NoError(t, err)
	assert.Equal(t, annaEmail, resp.Booking.UserEmail)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	assert.Empty(t, resp.NotificationWarning)
	assert.Len(t, f.notifier.created, 1)

	_, err = f.uc.Execute(ctx, &Request{ActorEmail: bobEmail, SlotDate: date, SlotTime: tuesdayEvening})
	var taken *domain.SlotTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, "Anna", taken.HolderName)

	changed, err := f.store.MarkCancelled(ctx, resp.Booking.ID, annaEmail, time.Now())
	require.NoError(t, err)
	require.True(t, changed)

	again, err := f.uc.Execute(ctx, &Request{ActorEmail: bobEmail, SlotDate: date, SlotTime: tuesdayEvening})
	require.NoError(t, err)
	assert.Equal(t, bobEmail, again.Booking.UserEmail)
}

func TestExecute_ConcurrentSingleWinner(t *testing.T) {
	f := newFixture(t, tuesdayOnly(t))
	date := day(t, "2025-11-04")

	const n = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		taken   int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), &Request{
				ActorEmail: fmt.Sprintf("member%d@example.org", i),
				SlotDate:   date,
				SlotTime:   tuesdayEvening,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, domain.ErrSlotTaken):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, n-1, taken)

	confirmed, err := f.store.FindConfirmedInRange(context.Background(), date, date)
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)
}

func TestExecute_BlockedDates(t *testing.T) {
	f := newFixture(t, schedule.Default())
	ctx := context.Background()

	tests := []struct {
		name   string
		date   string
		slot   string
		reason domain.BlockReason
	}{
		{name: "seasonal blackout tuesday", date: "2025-06-03", slot: "17:00-20:00", reason: domain.BlockReasonSeasonalBlackout},
		{name: "blackout with foreign time range", date: "2025-07-15", slot: "08:00-09:00", reason: domain.BlockReasonSeasonalBlackout},
		{name: "holiday friday", date: "2025-12-26", slot: "17:00-20:00", reason: domain.BlockReasonHoliday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, &Request{
				ActorEmail: adminEmail,
				SlotDate:   day(t, tt.date),
				SlotTime:   types.MustParseTimeRange(tt.slot),
				Override:   true,
			})
			var blocked *domain.SlotBlockedError
			require.ErrorAs(t, err, &blocked)
			assert.Equal(t, tt.reason, blocked.Reason)
		})
	}
	assert.Empty(t, f.notifier.created)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t, schedule.Default())
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{ActorEmail: annaEmail, SlotTime: tuesdayEvening})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// среда не входит в шаблон
	_, err = f.uc.Execute(ctx, &Request{ActorEmail: annaEmail, SlotDate: day(t, "2025-11-05"), SlotTime: tuesdayEvening})
	assert.ErrorIs(t, err, ErrSlotNotInTemplate)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(ctx, &Request{ActorEmail: "gone@example.org", SlotDate: day(t, "2025-11-04"), SlotTime: tuesdayEvening})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestExecute_BookForOtherUser(t *testing.T) {
	f := newFixture(t, schedule.Default())
	ctx := context.Background()
	date := day(t, "2025-11-04")

	_, err := f.uc.Execute(ctx, &Request{ActorEmail: annaEmail, UserEmail: bobEmail, SlotDate: date, SlotTime: tuesdayEvening})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.uc.Execute(ctx, &Request{ActorEmail: adminEmail, UserEmail: "gone@example.org", SlotDate: date, SlotTime: tuesdayEvening})
	assert.ErrorIs(t, err, ErrInvalidUser)

	resp, err := f.uc.Execute(ctx, &Request{ActorEmail: adminEmail, UserEmail: "Bob@Example.org", SlotDate: date, SlotTime: tuesdayEvening})
	require.NoError(t, err)
	assert.Equal(t, bobEmail, resp.Booking.UserEmail)
	assert.Equal(t, "Bob", resp.Booking.UserName)
}

func TestExecute_AdminOverride(t *testing.T) {
	f := newFixture(t, schedule.Default())
	ctx := context.Background()
	date := day(t, "2025-11-04")

	first, err := f.uc.Execute(ctx, &Request{ActorEmail: annaEmail, SlotDate: date, SlotTime: tuesdayEvening})
	require.NoError(t, err)

	// без override администратор тоже получает SlotTakenError
	_, err = f.uc.Execute(ctx, &Request{ActorEmail: adminEmail, UserEmail: bobEmail, SlotDate: date, SlotTime: tuesdayEvening})
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	// override обычного пользователя игнорируется
	_, err = f.uc.Execute(ctx, &Request{ActorEmail: bobEmail, SlotDate: date, SlotTime: tuesdayEvening, Override: true})
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	resp, err := f.uc.Execute(ctx, &Request{
		ActorEmail: adminEmail, UserEmail: bobEmail, SlotDate: date, SlotTime: tuesdayEvening, Override: true,
	})
	require.NoError(t, err)
	assert.Equal(t, bobEmail, resp.Booking.UserEmail)
	require.NotNil(t, resp.Replaced)
	assert.Equal(t, first.Booking.ID, resp.Replaced.ID)

	old, err := f.store.GetByID(ctx, first.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, old.Status)
	assert.Equal(t, adminEmail, *old.CancelledBy)

	confirmed, err := f.store.FindConfirmedInRange(ctx, date, date)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, bobEmail, confirmed[0].UserEmail)
	assert.Len(t, f.notifier.cancelled, 1)
}

func TestExecute_OverridePartialFailure(t *testing.T) {
	f := newFixture(t, schedule.Default())
	ctx := context.Background()
	date := day(t, "2025-11-04")

	first, err := f.uc.Execute(ctx, &Request{ActorEmail: annaEmail, SlotDate: date, SlotTime: tuesdayEvening})
	require.NoError(t, err)

	f.uc.bookingRepo = failingInsertStore{f.store}
	_, err = f.uc.Execute(ctx, &Request{
		ActorEmail: adminEmail, UserEmail: bobEmail, SlotDate: date, SlotTime: tuesdayEvening, Override: true,
	})
	var partial *domain.TransferPartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, first.Booking.ID, partial.OriginalBookingID)
	assert.NotErrorIs(t, err, domain.ErrSlotTaken)

	holder, err := f.store.FindConfirmed(ctx, date, tuesdayEvening)
	require.NoError(t, err)
	assert.Nil(t, holder)
}

func TestExecute_OverrideAtomicFailureIsInternal(t *testing.T) {
	f := newFixture(t, schedule.Default())
	ctx := context.Background()
	date := day(t, "2025-11-04")

	_, err := f.uc.Execute(ctx, &Request{ActorEmail: annaEmail, SlotDate: date, SlotTime: tuesdayEvening})
	require.NoError(t, err)

	f.uc.bookingRepo = failingInsertStore{f.store}
	f.uc.txManager = atomicTx{}
	_, err = f.uc.Execute(ctx, &Request{
		ActorEmail: adminEmail, UserEmail: bobEmail, SlotDate: date, SlotTime: tuesdayEvening, Override: true,
	})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrTransferPartialFailure)
}

func TestExecute_NotificationFailureIsWarning(t *testing.T) {
	f := newFixture(t, schedule.Default())
	f.notifier.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), &Request{
		ActorEmail: annaEmail, SlotDate: day(t, "2025-11-04"), SlotTime: tuesdayEvening,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Booking.ID)
	assert.Contains(t, resp.NotificationWarning, "broker down")
}
