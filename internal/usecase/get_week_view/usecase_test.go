package get_week_view

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
	"github.com/m04kA/SMC-DutyRosterService/internal/schedule"
	"github.com/m04kA/SMC-DutyRosterService/pkg/logger"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

// countingRepo считает обращения к хранилищу
type countingRepo struct {
	BookingRepository
	calls int
	err   error
}

func (r *countingRepo) FindConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.BookingRepository.FindConfirmedInRange(ctx, from, to)
}

func newRules(t *testing.T) *calendar.Rules {
	t.Helper()
	rules, err := calendar.NewRules(calendar.Config{
		Holidays:          map[string][]string{"2025": {"2025-12-26"}},
		BlackoutFromMonth: time.June,
		BlackoutToMonth:   time.September,
	})
	require.NoError(t, err)
	return rules
}

func newTemplate(t *testing.T, defs ...domain.SlotDefinition) *schedule.Template {
	t.Helper()
	tpl, err := schedule.New(defs)
	require.NoError(t, err)
	return tpl
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestExecute_SeasonalBlackoutWeek(t *testing.T) {
	tpl := newTemplate(t, domain.SlotDefinition{Weekday: "tuesday", StartTime: "17:00", EndTime: "20:00"})
	uc := NewUseCase(inmemory.NewBookingStore(), newRules(t), tpl, logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{Date: date(t, "2025-06-03")})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", resp.WeekAnchor.Format(domain.DateFormat))
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, domain.AvailabilityBlocked, resp.Slots[0].Availability)
	assert.Equal(t, domain.BlockReasonSeasonalBlackout, resp.Slots[0].BlockReason)
	assert.Equal(t, "2025-06-03", resp.Slots[0].Slot.Date.Format(domain.DateFormat))
}

func TestExecute_AvailableThenBooked(t *testing.T) {
	store := inmemory.NewBookingStore()
	tpl := newTemplate(t, domain.SlotDefinition{Weekday: "tuesday", StartTime: "17:00", EndTime: "20:00"})
	uc := NewUseCase(store, newRules(t), tpl, logger.Nop())
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{Date: date(t, "2025-11-04")})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, domain.AvailabilityAvailable, resp.Slots[0].Availability)
	assert.Nil(t, resp.Slots[0].Booking)

	_, err = store.InsertConfirmed(ctx, &domain.Booking{
		SlotDate:  date(t, "2025-11-04"),
		SlotTime:  types.MustParseTimeRange("17:00-20:00"),
		UserEmail: "anna@example.org",
		UserName:  "Anna",
	})
	require.NoError(t, err)

	// любая дата недели дает ту же неделю
	resp, err = uc.Execute(ctx, &Request{Date: date(t, "2025-11-09")})
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityBooked, resp.Slots[0].Availability)
	require.NotNil(t, resp.Slots[0].Booking)
	assert.Equal(t, "Anna", resp.Slots[0].Booking.UserName)
}

func TestExecute_TemplateOrderAndSingleQuery(t *testing.T) {
	store := inmemory.NewBookingStore()
	repo := &countingRepo{BookingRepository: store}
	tpl := newTemplate(t,
		domain.SlotDefinition{Weekday: "saturday", StartTime: "14:00", EndTime: "17:00"},
		domain.SlotDefinition{Weekday: "tuesday", StartTime: "17:00", EndTime: "20:00"},
		domain.SlotDefinition{Weekday: "friday", StartTime: "17:00", EndTime: "20:00"},
	)
	uc := NewUseCase(repo, newRules(t), tpl, logger.Nop())

	// 26.12.2025 пятница, праздник
	resp, err := uc.Execute(context.Background(), &Request{Date: date(t, "2025-12-23")})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, "saturday", resp.Slots[0].Slot.Weekday)
	assert.Equal(t, "tuesday", resp.Slots[1].Slot.Weekday)
	assert.Equal(t, "friday", resp.Slots[2].Slot.Weekday)
	assert.Equal(t, domain.AvailabilityAvailable, resp.Slots[0].Availability)
	assert.Equal(t, domain.AvailabilityAvailable, resp.Slots[1].Availability)
	assert.Equal(t, domain.AvailabilityBlocked, resp.Slots[2].Availability)
	assert.Equal(t, domain.BlockReasonHoliday, resp.Slots[2].BlockReason)
}

func TestExecute_StoreFailure(t *testing.T) {
	repo := &countingRepo{BookingRepository: inmemory.NewBookingStore(), err: errors.New("connection refused")}
	uc := NewUseCase(repo, newRules(t), schedule.Default(), logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{Date: date(t, "2025-11-04")})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
