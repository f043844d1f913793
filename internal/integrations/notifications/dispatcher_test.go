package notifications

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/pkg/logger"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

type published struct {
	key     string
	payload any
}

type fakePublisher struct {
	sent []published
	err  error
}

func (p *fakePublisher) PublishJSON(ctx context.Context, key string, v any) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{key: key, payload: v})
	return nil
}

type fakeUsers map[string]*domain.User

func (f fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f[email]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:        "b-1",
		SlotDate:  time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC),
		SlotTime:  types.MustParseTimeRange("17:00-20:00"),
		Status:    domain.StatusConfirmed,
		UserEmail: "anna@example.org",
		UserName:  "Anna",
		UserPhone: "+49 151 000",
	}
}

func TestDispatcher_BookingCreated(t *testing.T) {
	pub := &fakePublisher{}
	users := fakeUsers{"anna@example.org": {Email: "anna@example.org", Phone: "+49 151 000", EmailNotifications: false, SMSNotifications: true}}
	d := NewDispatcher(pub, users, logger.Nop(), time.Second)

	require.NoError(t, d.BookingCreated(context.Background(), sampleBooking()))

	require.Len(t, pub.sent, 1)
	assert.Equal(t, RoutingKeyBookingCreated, pub.sent[0].key)
	ev := pub.sent[0].payload.(BookingEvent)
	assert.Equal(t, "2025-11-04", ev.SlotDate)
	assert.Equal(t, "04.11.2025", ev.SlotDateDisplay)
	assert.Equal(t, "17:00-20:00", ev.SlotTime)
	assert.False(t, ev.NotifyEmail)
	assert.True(t, ev.NotifySMS)
}

func TestDispatcher_BookingCancelled_DefaultsWithoutUser(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(pub, fakeUsers{}, logger.Nop(), 0)

	b := sampleBooking()
	b.Status = domain.StatusCancelled
	by := "admin@example.org"
	b.CancelledBy = &by

	require.NoError(t, d.BookingCancelled(context.Background(), b))

	require.Len(t, pub.sent, 1)
	ev := pub.sent[0].payload.(BookingEvent)
	assert.Equal(t, RoutingKeyBookingCancelled, pub.sent[0].key)
	assert.Equal(t, "admin@example.org", ev.CancelledBy)
	assert.True(t, ev.NotifyEmail)
	assert.False(t, ev.NotifySMS)
}

func TestDispatcher_PublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	d := NewDispatcher(pub, nil, logger.Nop(), time.Second)

	err := d.BookingCreated(context.Background(), sampleBooking())
	assert.ErrorIs(t, err, ErrPublish)
}

func TestDispatcher_FreeSlots(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(pub, nil, logger.Nop(), 0)

	slots := []domain.ResolvedSlot{{
		SlotID:      1,
		Date:        time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC),
		TimeRange:   types.MustParseTimeRange("17:00-20:00"),
		Weekday:     "tuesday",
		DisplayName: "Dienstag",
	}}
	require.NoError(t, d.FreeSlots(context.Background(), slots, nil))

	require.Len(t, pub.sent, 1)
	assert.Equal(t, RoutingKeyFreeSlots, pub.sent[0].key)
	ev := pub.sent[0].payload.(FreeSlotsEvent)
	require.Len(t, ev.Slots, 1)
	assert.Equal(t, "04.11.2025", ev.Slots[0].SlotDateDisplay)
	assert.Equal(t, "Dienstag", ev.Slots[0].DisplayName)
	assert.NotNil(t, ev.Recipients)
}

func TestDispatcher_Reminder(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(pub, fakeUsers{}, logger.Nop(), time.Second)

	u := &domain.User{Email: "anna@example.org", Phone: "+49 151 999", EmailNotifications: true, SMSNotifications: true}
	require.NoError(t, d.Reminder(context.Background(), sampleBooking(), u))

	require.Len(t, pub.sent, 1)
	assert.Equal(t, RoutingKeyReminder, pub.sent[0].key)
	ev := pub.sent[0].payload.(BookingEvent)
	assert.Equal(t, "+49 151 999", ev.UserPhone)
	assert.Equal(t, "04.11.2025", ev.SlotDateDisplay)
	assert.True(t, ev.NotifySMS)
	assert.False(t, ev.NotifyEmail)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewWithWriter(&buf, "info")
	require.NoError(t, err)

	p := NewLogPublisher(log)
	require.NoError(t, p.PublishJSON(context.Background(), RoutingKeyBookingCreated, map[string]string{"bookingId": "b-1"}))

	assert.Contains(t, buf.String(), "booking.created")
	assert.Contains(t, buf.String(), "b-1")
}
