package notifications

import (
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// Ключи маршрутизации событий бронирования
const (
	RoutingKeyBookingCreated   = "booking.created"
	RoutingKeyBookingCancelled = "booking.cancelled"
	RoutingKeyReminder         = "booking.reminder"
	RoutingKeyFreeSlots        = "slots.free"
)

// BookingEvent событие о бронировании для сервисов рассылки (email, SMS)
type BookingEvent struct {
	BookingID       string    `json:"bookingId"`
	SlotDate        string    `json:"slotDate"`        // YYYY-MM-DD
	SlotDateDisplay string    `json:"slotDateDisplay"` // DD.MM.YYYY
	SlotTime        string    `json:"slotTime"`
	Status          string    `json:"status"`
	UserEmail       string    `json:"userEmail"`
	UserName        string    `json:"userName"`
	UserPhone       string    `json:"userPhone,omitempty"`
	CancelledBy     string    `json:"cancelledBy,omitempty"`
	NotifyEmail     bool      `json:"notifyEmail"`
	NotifySMS       bool      `json:"notifySms"`
	OccurredAt      time.Time `json:"occurredAt"`
}

func newBookingEvent(b *domain.Booking, recipient *domain.User, at time.Time) BookingEvent {
	ev := BookingEvent{
		BookingID:       b.ID,
		SlotDate:        b.SlotDate.Format(domain.DateFormat),
		SlotDateDisplay: calendar.FormatDisplay(b.SlotDate),
		SlotTime:        b.SlotTime.String(),
		Status:          string(b.Status),
		UserEmail:       b.UserEmail,
		UserName:        b.UserName,
		UserPhone:       b.UserPhone,
		NotifyEmail:     true,
		OccurredAt:      at,
	}
	if b.CancelledBy != nil {
		ev.CancelledBy = *b.CancelledBy
	}
	if recipient != nil {
		ev.NotifyEmail = recipient.EmailNotifications
		ev.NotifySMS = recipient.SMSNotifications && recipient.Phone != ""
	}
	return ev
}

// FreeSlot свободное дежурство в оповещении
type FreeSlot struct {
	SlotDate        string `json:"slotDate"`
	SlotDateDisplay string `json:"slotDateDisplay"`
	SlotTime        string `json:"slotTime"`
	DisplayName     string `json:"displayName"`
}

// FreeSlotsEvent оповещение администраторов о незанятых дежурствах
type FreeSlotsEvent struct {
	Slots      []FreeSlot `json:"slots"`
	Recipients []string   `json:"recipients"`
	OccurredAt time.Time  `json:"occurredAt"`
}

func newFreeSlotsEvent(slots []domain.ResolvedSlot, recipients []string, at time.Time) FreeSlotsEvent {
	ev := FreeSlotsEvent{
		Slots:      make([]FreeSlot, 0, len(slots)),
		Recipients: recipients,
		OccurredAt: at,
	}
	if ev.Recipients == nil {
		ev.Recipients = []string{}
	}
	for _, s := range slots {
		ev.Slots = append(ev.Slots, FreeSlot{
			SlotDate:        s.Date.Format(domain.DateFormat),
			SlotDateDisplay: calendar.FormatDisplay(s.Date),
			SlotTime:        s.TimeRange.String(),
			DisplayName:     s.DisplayName,
		})
	}
	return ev
}
