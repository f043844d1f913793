package domain

import (
	"time"

	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Booking represents a duty slot reservation
// At most one confirmed booking may exist for a (SlotDate, SlotTime) pair
type Booking struct {
	ID       string
	SlotDate time.Time // civil date, 00:00 UTC
	SlotTime types.TimeRange
	Status   BookingStatus

	// Denormalized user data for display and audit
	UserEmail string
	UserName  string
	UserPhone string

	CreatedAt   time.Time
	CancelledAt *time.Time
	CancelledBy *string
}

// IsConfirmed returns true if the booking currently holds its slot
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// BelongsTo returns true if the booking was made for the given user email
func (b *Booking) BelongsTo(email string) bool {
	return NormalizeEmail(b.UserEmail) == NormalizeEmail(email)
}

// SlotKey returns the key of the slot the booking holds
func (b *Booking) SlotKey() SlotKey {
	return SlotKey{Date: b.SlotDate.Format(DateFormat), Time: b.SlotTime.String()}
}

// SlotKey identifies a resolved slot independently of any booking
type SlotKey struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM-HH:MM
}

// BookingsFilter фильтр для админской выборки бронирований
type BookingsFilter struct {
	Status    *BookingStatus // nil - все статусы
	StartDate *time.Time     // Начало периода включительно (опционально)
	EndDate   *time.Time     // Конец периода включительно (опционально)
}
