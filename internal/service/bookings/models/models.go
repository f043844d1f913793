package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	ActorEmail string `json:"-"`
	UserEmail  string `json:"userEmail"`
	FutureOnly bool   `json:"futureOnly"`
}

// GetAllBookingsRequest запрос администратора на получение всех бронирований
type GetAllBookingsRequest struct {
	ActorEmail string     `json:"-"`
	Status     *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	StartDate  *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate    *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAllBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string `json:"id"`
	SlotDate        string `json:"slotDate"`        // "2025-11-04"
	SlotDateDisplay string `json:"slotDateDisplay"` // "04.11.2025"
	SlotTime        string `json:"slotTime"`        // "17:00-20:00"
	Status          string `json:"status"`

	// Денормализованные данные пользователя
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	UserPhone string `json:"userPhone,omitempty"`

	CreatedAt   time.Time `json:"createdAt"`
	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
	CancelledBy *string   `json:"cancelledBy,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelBookingResponse результат отмены
// Cancelled = false, если бронирование уже было отменено или не существует
type CancelBookingResponse struct {
	Booking             *BookingResponse `json:"booking,omitempty"`
	Cancelled           bool             `json:"cancelled"`
	NotificationWarning string           `json:"notificationWarning,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		SlotDate:        b.SlotDate.Format(domain.DateFormat),
		SlotDateDisplay: calendar.FormatDisplay(b.SlotDate),
		SlotTime:        b.SlotTime.String(),
		Status:          string(b.Status),
		UserEmail:       b.UserEmail,
		UserName:        b.UserName,
		UserPhone:       b.UserPhone,
		CreatedAt:       b.CreatedAt,
		CancelledBy:     b.CancelledBy,
	}

	if b.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(b.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в статус бронирования
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
