package create_booking

import (
	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-DutyRosterService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotDate  string `json:"slotDate"`            // "2025-11-04"
	SlotTime  string `json:"slotTime"`            // "17:00-20:00"
	UserEmail string `json:"userEmail,omitempty"` // Только для администратора
	Override  bool   `json:"override,omitempty"`  // Только для администратора
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking             *models.BookingResponse `json:"booking"`
	Replaced            *models.BookingResponse `json:"replaced,omitempty"`
	NotificationWarning string                  `json:"notificationWarning,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actorEmail string) (*createBooking.Request, error) {
	slotDate, err := calendar.ParseDate(r.SlotDate)
	if err != nil {
		return nil, err
	}

	slotTime, err := types.ParseTimeRange(r.SlotTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ActorEmail: actorEmail,
		UserEmail:  r.UserEmail,
		SlotDate:   slotDate,
		SlotTime:   slotTime,
		Override:   r.Override,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:             models.FromDomainBooking(resp.Booking),
		Replaced:            models.FromDomainBooking(resp.Replaced),
		NotificationWarning: resp.NotificationWarning,
	}
}
