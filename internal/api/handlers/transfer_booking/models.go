package transfer_booking

import (
	"github.com/m04kA/SMC-DutyRosterService/internal/service/bookings/models"
	transferBooking "github.com/m04kA/SMC-DutyRosterService/internal/usecase/transfer_booking"
)

// TransferBookingRequest HTTP request model
type TransferBookingRequest struct {
	UserEmail string `json:"userEmail"`
}

// TransferBookingResponse HTTP response model
type TransferBookingResponse struct {
	Booking             *models.BookingResponse `json:"booking"`
	Original            *models.BookingResponse `json:"original"`
	NotificationWarning string                  `json:"notificationWarning,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transferBooking.Response) *TransferBookingResponse {
	return &TransferBookingResponse{
		Booking:             models.FromDomainBooking(resp.Booking),
		Original:            models.FromDomainBooking(resp.Original),
		NotificationWarning: resp.NotificationWarning,
	}
}
