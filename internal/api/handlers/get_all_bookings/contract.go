package get_all_bookings

import (
	"context"

	"github.com/m04kA/SMC-DutyRosterService/internal/service/bookings/models"
)

type BookingService interface {
	GetAllBookings(ctx context.Context, req *models.GetAllBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
