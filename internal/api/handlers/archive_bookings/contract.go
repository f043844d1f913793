package archive_bookings

import (
	"context"

	archiveBookings "github.com/m04kA/SMC-DutyRosterService/internal/usecase/archive_bookings"
)

type ArchiveBookingsUseCase interface {
	Execute(ctx context.Context, req *archiveBookings.Request) (*archiveBookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
