package archive_bookings

import (
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	archiveBookings "github.com/m04kA/SMC-DutyRosterService/internal/usecase/archive_bookings"
)

// ArchiveResponse HTTP response model
// Error заполняется при частичном переносе
type ArchiveResponse struct {
	Cutoff string `json:"cutoff"`
	Moved  int    `json:"moved"`
	Error  string `json:"error,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *archiveBookings.Response) *ArchiveResponse {
	return &ArchiveResponse{
		Cutoff: resp.Cutoff.Format(domain.DateFormat),
		Moved:  resp.Moved,
	}
}
