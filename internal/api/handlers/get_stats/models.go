package get_stats

import (
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	getStats "github.com/m04kA/SMC-DutyRosterService/internal/usecase/get_stats"
)

// StatsResponse HTTP response model
type StatsResponse struct {
	Today          string `json:"today"`
	ActiveUsers    int    `json:"activeUsers"`
	FutureBookings int    `json:"futureBookings"`
	MonthBookings  int    `json:"monthBookings"`
	FreeSlots      int    `json:"freeSlots"`
	FreeSlotDays   int    `json:"freeSlotDays"`
	Degraded       bool   `json:"degraded"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStats.Response) *StatsResponse {
	return &StatsResponse{
		Today:          resp.Today.Format(domain.DateFormat),
		ActiveUsers:    resp.ActiveUsers,
		FutureBookings: resp.FutureBookings,
		MonthBookings:  resp.MonthBookings,
		FreeSlots:      resp.FreeSlots,
		FreeSlotDays:   getStats.FreeSlotDays,
		Degraded:       resp.Degraded,
	}
}
