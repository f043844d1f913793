package get_all_bookings

import (
	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(actorEmail, statusStr, fromStr, toStr string) (*models.GetAllBookingsRequest, error) {
	req := &models.GetAllBookingsRequest{ActorEmail: actorEmail}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if fromStr != "" {
		from, err := calendar.ParseDate(fromStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := calendar.ParseDate(toStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	return req, nil
}
