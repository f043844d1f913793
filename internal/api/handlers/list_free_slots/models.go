package list_free_slots

import (
	"strconv"

	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	listFreeSlots "github.com/m04kA/SMC-DutyRosterService/internal/usecase/list_free_slots"
)

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	From     string     `json:"from"`
	To       string     `json:"to"`
	Slots    []FreeSlot `json:"slots"`
	Degraded bool       `json:"degraded"`
}

// FreeSlot свободный слот
type FreeSlot struct {
	SlotDate    string `json:"slotDate"`
	DateDisplay string `json:"dateDisplay"`
	SlotTime    string `json:"slotTime"`
	Weekday     string `json:"weekday"`
	DisplayName string `json:"displayName"`
}

// ToUseCaseRequest формирует запрос из query параметров
// Пустой from означает сегодня, пустой days - горизонт по умолчанию
func ToUseCaseRequest(fromStr, daysStr string, defaultDays int) (*listFreeSlots.Request, error) {
	req := &listFreeSlots.Request{Days: defaultDays, BestEffort: true}

	if fromStr != "" {
		from, err := calendar.ParseDate(fromStr)
		if err != nil {
			return nil, err
		}
		req.From = from
	}

	if daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return nil, err
		}
		req.Days = days
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listFreeSlots.Response) *FreeSlotsResponse {
	slots := make([]FreeSlot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = FreeSlot{
			SlotDate:    s.Date.Format(domain.DateFormat),
			DateDisplay: calendar.FormatDisplay(s.Date),
			SlotTime:    s.TimeRange.String(),
			Weekday:     s.Weekday,
			DisplayName: s.DisplayName,
		}
	}

	return &FreeSlotsResponse{
		From:     resp.From.Format(domain.DateFormat),
		To:       resp.To.Format(domain.DateFormat),
		Slots:    slots,
		Degraded: resp.Degraded,
	}
}
