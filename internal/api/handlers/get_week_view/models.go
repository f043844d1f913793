package get_week_view

import (
	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/bookings/models"
	getWeekView "github.com/m04kA/SMC-DutyRosterService/internal/usecase/get_week_view"
)

// WeekViewResponse HTTP response model
type WeekViewResponse struct {
	WeekAnchor        string     `json:"weekAnchor"`
	WeekAnchorDisplay string     `json:"weekAnchorDisplay"`
	Slots             []SlotView `json:"slots"`
}

// SlotView состояние одного слота недели
type SlotView struct {
	SlotID       int                     `json:"slotId"`
	SlotDate     string                  `json:"slotDate"`
	DateDisplay  string                  `json:"dateDisplay"`
	SlotTime     string                  `json:"slotTime"`
	Weekday      string                  `json:"weekday"`
	DisplayName  string                  `json:"displayName"`
	Availability string                  `json:"availability"`
	BlockReason  string                  `json:"blockReason,omitempty"`
	Booking      *models.BookingResponse `json:"booking,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getWeekView.Response) *WeekViewResponse {
	slots := make([]SlotView, len(resp.Slots))
	for i, state := range resp.Slots {
		slots[i] = SlotView{
			SlotID:       state.Slot.SlotID,
			SlotDate:     state.Slot.Date.Format(domain.DateFormat),
			DateDisplay:  calendar.FormatDisplay(state.Slot.Date),
			SlotTime:     state.Slot.TimeRange.String(),
			Weekday:      state.Slot.Weekday,
			DisplayName:  state.Slot.DisplayName,
			Availability: string(state.Availability),
			BlockReason:  string(state.BlockReason),
			Booking:      models.FromDomainBooking(state.Booking),
		}
	}

	return &WeekViewResponse{
		WeekAnchor:        resp.WeekAnchor.Format(domain.DateFormat),
		WeekAnchorDisplay: calendar.FormatDisplay(resp.WeekAnchor),
		Slots:             slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметра пути
func ToUseCaseRequest(dateStr string) (*getWeekView.Request, error) {
	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &getWeekView.Request{Date: date}, nil
}
