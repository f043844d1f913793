package get_week_view

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// UseCase use case для получения расписания дежурств на неделю
type UseCase struct {
	bookingRepo BookingRepository
	rules       CalendarRules
	template    SlotTemplate
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, rules CalendarRules, template SlotTemplate, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		rules:       rules,
		template:    template,
		logger:      logger,
	}
}

// Execute строит недельное представление слотов
// Бронирования недели читаются одним запросом и сопоставляются со слотами в памяти
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 1. Неделя и слоты шаблона
	anchor := calendar.WeekAnchor(req.Date)
	slots := uc.template.Resolve(anchor)
	uc.logger.Info("GetWeekView: week=%s, slots=%d", anchor.Format(domain.DateFormat), len(slots))

	// 2. Бронирования недели одним запросом
	bookings, err := uc.bookingRepo.FindConfirmedInRange(ctx, anchor, anchor.AddDate(0, 0, 6))
	if err != nil {
		uc.logger.Error("GetWeekView: failed to get bookings for week %s: %v", anchor.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
	}
	booked := indexBySlot(bookings)

	// 3. Состояние каждого слота
	states := make([]domain.SlotState, 0, len(slots))
	for _, slot := range slots {
		states = append(states, slotState(slot, uc.rules.BlockReason(slot.Date), booked))
	}

	return &Response{WeekAnchor: anchor, Slots: states}, nil
}

// slotState блокировка важнее бронирования
func slotState(slot domain.ResolvedSlot, reason domain.BlockReason, booked map[domain.SlotKey]*domain.Booking) domain.SlotState {
	if reason != domain.BlockReasonNone {
		return domain.SlotState{Slot: slot, Availability: domain.AvailabilityBlocked, BlockReason: reason}
	}
	if b, ok := booked[slot.Key()]; ok {
		return domain.SlotState{Slot: slot, Availability: domain.AvailabilityBooked, Booking: b}
	}
	return domain.SlotState{Slot: slot, Availability: domain.AvailabilityAvailable}
}

func indexBySlot(bookings []*domain.Booking) map[domain.SlotKey]*domain.Booking {
	index := make(map[domain.SlotKey]*domain.Booking, len(bookings))
	for _, b := range bookings {
		index[b.SlotKey()] = b
	}
	return index
}
