package get_stats

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	listFreeSlots "github.com/m04kA/SMC-DutyRosterService/internal/usecase/list_free_slots"
)

// UseCase use case сводной статистики
type UseCase struct {
	bookingRepo  BookingRepository
	users        UserLister
	admins       AdminProvider
	calendar     Calendar
	freeSlots    FreeSlotFinder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	users UserLister,
	admins AdminProvider,
	calendar Calendar,
	freeSlots FreeSlotFinder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		users:        users,
		admins:       admins,
		calendar:     calendar,
		freeSlots:    freeSlots,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute собирает статистику
// Недоступность хранилища при подсчете свободных слотов дает Degraded вместо ошибки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Только администратор
	if _, err := uc.admins.Admin(ctx, req.ActorEmail); err != nil {
		return nil, err
	}

	today := uc.calendar.Today(uc.timeProvider.Now())
	resp := &Response{Today: today}

	// 2. Активные пользователи
	users, err := uc.users.List(ctx)
	if err != nil {
		uc.logger.Error("GetStats: failed to list users: %v", err)
		return nil, fmt.Errorf("%w: list users: %v", ErrInternal, err)
	}
	for _, u := range users {
		if u.Active {
			resp.ActiveUsers++
		}
	}

	// 3. Будущие бронирования и бронирования месяца
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	if resp.FutureBookings, err = uc.countConfirmed(ctx, &today, nil); err != nil {
		return nil, err
	}
	if resp.MonthBookings, err = uc.countConfirmed(ctx, &monthStart, &monthEnd); err != nil {
		return nil, err
	}

	// 4. Свободные слоты
	free, err := uc.freeSlots.Execute(ctx, &listFreeSlots.Request{From: today, Days: FreeSlotDays, BestEffort: true})
	if err != nil {
		uc.logger.Error("GetStats: failed to count free slots: %v", err)
		return nil, fmt.Errorf("%w: free slots: %v", ErrInternal, err)
	}
	resp.FreeSlots = len(free.Slots)
	resp.Degraded = free.Degraded

	uc.logger.Info("GetStats: users=%d, future=%d, month=%d, free=%d",
		resp.ActiveUsers, resp.FutureBookings, resp.MonthBookings, resp.FreeSlots)
	return resp, nil
}

func (uc *UseCase) countConfirmed(ctx context.Context, from, to *time.Time) (int, error) {
	status := domain.StatusConfirmed
	bookings, err := uc.bookingRepo.FindAll(ctx, domain.BookingsFilter{Status: &status, StartDate: from, EndDate: to})
	if err != nil {
		uc.logger.Error("GetStats: failed to count bookings: %v", err)
		return 0, fmt.Errorf("%w: count bookings: %v", ErrInternal, err)
	}
	return len(bookings), nil
}
