package list_free_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/internal/schedule"
)

// UseCase use case поиска свободных дежурств на горизонте
type UseCase struct {
	bookingRepo  BookingRepository
	rules        CalendarRules
	template     SlotTemplate
	users        UserLister
	notifier     AlertNotifier
	horizonDays  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// horizonDays - горизонт ежедневного оповещения
func NewUseCase(
	bookingRepo BookingRepository,
	rules CalendarRules,
	template SlotTemplate,
	users UserLister,
	notifier AlertNotifier,
	horizonDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		rules:        rules,
		template:     template,
		users:        users,
		notifier:     notifier,
		horizonDays:  horizonDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает свободные незаблокированные слоты с From на Days дней
// Бронирования всего горизонта читаются одним запросом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListFreeSlots: validation failed: %v", err)
		return nil, err
	}

	from := calendar.DateOnly(req.From)
	if req.From.IsZero() {
		from = uc.rules.Today(uc.timeProvider.Now())
	}
	to := from.AddDate(0, 0, req.Days-1)
	resp := &Response{From: from, To: to, Slots: make([]domain.ResolvedSlot, 0)}

	uc.logger.Info("ListFreeSlots: from=%s, to=%s, bestEffort=%t",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat), req.BestEffort)

	// 2. Бронирования горизонта одним запросом
	bookings, err := uc.bookingRepo.FindConfirmedInRange(ctx, from, to)
	if err != nil {
		if req.BestEffort {
			uc.logger.Warn("ListFreeSlots: store unavailable, reporting no free slots: %v", err)
			resp.Degraded = true
			return resp, nil
		}
		uc.logger.Error("ListFreeSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
	}
	booked := make(map[domain.SlotKey]struct{}, len(bookings))
	for _, b := range bookings {
		booked[b.SlotKey()] = struct{}{}
	}

	// 3. Обход дней горизонта
	defs := uc.template.All()
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if uc.rules.BlockReason(day) != domain.BlockReasonNone {
			continue
		}
		weekday := calendar.WeekdayName(day)
		for _, def := range defs {
			if def.Weekday != weekday {
				continue
			}
			slot := schedule.ResolveSlot(def, day)
			if _, taken := booked[slot.Key()]; !taken {
				resp.Slots = append(resp.Slots, slot)
			}
		}
	}

	uc.logger.Info("ListFreeSlots: %d free slots found", len(resp.Slots))
	return resp, nil
}

// Alert ищет свободные слоты с завтрашнего дня на горизонте оповещения
// и публикует их администраторам. Сбой хранилища не прерывает ежедневный запуск
func (uc *UseCase) Alert(ctx context.Context) (*AlertResult, error) {
	tomorrow := uc.rules.Today(uc.timeProvider.Now()).AddDate(0, 0, 1)

	resp, err := uc.Execute(ctx, &Request{From: tomorrow, Days: uc.horizonDays, BestEffort: true})
	if err != nil {
		return nil, err
	}

	result := &AlertResult{Slots: resp.Slots, Degraded: resp.Degraded}
	if len(resp.Slots) == 0 {
		uc.logger.Info("FreeSlotsAlert: no free slots until %s", resp.To.Format(domain.DateFormat))
		return result, nil
	}

	result.Recipients = uc.adminEmails(ctx)
	if len(result.Recipients) == 0 {
		uc.logger.Warn("FreeSlotsAlert: %d free slots but no active admins to notify", len(resp.Slots))
		return result, nil
	}

	if err := uc.notifier.FreeSlots(ctx, resp.Slots, result.Recipients); err != nil {
		uc.logger.Warn("FreeSlotsAlert: failed to publish alert: %v", err)
		return result, err
	}

	uc.logger.Info("FreeSlotsAlert: %d free slots reported to %d admins", len(resp.Slots), len(result.Recipients))
	return result, nil
}

// adminEmails активные администраторы; при ошибке хранилища - пустой список
func (uc *UseCase) adminEmails(ctx context.Context) []string {
	users, err := uc.users.List(ctx)
	if err != nil {
		uc.logger.Warn("FreeSlotsAlert: failed to list admins: %v", err)
		return nil
	}

	var emails []string
	for _, u := range users {
		if u.IsAdmin() && u.CanAct() {
			emails = append(emails, u.Email)
		}
	}
	return emails
}
