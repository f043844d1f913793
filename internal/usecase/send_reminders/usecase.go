package send_reminders

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	userRepo "github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/user"
)

// UseCase use case напоминаний о завтрашних дежурствах
type UseCase struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	calendar     Calendar
	notifier     ReminderNotifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	calendar Calendar,
	notifier ReminderNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		calendar:     calendar,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Run отправляет напоминания владельцам подтвержденных бронирований на завтра
// Напоминание получают только пользователи с включенными SMS и телефоном.
// Сбой одного получателя не прерывает рассылку
func (uc *UseCase) Run(ctx context.Context) (*Result, error) {
	tomorrow := uc.calendar.Today(uc.timeProvider.Now()).AddDate(0, 0, 1)
	result := &Result{Date: tomorrow}

	// 1. Бронирования на завтра
	bookings, err := uc.bookingRepo.FindConfirmedInRange(ctx, tomorrow, tomorrow)
	if err != nil {
		uc.logger.Error("SendReminders: failed to get bookings for %s: %v", tomorrow.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
	}

	// 2. Рассылка по владельцам
	for _, b := range bookings {
		user, err := uc.userRepo.GetByEmail(ctx, b.UserEmail)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				result.Skipped++
				continue
			}
			uc.logger.Warn("SendReminders: failed to get user %s: %v", b.UserEmail, err)
			result.Failed++
			continue
		}
		if !user.SMSNotifications || user.Phone == "" {
			result.Skipped++
			continue
		}

		if err := uc.notifier.Reminder(ctx, b, user); err != nil {
			result.Failed++
			continue
		}
		result.Sent++
	}

	uc.logger.Info("SendReminders: %s sent=%d, skipped=%d, failed=%d",
		tomorrow.Format(domain.DateFormat), result.Sent, result.Skipped, result.Failed)
	return result, nil
}
