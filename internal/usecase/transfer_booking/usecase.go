package transfer_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/user"
	"github.com/m04kA/SMC-DutyRosterService/pkg/metrics"
)

const operationTransfer = "transfer"

// UseCase use case переноса бронирования на другого пользователя
// Отмена исходного и создание нового бронирования выполняются в одной транзакции,
// если хранилище их поддерживает. Иначе сбой второго шага дает TransferPartialFailureError
type UseCase struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	admins       AdminProvider
	rules        CalendarRules
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	admins AdminProvider,
	rules CalendarRules,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		admins:       admins,
		rules:        rules,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет перенос
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransferBooking: booking=%s, newUser=%s, actor=%s", req.BookingID, req.NewUserEmail, req.ActorEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransferBooking: validation failed: %v", err)
		uc.observe(metrics.OutcomeRejected)
		return nil, err
	}

	// 2. Только администратор
	admin, err := uc.admins.Admin(ctx, req.ActorEmail)
	if err != nil {
		uc.observe(metrics.OutcomeRejected)
		return nil, err
	}

	// 3. Исходное бронирование
	original, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("TransferBooking: booking id=%s not found", req.BookingID)
			uc.observe(metrics.OutcomeRejected)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("TransferBooking: failed to get booking id=%s: %v", req.BookingID, err)
		uc.observe(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: get booking: %v", ErrInternal, err)
	}
	if !original.IsConfirmed() {
		uc.logger.Warn("TransferBooking: booking id=%s is %s", req.BookingID, original.Status)
		uc.observe(metrics.OutcomeRejected)
		return nil, ErrNotConfirmed
	}

	// 4. Дата могла стать заблокированной после бронирования
	if reason := uc.rules.BlockReason(original.SlotDate); reason != domain.BlockReasonNone {
		uc.logger.Warn("TransferBooking: booking id=%s is on blocked date %s (%s)",
			req.BookingID, original.SlotDate.Format(domain.DateFormat), reason)
		uc.observe(metrics.OutcomeBlocked)
		return nil, &domain.SlotBlockedError{Date: original.SlotDate, Reason: reason}
	}

	// 5. Новый владелец
	newUser, err := uc.newHolder(ctx, req.NewUserEmail)
	if err != nil {
		uc.observe(metrics.OutcomeRejected)
		return nil, err
	}
	if original.BelongsTo(newUser.Email) {
		uc.observe(metrics.OutcomeRejected)
		return nil, ErrSameUser
	}

	// 6. Отмена и создание
	created, err := uc.transfer(ctx, admin, original, newUser)
	if err != nil {
		uc.observe(outcomeOf(err))
		return nil, err
	}

	// 7. Уведомления (best-effort)
	var warnings []string
	if err := uc.notifier.BookingCancelled(ctx, original); err != nil {
		warnings = append(warnings, err.Error())
	}
	if err := uc.notifier.BookingCreated(ctx, created); err != nil {
		warnings = append(warnings, err.Error())
	}

	uc.logger.Info("TransferBooking: booking id=%s transferred to %s as id=%s", original.ID, newUser.Email, created.ID)
	uc.observe(metrics.OutcomeSuccess)
	return &Response{
		Booking:             created,
		Original:            original,
		NotificationWarning: strings.Join(warnings, "; "),
	}, nil
}

func (uc *UseCase) newHolder(ctx context.Context, email string) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("TransferBooking: user %s not found", email)
			return nil, fmt.Errorf("%w: %s", ErrInvalidUser, email)
		}
		uc.logger.Error("TransferBooking: failed to get user %s: %v", email, err)
		return nil, fmt.Errorf("%w: get user: %v", ErrInternal, err)
	}
	if !user.CanAct() {
		uc.logger.Warn("TransferBooking: user %s is inactive", email)
		return nil, fmt.Errorf("%w: %s", ErrInvalidUser, email)
	}
	return user, nil
}

// transfer отменяет original от имени администратора и создает бронирование для newUser
// original обновляется на месте, если отмена прошла
func (uc *UseCase) transfer(ctx context.Context, admin *domain.User, original *domain.Booking, newUser *domain.User) (*domain.Booking, error) {
	var created *domain.Booking
	cancelled := false
	now := uc.timeProvider.Now().UTC()

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		changed, err := uc.bookingRepo.MarkCancelled(ctx, original.ID, admin.Email, now)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: cancel booking: %v", ErrInternal, err)
		}
		if !changed {
			return ErrNotConfirmed
		}
		cancelled = true

		created, err = uc.bookingRepo.InsertConfirmed(ctx, &domain.Booking{
			SlotDate:  original.SlotDate,
			SlotTime:  original.SlotTime,
			UserEmail: newUser.Email,
			UserName:  newUser.Name,
			UserPhone: newUser.Phone,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrConflict) {
				return uc.slotTaken(ctx, original)
			}
			return fmt.Errorf("%w: insert booking: %v", ErrInternal, err)
		}
		return nil
	})

	if err == nil {
		original.Status = domain.StatusCancelled
		original.CancelledAt = &now
		original.CancelledBy = &admin.Email
		return created, nil
	}

	if cancelled && !uc.txManager.IsAtomic() && !errors.Is(err, domain.ErrSlotTaken) {
		uc.logger.Error("TransferBooking: booking id=%s cancelled, slot %s %s left empty: %v",
			original.ID, original.SlotDate.Format(domain.DateFormat), original.SlotTime, err)
		return nil, &domain.TransferPartialFailureError{
			OriginalBookingID: original.ID,
			SlotDate:          original.SlotDate,
			SlotTime:          original.SlotTime,
			Cause:             err,
		}
	}

	uc.logger.Warn("TransferBooking: booking id=%s not transferred: %v", original.ID, err)
	if errors.Is(err, domain.ErrSlotTaken) || errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) || errors.Is(err, ErrInternal) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: transfer: %v", ErrInternal, err)
}

// slotTaken слот занял кто-то другой между отменой и вставкой
func (uc *UseCase) slotTaken(ctx context.Context, original *domain.Booking) error {
	holder, err := uc.bookingRepo.FindConfirmed(ctx, original.SlotDate, original.SlotTime)
	if err != nil || holder == nil {
		return &domain.SlotTakenError{}
	}
	return &domain.SlotTakenError{HolderName: holder.UserName, Booking: holder}
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBooking(operationTransfer, outcome)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrTransferPartialFailure):
		return metrics.OutcomePartialFailure
	case errors.Is(err, domain.ErrSlotTaken):
		return metrics.OutcomeSlotTaken
	case errors.Is(err, domain.ErrSlotBlocked):
		return metrics.OutcomeBlocked
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
