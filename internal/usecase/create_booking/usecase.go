package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/user"
	"github.com/m04kA/SMC-DutyRosterService/pkg/metrics"
)

const operationBook = "book"

// UseCase use case для создания бронирования дежурства
type UseCase struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	actors       ActorProvider
	rules        CalendarRules
	template     SlotTemplate
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
	actors ActorProvider,
	rules CalendarRules,
	template SlotTemplate,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		actors:       actors,
		rules:        rules,
		template:     template,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости перед вставкой дает понятную ошибку с именем владельца,
// гарантию единственности дает уникальный индекс хранилища
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%s, user=%s, date=%s, time=%s, override=%t",
		req.ActorEmail, req.UserEmail, req.SlotDate.Format(domain.DateFormat), req.SlotTime, req.Override)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.observe(metrics.OutcomeRejected)
		return nil, err
	}
	date := calendar.DateOnly(req.SlotDate)

	// 2. Дата не должна быть заблокирована
	if reason := uc.rules.BlockReason(date); reason != domain.BlockReasonNone {
		uc.logger.Warn("CreateBooking: date %s is blocked: %s", date.Format(domain.DateFormat), reason)
		uc.observe(metrics.OutcomeBlocked)
		return nil, &domain.SlotBlockedError{Date: date, Reason: reason}
	}

	// 3. Слот должен быть в недельном шаблоне
	if _, ok := uc.template.Find(calendar.WeekdayName(date), req.SlotTime); !ok {
		uc.logger.Warn("CreateBooking: no %s slot on %s", req.SlotTime, calendar.WeekdayName(date))
		uc.observe(metrics.OutcomeRejected)
		return nil, fmt.Errorf("%w: %s %s", ErrSlotNotInTemplate, calendar.WeekdayName(date), req.SlotTime)
	}

	// 4. Проверяем пользователя и владельца бронирования
	actor, err := uc.actors.Actor(ctx, req.ActorEmail)
	if err != nil {
		uc.observe(metrics.OutcomeRejected)
		return nil, err
	}
	holder, err := uc.resolveHolder(ctx, actor, req.UserEmail)
	if err != nil {
		uc.observe(metrics.OutcomeRejected)
		return nil, err
	}

	// 5. Повторная проверка занятости перед записью
	existing, err := uc.bookingRepo.FindConfirmed(ctx, date, req.SlotTime)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check slot: %v", err)
		uc.observe(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: check slot: %v", ErrInternal, err)
	}
	override := req.Override && actor.IsAdmin()
	if existing != nil && !override {
		uc.logger.Warn("CreateBooking: slot %s %s already booked by %s",
			date.Format(domain.DateFormat), req.SlotTime, existing.UserEmail)
		uc.observe(metrics.OutcomeSlotTaken)
		return nil, &domain.SlotTakenError{HolderName: existing.UserName, Booking: existing}
	}

	booking := &domain.Booking{
		SlotDate:  date,
		SlotTime:  req.SlotTime,
		UserEmail: holder.Email,
		UserName:  holder.Name,
		UserPhone: holder.Phone,
	}

	// 6. Создаем бронирование (с заменой владельца для администратора)
	resp := &Response{}
	if existing == nil {
		resp.Booking, err = uc.insert(ctx, booking)
	} else {
		resp.Booking, resp.Replaced, err = uc.replace(ctx, actor, booking)
	}
	if err != nil {
		uc.observe(outcomeOf(err))
		return nil, err
	}

	// 7. Уведомления (best-effort)
	var cancelErr error
	if resp.Replaced != nil {
		cancelErr = uc.notifier.BookingCancelled(ctx, resp.Replaced)
	}
	createErr := uc.notifier.BookingCreated(ctx, resp.Booking)
	resp.NotificationWarning = joinWarnings(cancelErr, createErr)

	uc.logger.Info("CreateBooking: booking id=%s created for %s", resp.Booking.ID, resp.Booking.UserEmail)
	uc.observe(metrics.OutcomeSuccess)
	return resp, nil
}

// resolveHolder возвращает пользователя, на которого оформляется бронирование
func (uc *UseCase) resolveHolder(ctx context.Context, actor *domain.User, email string) (*domain.User, error) {
	if email == "" || domain.NormalizeEmail(email) == actor.Email {
		return actor, nil
	}

	if !actor.IsAdmin() {
		uc.logger.Warn("CreateBooking: %s tried to book for %s", actor.Email, email)
		return nil, ErrAccessDenied
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user %s not found", email)
			return nil, fmt.Errorf("%w: %s", ErrInvalidUser, email)
		}
		uc.logger.Error("CreateBooking: failed to get user %s: %v", email, err)
		return nil, fmt.Errorf("%w: get user: %v", ErrInternal, err)
	}
	if !user.CanAct() {
		uc.logger.Warn("CreateBooking: user %s is inactive", email)
		return nil, fmt.Errorf("%w: %s", ErrInvalidUser, email)
	}

	return user, nil
}

// insert сохраняет бронирование; конфликт уникальности превращается в SlotTakenError
func (uc *UseCase) insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created, err := uc.bookingRepo.InsertConfirmed(ctx, booking)
	if err == nil {
		return created, nil
	}

	if errors.Is(err, bookingRepo.ErrConflict) {
		uc.logger.Warn("CreateBooking: lost race for slot %s %s",
			booking.SlotDate.Format(domain.DateFormat), booking.SlotTime)
		return nil, uc.slotTaken(ctx, booking)
	}

	uc.logger.Error("CreateBooking: failed to insert booking: %v", err)
	return nil, fmt.Errorf("%w: insert booking: %v", ErrInternal, err)
}

// replace отменяет текущее бронирование слота от имени администратора и создает новое
func (uc *UseCase) replace(ctx context.Context, admin *domain.User, booking *domain.Booking) (*domain.Booking, *domain.Booking, error) {
	var created, replaced *domain.Booking
	cancelled := false

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := uc.bookingRepo.FindConfirmed(ctx, booking.SlotDate, booking.SlotTime)
		if err != nil {
			return fmt.Errorf("%w: check slot: %v", ErrInternal, err)
		}

		if current != nil {
			now := uc.timeProvider.Now().UTC()
			changed, err := uc.bookingRepo.MarkCancelled(ctx, current.ID, admin.Email, now)
			if err != nil {
				return fmt.Errorf("%w: cancel booking %s: %v", ErrInternal, current.ID, err)
			}
			if changed {
				cancelled = true
				current.Status = domain.StatusCancelled
				current.CancelledAt = &now
				current.CancelledBy = &admin.Email
				replaced = current
			}
		}

		created, err = uc.insert(ctx, booking)
		return err
	})
	if err == nil {
		uc.logger.Info("CreateBooking: admin %s replaced booking of slot %s %s",
			admin.Email, booking.SlotDate.Format(domain.DateFormat), booking.SlotTime)
		return created, replaced, nil
	}

	if cancelled && !uc.txManager.IsAtomic() && !errors.Is(err, domain.ErrSlotTaken) {
		uc.logger.Error("CreateBooking: booking %s cancelled but new booking failed: %v", replaced.ID, err)
		return nil, nil, &domain.TransferPartialFailureError{
			OriginalBookingID: replaced.ID,
			SlotDate:          booking.SlotDate,
			SlotTime:          booking.SlotTime,
			Cause:             err,
		}
	}

	if errors.Is(err, domain.ErrSlotTaken) || errors.Is(err, ErrInternal) {
		return nil, nil, err
	}
	return nil, nil, fmt.Errorf("%w: replace booking: %v", ErrInternal, err)
}

// slotTaken находит текущего владельца слота для сообщения об ошибке
func (uc *UseCase) slotTaken(ctx context.Context, booking *domain.Booking) error {
	holder, err := uc.bookingRepo.FindConfirmed(ctx, booking.SlotDate, booking.SlotTime)
	if err != nil || holder == nil {
		return &domain.SlotTakenError{}
	}
	return &domain.SlotTakenError{HolderName: holder.UserName, Booking: holder}
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBooking(operationBook, outcome)
	}
}

// outcomeOf метка метрики для ошибки создания
func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrSlotTaken):
		return metrics.OutcomeSlotTaken
	case errors.Is(err, domain.ErrTransferPartialFailure):
		return metrics.OutcomePartialFailure
	default:
		return metrics.OutcomeError
	}
}
