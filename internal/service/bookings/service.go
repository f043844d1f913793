package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DutyRosterService/pkg/metrics"
)

const operationCancel = "cancel"

// Service сервис для работы с бронированиями: чтение, история, отмена
type Service struct {
	bookingRepo  BookingRepository
	actors       ActorProvider
	notifier     Notifier
	calendar     Calendar
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	actors ActorProvider,
	notifier Notifier,
	calendar Calendar,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		actors:       actors,
		notifier:     notifier,
		calendar:     calendar,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id string, actorEmail string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for %s", id, actorEmail)

	actor, err := s.actors.Actor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !canAccess(actor, booking) {
		s.logger.Warn("GetByID: access denied for %s to booking id=%s", actorEmail, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает подтвержденные бронирования пользователя по возрастанию даты
// FutureOnly оставляет бронирования начиная с сегодняшнего дня
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings of %s for %s, futureOnly=%t",
		req.UserEmail, req.ActorEmail, req.FutureOnly)

	if domain.NormalizeEmail(req.UserEmail) == "" {
		return nil, fmt.Errorf("%w: userEmail is required", ErrInvalidInput)
	}

	actor, err := s.actors.Actor(ctx, req.ActorEmail)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.Email != domain.NormalizeEmail(req.UserEmail) {
		s.logger.Warn("GetUserBookings: %s may not read bookings of %s", req.ActorEmail, req.UserEmail)
		return nil, ErrAccessDenied
	}

	var from *time.Time
	if req.FutureOnly {
		today := s.calendar.Today(s.timeProvider.Now())
		from = &today
	}

	bookings, err := s.bookingRepo.FindByUser(ctx, domain.NormalizeEmail(req.UserEmail), from)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for %s: %v", req.UserEmail, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for %s", len(bookings), req.UserEmail)
	return models.FromDomainBookingList(bookings), nil
}

// GetAllBookings возвращает бронирования любого статуса; доступно только администратору
func (s *Service) GetAllBookings(ctx context.Context, req *models.GetAllBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetAllBookings: fetching bookings for admin %s", req.ActorEmail)

	if _, err := s.actors.Admin(ctx, req.ActorEmail); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAllBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("GetAllBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить может владелец или администратор. Повторная отмена и отмена
// несуществующего бронирования завершаются успешно без изменений
func (s *Service) Cancel(ctx context.Context, bookingID string, actorEmail string) (*models.CancelBookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by %s", bookingID, actorEmail)

	// 1. Проверяем пользователя
	actor, err := s.actors.Actor(ctx, actorEmail)
	if err != nil {
		s.observe(metrics.OutcomeRejected)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found, nothing to cancel", bookingID)
			s.observe(metrics.OutcomeNoop)
			return &models.CancelBookingResponse{}, nil
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		s.observe(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// 3. Проверяем права
	if !canAccess(actor, booking) {
		s.logger.Warn("Cancel: access denied for %s to cancel booking id=%s", actorEmail, bookingID)
		s.observe(metrics.OutcomeRejected)
		return nil, ErrAccessDenied
	}

	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking id=%s already cancelled", bookingID)
		s.observe(metrics.OutcomeNoop)
		return &models.CancelBookingResponse{Booking: models.FromDomainBooking(booking)}, nil
	}

	// 4. Отменяем
	now := s.timeProvider.Now().UTC()
	changed, err := s.bookingRepo.MarkCancelled(ctx, bookingID, actor.Email, now)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s disappeared during cancellation", bookingID)
			s.observe(metrics.OutcomeNoop)
			return &models.CancelBookingResponse{}, nil
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		s.observe(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: Cancel - mark cancelled: %v", ErrInternal, err)
	}
	if !changed {
		s.logger.Info("Cancel: booking id=%s was cancelled concurrently", bookingID)
		s.observe(metrics.OutcomeNoop)
		return &models.CancelBookingResponse{Booking: models.FromDomainBooking(booking)}, nil
	}

	booking.Status = domain.StatusCancelled
	booking.CancelledAt = &now
	booking.CancelledBy = &actor.Email

	resp := &models.CancelBookingResponse{
		Booking:   models.FromDomainBooking(booking),
		Cancelled: true,
	}

	// 5. Уведомление (best-effort)
	if err := s.notifier.BookingCancelled(ctx, booking); err != nil {
		resp.NotificationWarning = err.Error()
	}

	s.logger.Info("Cancel: booking id=%s cancelled by %s", bookingID, actor.Email)
	s.observe(metrics.OutcomeSuccess)
	return resp, nil
}

// canAccess владелец бронирования или администратор
func canAccess(actor *domain.User, booking *domain.Booking) bool {
	return actor.IsAdmin() || booking.BelongsTo(actor.Email)
}

func (s *Service) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveBooking(operationCancel, outcome)
	}
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
