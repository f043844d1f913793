package archive_bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/pkg/metrics"
)

const operationArchive = "archive"

// UseCase use case архивирования бронирований старше срока хранения
type UseCase struct {
	archiver      BookingArchiver
	admins        AdminProvider
	calendar      Calendar
	retentionDays int
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	archiver BookingArchiver,
	admins AdminProvider,
	calendar Calendar,
	retentionDays int,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		archiver:      archiver,
		admins:        admins,
		calendar:      calendar,
		retentionDays: retentionDays,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute запускает архивирование по запросу администратора
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if _, err := uc.admins.Admin(ctx, req.ActorEmail); err != nil {
		return nil, err
	}
	uc.logger.Info("ArchiveBookings: started by %s", req.ActorEmail)
	return uc.Run(ctx)
}

// Run переносит в архив бронирования со slot_date раньше (сегодня - retentionDays)
// Каждая запись переносится отдельно: при ошибке уже перенесенные остаются в архиве,
// а ответ содержит их число вместе с ошибкой
func (uc *UseCase) Run(ctx context.Context) (*Response, error) {
	cutoff := uc.calendar.Today(uc.timeProvider.Now()).AddDate(0, 0, -uc.retentionDays)
	resp := &Response{Cutoff: cutoff}

	moved, err := uc.archiver.MoveToArchive(ctx, cutoff)
	resp.Moved = moved
	if err != nil {
		uc.logger.Error("ArchiveBookings: stopped after %d bookings older than %s: %v",
			moved, cutoff.Format(domain.DateFormat), err)
		uc.observe(metrics.OutcomePartialFailure)
		return resp, fmt.Errorf("%w: moved %d: %v", ErrInternal, moved, err)
	}

	uc.logger.Info("ArchiveBookings: %d bookings older than %s archived", moved, cutoff.Format(domain.DateFormat))
	uc.observe(metrics.OutcomeSuccess)
	return resp, nil
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBooking(operationArchive, outcome)
	}
}
