package get_week_view

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// FindConfirmedInRange подтвержденные бронирования с from по to включительно
	FindConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// CalendarRules правила блокировки дат
type CalendarRules interface {
	BlockReason(d time.Time) domain.BlockReason
}

// SlotTemplate недельный шаблон дежурств
type SlotTemplate interface {
	Resolve(anchor time.Time) []domain.ResolvedSlot
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
