package list_free_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// CalendarRules правила блокировки дат и "сегодня" организации
type CalendarRules interface {
	BlockReason(d time.Time) domain.BlockReason
	Today(now time.Time) time.Time
}

// SlotTemplate недельный шаблон дежурств
type SlotTemplate interface {
	All() []domain.SlotDefinition
}

// UserLister источник списка администраторов для оповещения
type UserLister interface {
	List(ctx context.Context) ([]*domain.User, error)
}

// AlertNotifier публикует оповещение о свободных слотах
type AlertNotifier interface {
	FreeSlots(ctx context.Context, slots []domain.ResolvedSlot, recipients []string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
