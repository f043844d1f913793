package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindConfirmed(ctx context.Context, date time.Time, slotTime types.TimeRange) (*domain.Booking, error)
	InsertConfirmed(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	MarkCancelled(ctx context.Context, id string, cancelledBy string, at time.Time) (bool, error)
}

// UserRepository источник данных о пользователе, для которого создается бронирование
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ActorProvider проверяет пользователя, от имени которого выполняется операция
type ActorProvider interface {
	Actor(ctx context.Context, email string) (*domain.User, error)
}

// CalendarRules правила блокировки дат
type CalendarRules interface {
	BlockReason(d time.Time) domain.BlockReason
}

// SlotTemplate недельный шаблон дежурств
type SlotTemplate interface {
	Find(weekday string, tr types.TimeRange) (domain.SlotDefinition, bool)
}

// Notifier отправляет уведомления о бронированиях
type Notifier interface {
	BookingCreated(ctx context.Context, b *domain.Booking) error
	BookingCancelled(ctx context.Context, b *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
// IsAtomic = false означает, что шаги внутри Do не откатываются при ошибке
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	IsAtomic() bool
}

// Metrics счетчик бизнес-операций
type Metrics interface {
	ObserveBooking(operation, outcome string)
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
