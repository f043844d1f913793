package transfer_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	FindConfirmed(ctx context.Context, date time.Time, slotTime types.TimeRange) (*domain.Booking, error)
	InsertConfirmed(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	MarkCancelled(ctx context.Context, id string, cancelledBy string, at time.Time) (bool, error)
}

// UserRepository источник данных о новом владельце
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AdminProvider проверяет, что операцию выполняет активный администратор
type AdminProvider interface {
	Admin(ctx context.Context, email string) (*domain.User, error)
}

// CalendarRules календарные ограничения (праздники, межсезонье)
type CalendarRules interface {
	BlockReason(d time.Time) domain.BlockReason
}

// Notifier отправляет уведомления о бронированиях
type Notifier interface {
	BookingCreated(ctx context.Context, b *domain.Booking) error
	BookingCancelled(ctx context.Context, b *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
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
