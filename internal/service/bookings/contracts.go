package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	FindByUser(ctx context.Context, email string, from *time.Time) ([]*domain.Booking, error)
	FindAll(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	MarkCancelled(ctx context.Context, id string, cancelledBy string, at time.Time) (bool, error)
}

// ActorProvider проверяет пользователя, от имени которого выполняется операция
type ActorProvider interface {
	Actor(ctx context.Context, email string) (*domain.User, error)
	Admin(ctx context.Context, email string) (*domain.User, error)
}

// Notifier отправляет уведомление об отмене
type Notifier interface {
	BookingCancelled(ctx context.Context, b *domain.Booking) error
}

// Calendar вычисляет "сегодня" в часовом поясе организации
type Calendar interface {
	Today(now time.Time) time.Time
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics счетчик бизнес-операций
type Metrics interface {
	ObserveBooking(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
