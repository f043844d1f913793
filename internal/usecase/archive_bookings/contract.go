package archive_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// BookingArchiver переносит старые бронирования в архив
type BookingArchiver interface {
	MoveToArchive(ctx context.Context, olderThan time.Time) (int, error)
}

// AdminProvider проверяет, что ручной запуск выполняет администратор
type AdminProvider interface {
	Admin(ctx context.Context, email string) (*domain.User, error)
}

// Calendar вычисляет "сегодня" в часовом поясе организации
type Calendar interface {
	Today(now time.Time) time.Time
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
