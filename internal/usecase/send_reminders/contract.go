package send_reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// UserRepository источник настроек уведомлений владельца
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Calendar вычисляет "сегодня" в часовом поясе организации
type Calendar interface {
	Today(now time.Time) time.Time
}

// ReminderNotifier публикует SMS-напоминание
type ReminderNotifier interface {
	Reminder(ctx context.Context, b *domain.Booking, u *domain.User) error
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
