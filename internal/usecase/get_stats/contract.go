package get_stats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	listFreeSlots "github.com/m04kA/SMC-DutyRosterService/internal/usecase/list_free_slots"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindAll(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// UserLister источник списка пользователей
type UserLister interface {
	List(ctx context.Context) ([]*domain.User, error)
}

// AdminProvider проверяет, что статистику запрашивает администратор
type AdminProvider interface {
	Admin(ctx context.Context, email string) (*domain.User, error)
}

// Calendar вычисляет "сегодня" в часовом поясе организации
type Calendar interface {
	Today(now time.Time) time.Time
}

// FreeSlotFinder поиск свободных дежурств на горизонте
type FreeSlotFinder interface {
	Execute(ctx context.Context, req *listFreeSlots.Request) (*listFreeSlots.Response, error)
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
