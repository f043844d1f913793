package notifications

import (
	"context"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// Publisher публикует событие с ключом маршрутизации
type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

// UserReader источник настроек уведомлений пользователя
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
