package list_free_slots

import (
	"context"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	listFreeSlots "github.com/m04kA/SMC-DutyRosterService/internal/usecase/list_free_slots"
)

type ListFreeSlotsUseCase interface {
	Execute(ctx context.Context, req *listFreeSlots.Request) (*listFreeSlots.Response, error)
}

// AdminProvider проверка роли администратора
type AdminProvider interface {
	Admin(ctx context.Context, email string) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
