package login

import (
	"context"

	"github.com/m04kA/SMC-DutyRosterService/internal/service/users/models"
)

type UserService interface {
	Authenticate(ctx context.Context, req *models.LoginRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
