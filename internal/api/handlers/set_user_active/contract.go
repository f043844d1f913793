package set_user_active

import "context"

type UserService interface {
	SetActive(ctx context.Context, actorEmail, email string, active bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
