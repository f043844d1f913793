package users

import (
	"errors"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = domain.NewKindError(domain.ErrNotFound, "users.service: user not found")

	// ErrUserExists возвращается при попытке создать пользователя с занятым email
	ErrUserExists = errors.New("users.service: user already exists")

	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("users.service: invalid credentials")

	// ErrAccessDenied возвращается, если пользователь неизвестен, отключен или не администратор
	ErrAccessDenied = domain.NewKindError(domain.ErrAccessDenied, "users.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewKindError(domain.ErrValidation, "users.service: invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = domain.NewKindError(domain.ErrStoreUnavailable, "users.service: internal error")
)
