package create_booking

import "github.com/m04kA/SMC-DutyRosterService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewKindError(domain.ErrValidation, "create_booking: invalid input data")

	// ErrSlotNotInTemplate возвращается, когда в этот день недели нет такого дежурства
	ErrSlotNotInTemplate = domain.NewKindError(domain.ErrValidation, "create_booking: slot is not part of the weekly template")

	// ErrInvalidUser возвращается, когда пользователь бронирования не найден или отключен
	ErrInvalidUser = domain.NewKindError(domain.ErrValidation, "create_booking: user not found or inactive")

	// ErrAccessDenied возвращается, когда пользователь бронирует слот за другого, не будучи администратором
	ErrAccessDenied = domain.NewKindError(domain.ErrAccessDenied, "create_booking: only admins may book for other users")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.NewKindError(domain.ErrStoreUnavailable, "create_booking: internal error")
)
