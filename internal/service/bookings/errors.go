package bookings

import "github.com/m04kA/SMC-DutyRosterService/internal/domain"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.NewKindError(domain.ErrNotFound, "bookings.service: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на бронирование
	ErrAccessDenied = domain.NewKindError(domain.ErrAccessDenied, "bookings.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewKindError(domain.ErrValidation, "bookings.service: invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = domain.NewKindError(domain.ErrStoreUnavailable, "bookings.service: internal error")
)
