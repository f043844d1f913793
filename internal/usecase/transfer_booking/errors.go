package transfer_booking

import "github.com/m04kA/SMC-DutyRosterService/internal/domain"

var (
	// ErrBookingNotFound возвращается, когда переносимое бронирование не найдено
	ErrBookingNotFound = domain.NewKindError(domain.ErrNotFound, "transfer_booking: booking not found")

	// ErrNotConfirmed возвращается, когда бронирование уже отменено
	ErrNotConfirmed = domain.NewKindError(domain.ErrValidation, "transfer_booking: booking is not confirmed")

	// ErrSameUser возвращается при переносе бронирования на его же владельца
	ErrSameUser = domain.NewKindError(domain.ErrValidation, "transfer_booking: booking already belongs to this user")

	// ErrInvalidUser возвращается, когда новый владелец не найден или отключен
	ErrInvalidUser = domain.NewKindError(domain.ErrValidation, "transfer_booking: user not found or inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewKindError(domain.ErrValidation, "transfer_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.NewKindError(domain.ErrStoreUnavailable, "transfer_booking: internal error")
)
