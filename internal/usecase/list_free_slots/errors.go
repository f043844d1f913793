package list_free_slots

import "github.com/m04kA/SMC-DutyRosterService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewKindError(domain.ErrValidation, "list_free_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.NewKindError(domain.ErrStoreUnavailable, "list_free_slots: internal error")
)
