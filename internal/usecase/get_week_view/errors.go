package get_week_view

import "github.com/m04kA/SMC-DutyRosterService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewKindError(domain.ErrValidation, "get_week_view: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.NewKindError(domain.ErrStoreUnavailable, "get_week_view: internal error")
)
