package archive_bookings

import "github.com/m04kA/SMC-DutyRosterService/internal/domain"

var (
	// ErrInternal возвращается, если архивирование прервано ошибкой хранилища
	ErrInternal = domain.NewKindError(domain.ErrStoreUnavailable, "archive_bookings: internal error")
)
