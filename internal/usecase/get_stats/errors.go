package get_stats

import "github.com/m04kA/SMC-DutyRosterService/internal/domain"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.NewKindError(domain.ErrStoreUnavailable, "get_stats: internal error")
)
