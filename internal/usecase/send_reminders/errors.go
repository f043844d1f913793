package send_reminders

import "github.com/m04kA/SMC-DutyRosterService/internal/domain"

var (
	// ErrInternal возвращается, если бронирования на завтра не удалось прочитать
	ErrInternal = domain.NewKindError(domain.ErrStoreUnavailable, "send_reminders: internal error")
)
