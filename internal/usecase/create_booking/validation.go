package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if domain.NormalizeEmail(req.ActorEmail) == "" {
		return fmt.Errorf("%w: actor email is required", ErrInvalidInput)
	}

	if req.SlotDate.IsZero() {
		return fmt.Errorf("%w: slotDate is required", ErrInvalidInput)
	}

	if req.SlotTime.IsZero() {
		return fmt.Errorf("%w: slotTime is required", ErrInvalidInput)
	}

	return nil
}

// joinWarnings объединяет предупреждения уведомлений
func joinWarnings(errs ...error) string {
	var parts []string
	for _, err := range errs {
		if err != nil {
			parts = append(parts, err.Error())
		}
	}
	return strings.Join(parts, "; ")
}
