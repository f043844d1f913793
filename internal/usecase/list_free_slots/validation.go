package list_free_slots

import (
	"fmt"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Days < 1 || req.Days > domain.MaxHorizonDays {
		return fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, domain.MaxHorizonDays)
	}
	return nil
}
