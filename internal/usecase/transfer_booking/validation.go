package transfer_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	if domain.NormalizeEmail(req.NewUserEmail) == "" {
		return fmt.Errorf("%w: userEmail is required", ErrInvalidInput)
	}

	return nil
}
