package cancel_booking

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
)

const (
	msgMissingUser = "отсутствует email пользователя"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Повторная отмена отвечает 200 с cancelled=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.Cancel(r.Context(), bookingID, actorEmail)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		h.logger.Warn("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%s, user=%s, status=%d, error=%v",
			bookingID, actorEmail, status, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - booking_id=%s, user=%s, cancelled=%t",
		bookingID, actorEmail, result.Cancelled)
	handlers.RespondJSON(w, http.StatusOK, result)
}
