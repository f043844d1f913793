package transfer_booking

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
	transferBooking "github.com/m04kA/SMC-DutyRosterService/internal/usecase/transfer_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует email пользователя"
)

type Handler struct {
	useCase TransferBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransferBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/transfer
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req TransferBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/transfer - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transferBooking.Request{
		ActorEmail:   actorEmail,
		BookingID:    bookingID,
		NewUserEmail: req.UserEmail,
	})
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("POST /bookings/{id}/transfer - Transfer failed: booking_id=%s, status=%d, error=%v",
				bookingID, status, err)
		} else {
			h.logger.Warn("POST /bookings/{id}/transfer - Transfer rejected: booking_id=%s, status=%d, error=%v",
				bookingID, status, err)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/transfer - booking_id=%s transferred to %s as %s",
		bookingID, result.Booking.UserEmail, result.Booking.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
