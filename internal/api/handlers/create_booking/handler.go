package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректный слот: ожидается slotDate YYYY-MM-DD и slotTime HH:MM-HH:MM"
	msgMissingUser        = "отсутствует email пользователя"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actorEmail)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("POST /bookings - Failed to create booking: actor=%s, slot=%s %s, error=%v",
				actorEmail, req.SlotDate, req.SlotTime, err)
		} else {
			h.logger.Warn("POST /bookings - Booking rejected: actor=%s, slot=%s %s, status=%d, error=%v",
				actorEmail, req.SlotDate, req.SlotTime, status, err)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, user=%s", result.Booking.ID, result.Booking.UserEmail)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
