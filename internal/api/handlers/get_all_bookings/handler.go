package get_all_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
)

const (
	msgInvalidParams = "некорректные параметры запроса: даты from/to в формате YYYY-MM-DD"
	msgMissingUser   = "отсутствует email пользователя"
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

// Handle GET /api/v1/admin/bookings
// Query params: status, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(actorEmail, query.Get("status"), query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetAllBookings(r.Context(), serviceReq)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		h.logger.Warn("GET /admin/bookings - Failed: actor=%s, status=%d, error=%v", actorEmail, status, err)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
