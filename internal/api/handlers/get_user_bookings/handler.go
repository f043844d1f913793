package get_user_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/bookings/models"
)

const (
	msgInvalidFutureOnly = "некорректный параметр futureOnly"
	msgMissingUser       = "отсутствует email пользователя"
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

// Handle GET /api/v1/users/{email}/bookings?futureOnly=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userEmail := mux.Vars(r)["email"]

	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	futureOnly := false
	if raw := r.URL.Query().Get("futureOnly"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /users/{email}/bookings - Invalid futureOnly: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidFutureOnly)
			return
		}
		futureOnly = parsed
	}

	result, err := h.service.GetUserBookings(r.Context(), &models.GetUserBookingsRequest{
		ActorEmail: actorEmail,
		UserEmail:  userEmail,
		FutureOnly: futureOnly,
	})
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		h.logger.Warn("GET /users/{email}/bookings - Failed: user=%s, actor=%s, status=%d, error=%v",
			userEmail, actorEmail, status, err)
		return
	}

	h.logger.Info("GET /users/{email}/bookings - Found %d bookings for %s", len(result.Bookings), userEmail)
	handlers.RespondJSON(w, http.StatusOK, result)
}
