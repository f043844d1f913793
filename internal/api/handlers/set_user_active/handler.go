package set_user_active

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса: ожидается {\"active\": true|false}"
	msgMissingUser        = "отсутствует email пользователя"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/users/{email}/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	email := domain.NormalizeEmail(mux.Vars(r)["email"])

	var req SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Active == nil {
		h.logger.Warn("PATCH /admin/users/{email}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetActive(r.Context(), actorEmail, email, *req.Active); err != nil {
		status := handlers.RespondDomainError(w, err)
		h.logger.Warn("PATCH /admin/users/{email}/active - Failed: actor=%s, email=%s, status=%d, error=%v",
			actorEmail, email, status, err)
		return
	}

	h.logger.Info("PATCH /admin/users/{email}/active - User %s active=%t", email, *req.Active)
	handlers.RespondJSON(w, http.StatusOK, SetActiveResponse{Email: email, Active: *req.Active})
}
