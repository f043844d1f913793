package list_users

import (
	"net/http"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
)

const msgMissingUser = "отсутствует email пользователя"

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

// Handle GET /api/v1/admin/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.List(r.Context(), actorEmail)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		h.logger.Warn("GET /admin/users - Failed: actor=%s, status=%d, error=%v", actorEmail, status, err)
		return
	}

	h.logger.Info("GET /admin/users - Users retrieved: count=%d", len(result.Users))
	handlers.RespondJSON(w, http.StatusOK, result)
}
