package create_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/users"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует email пользователя"
	msgUserExists         = "пользователь с таким email уже существует"
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

// Handle POST /api/v1/admin/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req models.CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actorEmail, &req)
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			h.logger.Warn("POST /admin/users - User already exists: email=%s", req.Email)
			handlers.RespondError(w, http.StatusConflict, msgUserExists)
			return
		}
		status := handlers.RespondDomainError(w, err)
		h.logger.Warn("POST /admin/users - Failed: actor=%s, status=%d, error=%v", actorEmail, status, err)
		return
	}

	h.logger.Info("POST /admin/users - User created: email=%s, role=%s", result.Email, result.Role)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
