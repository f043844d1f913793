package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/users"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredentials = "неверный email или пароль"
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

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Authenticate(r.Context(), &req)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			h.logger.Warn("POST /auth/login - Invalid credentials: email=%s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
			return
		}
		status := handlers.RespondDomainError(w, err)
		h.logger.Warn("POST /auth/login - Failed: email=%s, status=%d, error=%v", req.Email, status, err)
		return
	}

	h.logger.Info("POST /auth/login - User logged in: email=%s", result.Email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
