package list_free_slots

import (
	"net/http"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
)

const (
	msgInvalidParams = "некорректные параметры запроса: from в формате YYYY-MM-DD, days - целое число"
	msgMissingUser   = "отсутствует email пользователя"
)

type Handler struct {
	useCase     ListFreeSlotsUseCase
	admins      AdminProvider
	defaultDays int
	logger      Logger
}

func NewHandler(useCase ListFreeSlotsUseCase, admins AdminProvider, defaultDays int, logger Logger) *Handler {
	return &Handler{
		useCase:     useCase,
		admins:      admins,
		defaultDays: defaultDays,
		logger:      logger,
	}
}

// Handle GET /api/v1/admin/free-slots
// Query params: from (YYYY-MM-DD), days (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if _, err := h.admins.Admin(r.Context(), actorEmail); err != nil {
		status := handlers.RespondDomainError(w, err)
		h.logger.Warn("GET /admin/free-slots - Access check failed: actor=%s, status=%d, error=%v", actorEmail, status, err)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(query.Get("from"), query.Get("days"), h.defaultDays)
	if err != nil {
		h.logger.Warn("GET /admin/free-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		h.logger.Warn("GET /admin/free-slots - Failed: status=%d, error=%v", status, err)
		return
	}

	h.logger.Info("GET /admin/free-slots - Free slots retrieved: count=%d, degraded=%t", len(result.Slots), result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
