package get_stats

import (
	"net/http"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
	getStats "github.com/m04kA/SMC-DutyRosterService/internal/usecase/get_stats"
)

const msgMissingUser = "отсутствует email пользователя"

type Handler struct {
	useCase GetStatsUseCase
	logger  Logger
}

func NewHandler(useCase GetStatsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getStats.Request{ActorEmail: actorEmail})
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		h.logger.Warn("GET /admin/stats - Failed: actor=%s, status=%d, error=%v", actorEmail, status, err)
		return
	}

	h.logger.Info("GET /admin/stats - Success: actor=%s", actorEmail)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
