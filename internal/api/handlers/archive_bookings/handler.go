package archive_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
	archiveBookings "github.com/m04kA/SMC-DutyRosterService/internal/usecase/archive_bookings"
)

const (
	msgMissingUser    = "отсутствует email пользователя"
	msgArchiveStopped = "архивирование прервано, перенесенные записи остаются в архиве"
)

type Handler struct {
	useCase ArchiveBookingsUseCase
	logger  Logger
}

func NewHandler(useCase ArchiveBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/archive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &archiveBookings.Request{ActorEmail: actorEmail})
	if err != nil {
		// Частичный перенос: сообщаем число уже перенесенных записей
		if result != nil {
			h.logger.Error("POST /admin/archive - Stopped after %d bookings: %v", result.Moved, err)
			resp := FromUseCaseResponse(result)
			resp.Error = msgArchiveStopped
			handlers.RespondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		status := handlers.RespondDomainError(w, err)
		h.logger.Warn("POST /admin/archive - Failed: actor=%s, status=%d, error=%v", actorEmail, status, err)
		return
	}

	h.logger.Info("POST /admin/archive - Archived %d bookings", result.Moved)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
