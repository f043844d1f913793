package get_week_view

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetWeekViewUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekViewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/weeks/{date}/slots
// date - любая дата недели, YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]
	if dateStr == "" {
		h.logger.Warn("GET /weeks/{date}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr)
	if err != nil {
		h.logger.Warn("GET /weeks/{date}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		h.logger.Error("GET /weeks/{date}/slots - Failed: date=%s, status=%d, error=%v", dateStr, status, err)
		return
	}

	h.logger.Info("GET /weeks/{date}/slots - Week view retrieved: anchor=%s, slots=%d",
		result.WeekAnchor.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
