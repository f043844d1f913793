package get_week_view

import (
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// Request модель запроса недельного расписания
type Request struct {
	Date time.Time // Любая дата недели
}

// Response модель ответа с состоянием слотов недели
type Response struct {
	WeekAnchor time.Time          // Понедельник недели
	Slots      []domain.SlotState // В порядке шаблона, не по дате
}
