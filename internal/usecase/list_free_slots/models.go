package list_free_slots

import (
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// Request модель запроса свободных слотов
type Request struct {
	From       time.Time // Первый день горизонта; нулевое значение - сегодня
	Days       int       // Длина горизонта в днях
	BestEffort bool      // Ошибка хранилища дает пустой результат вместо ошибки
}

// Response модель ответа
type Response struct {
	From     time.Time
	To       time.Time             // Последний день горизонта включительно
	Slots    []domain.ResolvedSlot // По возрастанию даты, внутри дня в порядке шаблона
	Degraded bool                  // true, если хранилище было недоступно (только BestEffort)
}

// AlertResult результат ежедневного оповещения
type AlertResult struct {
	Slots      []domain.ResolvedSlot
	Recipients []string
	Degraded   bool
}
