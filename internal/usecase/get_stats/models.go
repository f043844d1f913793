package get_stats

import "time"

// FreeSlotDays горизонт подсчета свободных дежурств, начиная с сегодня
const FreeSlotDays = 28

// Request модель запроса статистики
type Request struct {
	ActorEmail string
}

// Response сводка для панели администратора
type Response struct {
	Today          time.Time
	ActiveUsers    int
	FutureBookings int // Подтвержденные с датой не раньше сегодня
	MonthBookings  int // Подтвержденные с датой в текущем календарном месяце
	FreeSlots      int // Свободные незаблокированные слоты на FreeSlotDays дней
	Degraded       bool
}
