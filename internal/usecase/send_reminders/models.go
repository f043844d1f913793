package send_reminders

import "time"

// Result итог ежедневной рассылки напоминаний
type Result struct {
	Date    time.Time // Дата дежурств, о которых напоминали
	Sent    int
	Skipped int // Владелец отключил SMS, не указал телефон или не найден
	Failed  int // Ошибка чтения владельца или публикации
}
