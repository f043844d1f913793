package archive_bookings

import "time"

// Request модель запроса ручного запуска архивирования
type Request struct {
	ActorEmail string
}

// Response результат архивирования
// При частичном сбое Moved содержит число уже перенесенных записей
type Response struct {
	Cutoff time.Time // Бронирования с датой раньше Cutoff переносятся
	Moved  int
}
