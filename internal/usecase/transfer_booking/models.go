package transfer_booking

import "github.com/m04kA/SMC-DutyRosterService/internal/domain"

// Request модель запроса на перенос бронирования на другого пользователя
type Request struct {
	ActorEmail   string // Администратор
	BookingID    string // Переносимое бронирование
	NewUserEmail string // Новый владелец слота
}

// Response модель ответа
type Response struct {
	Booking             *domain.Booking // Новое бронирование
	Original            *domain.Booking // Исходное бронирование, отмененное администратором
	NotificationWarning string          // Непустое, если уведомление не отправлено
}
