package create_booking

import (
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ActorEmail string          // Кто выполняет операцию
	UserEmail  string          // Для кого бронируется слот; пусто - для себя
	SlotDate   time.Time       // Дата дежурства
	SlotTime   types.TimeRange // Время дежурства, например "17:00-20:00"
	Override   bool            // Администратор заменяет текущего владельца слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking             *domain.Booking // Новое подтвержденное бронирование
	Replaced            *domain.Booking // Отмененное бронирование при замене, иначе nil
	NotificationWarning string          // Непустое, если уведомление не отправлено
}
