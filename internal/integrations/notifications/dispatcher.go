package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// Dispatcher отправляет события о бронированиях
// Доставка best-effort: ошибка возвращается вызывающему как предупреждение
type Dispatcher struct {
	publisher Publisher
	users     UserReader
	logger    Logger
	timeout   time.Duration
	now       func() time.Time
}

// NewDispatcher создает диспетчер уведомлений; timeout 0 - без ограничения
func NewDispatcher(publisher Publisher, users UserReader, logger Logger, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		users:     users,
		logger:    logger,
		timeout:   timeout,
		now:       time.Now,
	}
}

// BookingCreated уведомляет о новом бронировании
func (d *Dispatcher) BookingCreated(ctx context.Context, b *domain.Booking) error {
	return d.dispatch(ctx, RoutingKeyBookingCreated, b)
}

// BookingCancelled уведомляет об отмене бронирования
func (d *Dispatcher) BookingCancelled(ctx context.Context, b *domain.Booking) error {
	return d.dispatch(ctx, RoutingKeyBookingCancelled, b)
}

// Reminder напоминает по SMS о завтрашнем дежурстве
// Получатель передается явно: вызывающий уже проверил его настройки
func (d *Dispatcher) Reminder(ctx context.Context, b *domain.Booking, u *domain.User) error {
	event := newBookingEvent(b, u, d.now())
	event.UserPhone = u.Phone
	event.NotifyEmail = false

	if err := d.publish(ctx, RoutingKeyReminder, event); err != nil {
		d.logger.Warn("Notification %s for booking %s failed: %v", RoutingKeyReminder, b.ID, err)
		return err
	}

	d.logger.Info("Notification %s for booking %s published", RoutingKeyReminder, b.ID)
	return nil
}

// FreeSlots оповещает администраторов о незанятых дежурствах
func (d *Dispatcher) FreeSlots(ctx context.Context, slots []domain.ResolvedSlot, recipients []string) error {
	event := newFreeSlotsEvent(slots, recipients, d.now())
	if err := d.publish(ctx, RoutingKeyFreeSlots, event); err != nil {
		d.logger.Warn("Notification %s failed: %v", RoutingKeyFreeSlots, err)
		return err
	}

	d.logger.Info("Notification %s published: %d slots", RoutingKeyFreeSlots, len(event.Slots))
	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, key string, b *domain.Booking) error {
	recipient := d.recipient(ctx, b.UserEmail)
	event := newBookingEvent(b, recipient, d.now())

	if err := d.publish(ctx, key, event); err != nil {
		d.logger.Warn("Notification %s for booking %s failed: %v", key, b.ID, err)
		return err
	}

	d.logger.Info("Notification %s for booking %s published (email=%t, sms=%t)",
		key, b.ID, event.NotifyEmail, event.NotifySMS)
	return nil
}

func (d *Dispatcher) publish(ctx context.Context, key string, event any) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.publisher.PublishJSON(ctx, key, event); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, key, err)
	}
	return nil
}

// recipient возвращает получателя; если его нет, используются настройки по умолчанию
func (d *Dispatcher) recipient(ctx context.Context, email string) *domain.User {
	if d.users == nil {
		return nil
	}
	u, err := d.users.GetByEmail(ctx, email)
	if err != nil {
		d.logger.Warn("Notification preferences for %s unavailable: %v", email, err)
		return nil
	}
	return u
}
