package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

// BookingStore хранилище бронирований в памяти
// Уникальность подтвержденного слота проверяется под мьютексом, как частичный индекс в PostgreSQL
type BookingStore struct {
	mu        sync.RWMutex
	bookings  map[string]*domain.Booking
	confirmed map[domain.SlotKey]string // слот -> ID подтвержденного бронирования
	archive   map[string]*domain.Booking
	now       func() time.Time
}

// NewBookingStore создает пустое хранилище
func NewBookingStore() *BookingStore {
	return &BookingStore{
		bookings:  make(map[string]*domain.Booking),
		confirmed: make(map[domain.SlotKey]string),
		archive:   make(map[string]*domain.Booking),
		now:       time.Now,
	}
}

// FindConfirmed возвращает подтвержденное бронирование слота или nil
func (s *BookingStore) FindConfirmed(ctx context.Context, date time.Time, slotTime types.TimeRange) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := domain.SlotKey{Date: date.Format(domain.DateFormat), Time: slotTime.String()}
	id, ok := s.confirmed[key]
	if !ok {
		return nil, nil
	}
	return clone(s.bookings[id]), nil
}

// FindConfirmedInRange возвращает подтвержденные бронирования с from по to включительно
func (s *BookingStore) FindConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fromKey, toKey := from.Format(domain.DateFormat), to.Format(domain.DateFormat)
	result := make([]*domain.Booking, 0)
	for key, id := range s.confirmed {
		if key.Date >= fromKey && key.Date <= toKey {
			result = append(result, clone(s.bookings[id]))
		}
	}
	sortBySlot(result)

	return result, nil
}

// InsertConfirmed сохраняет подтвержденное бронирование
func (s *BookingStore) InsertConfirmed(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := b.SlotKey()
	if _, taken := s.confirmed[key]; taken {
		return nil, fmt.Errorf("%w: %s %s", booking.ErrConflict, key.Date, key.Time)
	}

	b.ID = uuid.NewString()
	b.Status = domain.StatusConfirmed
	b.CreatedAt = s.now()
	b.CancelledAt = nil
	b.CancelledBy = nil

	s.bookings[b.ID] = clone(b)
	s.confirmed[key] = b.ID

	return b, nil
}

// MarkCancelled отменяет бронирование; false без ошибки, если оно уже отменено
func (s *BookingStore) MarkCancelled(ctx context.Context, id string, cancelledBy string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return false, booking.ErrBookingNotFound
	}
	if b.IsCancelled() {
		return false, nil
	}

	b.Status = domain.StatusCancelled
	b.CancelledAt = &at
	b.CancelledBy = &cancelledBy
	delete(s.confirmed, b.SlotKey())

	return true, nil
}

// GetByID получает бронирование по ID
func (s *BookingStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return clone(b), nil
}

// FindByUser возвращает подтвержденные бронирования пользователя по возрастанию даты
func (s *BookingStore) FindByUser(ctx context.Context, email string, from *time.Time) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fromKey string
	if from != nil {
		fromKey = from.Format(domain.DateFormat)
	}

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if !b.IsConfirmed() || !b.BelongsTo(email) {
			continue
		}
		if from != nil && b.SlotKey().Date < fromKey {
			continue
		}
		result = append(result, clone(b))
	}
	sortBySlot(result)

	return result, nil
}

// FindAll возвращает бронирования всех пользователей с фильтрацией
func (s *BookingStore) FindAll(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		date := b.SlotKey().Date
		if filter.StartDate != nil && date < filter.StartDate.Format(domain.DateFormat) {
			continue
		}
		if filter.EndDate != nil && date > filter.EndDate.Format(domain.DateFormat) {
			continue
		}
		result = append(result, clone(b))
	}
	sortBySlot(result)

	return result, nil
}

// MoveToArchive переносит бронирования со slot_date раньше olderThan в архив
func (s *BookingStore) MoveToArchive(ctx context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := olderThan.Format(domain.DateFormat)
	moved := 0
	for id, b := range s.bookings {
		if b.SlotKey().Date >= cutoff {
			continue
		}
		if err := ctx.Err(); err != nil {
			return moved, fmt.Errorf("%w: MoveToArchive - %v", booking.ErrTransaction, err)
		}

		s.archive[id] = b
		delete(s.bookings, id)
		if b.IsConfirmed() {
			delete(s.confirmed, b.SlotKey())
		}
		moved++
	}

	return moved, nil
}

// Archived возвращает архивные бронирования
func (s *BookingStore) Archived() []*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0, len(s.archive))
	for _, b := range s.archive {
		result = append(result, clone(b))
	}
	sortBySlot(result)
	return result
}

func clone(b *domain.Booking) *domain.Booking {
	if b == nil {
		return nil
	}
	c := *b
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		c.CancelledAt = &at
	}
	if b.CancelledBy != nil {
		by := *b.CancelledBy
		c.CancelledBy = &by
	}
	return &c
}

func sortBySlot(bookings []*domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		ki, kj := bookings[i].SlotKey(), bookings[j].SlotKey()
		if ki.Date != kj.Date {
			return ki.Date < kj.Date
		}
		if ki.Time != kj.Time {
			return ki.Time < kj.Time
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
}
