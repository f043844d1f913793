package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/user"
)

// UserStore хранилище пользователей в памяти
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User // email -> user
}

// NewUserStore создает пустое хранилище пользователей
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*domain.User)}
}

func (s *UserStore) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = domain.NormalizeEmail(u.Email)
	if _, exists := s.users[u.Email]; exists {
		return nil, fmt.Errorf("%w: %s", user.ErrUserExists, u.Email)
	}

	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()

	c := *u
	s.users[u.Email] = &c

	return u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[domain.NormalizeEmail(email)]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		c := *u
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].Email < result[j].Email
	})

	return result, nil
}

func (s *UserStore) SetActive(ctx context.Context, email string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[domain.NormalizeEmail(email)]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Active = active

	return nil
}
