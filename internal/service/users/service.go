package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	userRepo "github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/user"
	"github.com/m04kA/SMC-DutyRosterService/internal/service/users/models"
	"github.com/m04kA/SMC-DutyRosterService/pkg/ptr"
)

// Service сервис пользователей: администрирование, аутентификация, проверка прав
type Service struct {
	userRepo UserRepository
	validate *validator.Validate
	logger   Logger
	hashCost int
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		validate: validator.New(),
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

// Actor возвращает активного пользователя, от имени которого выполняется операция
// Неизвестный или отключенный пользователь получает ErrAccessDenied
func (s *Service) Actor(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Actor: unknown user %s", email)
			return nil, fmt.Errorf("%w: unknown user", ErrAccessDenied)
		}
		s.logger.Error("Actor: repository error for %s: %v", email, err)
		return nil, fmt.Errorf("%w: Actor - repository error: %v", ErrInternal, err)
	}

	if !user.CanAct() {
		s.logger.Warn("Actor: user %s is inactive", email)
		return nil, fmt.Errorf("%w: user is inactive", ErrAccessDenied)
	}

	return user, nil
}

// Admin возвращает активного администратора или ErrAccessDenied
func (s *Service) Admin(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.Actor(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		s.logger.Warn("Admin: user %s is not an admin", email)
		return nil, fmt.Errorf("%w: admin role required", ErrAccessDenied)
	}
	return user, nil
}

// Authenticate проверяет email и пароль
func (s *Service) Authenticate(ctx context.Context, req *models.LoginRequest) (*models.UserResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Authenticate: unknown user %s", req.Email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Authenticate: repository error for %s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Authenticate - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Authenticate: wrong password for %s", req.Email)
		return nil, ErrInvalidCredentials
	}

	if !user.CanAct() {
		s.logger.Warn("Authenticate: user %s is inactive", req.Email)
		return nil, fmt.Errorf("%w: user is inactive", ErrAccessDenied)
	}

	s.logger.Info("Authenticate: user %s logged in", user.Email)
	return models.FromDomainUser(user), nil
}

// Create создает пользователя; доступно только администратору
func (s *Service) Create(ctx context.Context, actorEmail string, req *models.CreateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("Create: creating user %s by %s", req.Email, actorEmail)

	if _, err := s.Admin(ctx, actorEmail); err != nil {
		return nil, err
	}

	user, err := s.create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: user %s created with role %s", user.Email, user.Role)
	return models.FromDomainUser(user), nil
}

// List возвращает всех пользователей; доступно только администратору
func (s *Service) List(ctx context.Context, actorEmail string) (*models.UserListResponse, error) {
	if _, err := s.Admin(ctx, actorEmail); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUserList(users), nil
}

// SetActive включает или отключает пользователя; администратор не может отключить сам себя
func (s *Service) SetActive(ctx context.Context, actorEmail, email string, active bool) error {
	s.logger.Info("SetActive: %s sets active=%t for %s", actorEmail, active, email)

	admin, err := s.Admin(ctx, actorEmail)
	if err != nil {
		return err
	}

	if !active && admin.Email == domain.NormalizeEmail(email) {
		s.logger.Warn("SetActive: admin %s tried to deactivate themselves", actorEmail)
		return fmt.Errorf("%w: cannot deactivate yourself", ErrInvalidInput)
	}

	if err := s.userRepo.SetActive(ctx, email, active); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("SetActive: repository error for %s: %v", email, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	return nil
}

// EnsureAdmin создает администратора, если пользователя с таким email ещё нет
// Возвращает true, если пользователь был создан
func (s *Service) EnsureAdmin(ctx context.Context, email, name, password string) (bool, error) {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return false, fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	_, err = s.create(ctx, &models.CreateUserRequest{
		Email:    email,
		Name:     name,
		Password: password,
		Role:     string(domain.RoleAdmin),
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("EnsureAdmin: admin %s created", email)
	return true, nil
}

func (s *Service) create(ctx context.Context, req *models.CreateUserRequest) (*domain.User, error) {
	req.Email = domain.NormalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("create: invalid request for %s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", ErrInvalidInput, err)
	}

	role := domain.RoleUser
	if req.Role != "" {
		role = domain.UserRole(req.Role)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:              req.Email,
		Name:               req.Name,
		Phone:              strings.TrimSpace(req.Phone),
		PasswordHash:       string(hash),
		Role:               role,
		Active:             true,
		EmailNotifications: ptr.Deref(req.EmailNotifications, true),
		SMSNotifications:   req.SMSNotifications,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserExists) {
			s.logger.Warn("create: user %s already exists", req.Email)
			return nil, ErrUserExists
		}
		s.logger.Error("create: repository error for %s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: create - repository error: %v", ErrInternal, err)
	}

	return user, nil
}
