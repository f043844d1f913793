package models

import (
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// CreateUserRequest запрос на создание пользователя администратором
type CreateUserRequest struct {
	Email              string `json:"email" validate:"required,email,max=320"`
	Name               string `json:"name" validate:"required,max=200"`
	Phone              string `json:"phone" validate:"omitempty,max=32"`
	Password           string `json:"password" validate:"required,min=8,max=72"`
	Role               string `json:"role" validate:"omitempty,oneof=user admin"`
	EmailNotifications *bool  `json:"emailNotifications,omitempty"`
	SMSNotifications   bool   `json:"smsNotifications"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse данные пользователя без хеша пароля
type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone,omitempty"`
	Role               string    `json:"role"`
	Active             bool      `json:"active"`
	EmailNotifications bool      `json:"emailNotifications"`
	SMSNotifications   bool      `json:"smsNotifications"`
	CreatedAt          time.Time `json:"createdAt"`
}

// UserListResponse ответ со списком пользователей
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Phone:              u.Phone,
		Role:               string(u.Role),
		Active:             u.Active,
		EmailNotifications: u.EmailNotifications,
		SMSNotifications:   u.SMSNotifications,
		CreatedAt:          u.CreatedAt,
	}
}

// FromDomainUserList конвертирует список domain моделей в DTO
func FromDomainUserList(users []*domain.User) *UserListResponse {
	resp := &UserListResponse{Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, *FromDomainUser(u))
	}
	return resp
}
