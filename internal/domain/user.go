package domain

import (
	"strings"
	"time"
)

// UserRole represents the role of a member
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// IsValid returns true for known roles
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a member of the organization. Email is the natural key
type User struct {
	ID           string
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	Role         UserRole
	Active       bool

	EmailNotifications bool
	SMSNotifications   bool

	CreatedAt time.Time
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanAct returns true if the user may perform booking operations
func (u *User) CanAct() bool {
	return u.Active
}

// NormalizeEmail приводит email к каноничному виду (ключ пользователя)
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
