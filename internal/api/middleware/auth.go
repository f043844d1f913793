package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// HeaderUserEmail заголовок, который выставляет gateway после аутентификации
const HeaderUserEmail = "X-User-Email"

type contextKey string

const userEmailKey contextKey = "userEmail"

// Auth кладет email пользователя из заголовка в контекст
// Запрос без заголовка получает 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := domain.NormalizeEmail(r.Header.Get(HeaderUserEmail))
		if email == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+HeaderUserEmail)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserEmail(r.Context(), email)))
	})
}

// WithUserEmail возвращает контекст с email пользователя
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey, email)
}

// GetUserEmail извлекает email пользователя из контекста
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailKey).(string)
	return email, ok && email != ""
}
