package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// Заголовки, которые выставляет шлюз аутентификации
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserRole  = "X-User-Role"
	HeaderAdminRole = "X-Admin-Role"
)

const msgUnauthorized = "требуется авторизация"

type actorKey struct{}

// Auth требует заголовки пользователя и кладет domain.Actor в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ParseActor(r)
		if !ok {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// OptionalAuth кладет domain.Actor в контекст, если заголовки корректны.
// Для публичных маршрутов: анонимный запрос проходит без пользователя
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor, ok := ParseActor(r); ok {
			r = r.WithContext(WithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}

// ParseActor разбирает заголовки пользователя
// X-Admin-Role обязателен только для роли admin
func ParseActor(r *http.Request) (domain.Actor, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(HeaderUserID)), 10, 64)
	if err != nil || id <= 0 {
		return domain.Actor{}, false
	}

	role := domain.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
	if !domain.IsValidRole(role) {
		return domain.Actor{}, false
	}

	actor := domain.Actor{ID: id, Role: role}
	if raw := strings.TrimSpace(r.Header.Get(HeaderAdminRole)); raw != "" {
		adminRole := domain.AdminRole(strings.ToUpper(raw))
		if !domain.IsValidAdminRole(adminRole) {
			return domain.Actor{}, false
		}
		actor.AdminRole = adminRole
	}
	if role == domain.RoleAdmin && actor.AdminRole == "" {
		return domain.Actor{}, false
	}
	return actor, true
}

// WithActor кладет пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor возвращает пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
