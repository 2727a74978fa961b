package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

const msgForbidden = "доступ запрещен"

// AccessResolver определяет роль пользователя
type AccessResolver interface {
	Resolve(ctx context.Context, session domain.Session) access.Resolution
}

// Access определяет роль пользователя и кладёт её в контекст
// Должен стоять после Auth или OptionalAuth
func Access(resolver AccessResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, _ := GetUserID(r.Context())
			res := resolver.Resolve(r.Context(), domain.Session{UserID: userID})
			ctx := context.WithValue(r.Context(), userTypeKey, res.UserType)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles пропускает только пользователей с одной из ролей
// Роль берётся из контекста (middleware Access)
func RequireRoles(roles ...domain.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userType := GetUserType(r.Context())
			for _, role := range roles {
				if userType == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// GetUserType достаёт роль пользователя из контекста; без Access это guest
func GetUserType(ctx context.Context) domain.UserType {
	if userType, ok := ctx.Value(userTypeKey).(domain.UserType); ok {
		return userType
	}
	return domain.UserGuest
}
