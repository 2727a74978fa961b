package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
)

// HeaderUserID заголовок с ID пользователя, который выставляет gateway
const HeaderUserID = "X-User-ID"

// HeaderGuestKey заголовок с ключом черновика, выданным гостю при старте мастера
const HeaderGuestKey = "X-Guest-Key"

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userTypeKey contextKey = "userType"
)

// Auth требует заголовок X-User-ID и кладёт ID пользователя в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// OptionalAuth пропускает запросы без X-User-ID (гостей)
// Некорректный заголовок по-прежнему отклоняется.
// X-Guest-Key передаётся дальше как есть: он нужен и гостю, и пользователю,
// который вошёл после начала гостевого черновика
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if key := r.Header.Get(HeaderGuestKey); key != "" {
			ctx = access.WithGuestKey(ctx, key)
		}

		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
	})
}

// WithUserID кладёт ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID достаёт ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
