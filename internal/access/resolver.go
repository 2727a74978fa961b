package access

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

const defaultCacheTTL = 5 * time.Minute

// Resolution роль пользователя вместе с аккаунтом, из которого она получена
type Resolution struct {
	UserType domain.UserType
	Account  *domain.Account
}

// Resolver вычисляет роль пользователя и кеширует результат по user id
type Resolver struct {
	accounts AccountProvider
	cache    *cache.Cache
	logger   Logger
}

// NewResolver создает resolver; ttl <= 0 означает значение по умолчанию
func NewResolver(accounts AccountProvider, ttl time.Duration, logger Logger) *Resolver {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Resolver{
		accounts: accounts,
		cache:    cache.New(ttl, 2*ttl),
		logger:   logger,
	}
}

// Resolve возвращает роль для сессии
// Если сервис аккаунтов недоступен, пользователь считается обычным и результат не кешируется
func (r *Resolver) Resolve(ctx context.Context, session domain.Session) Resolution {
	if session.IsAnonymous() {
		return Resolution{UserType: domain.UserGuest}
	}

	key := strconv.FormatInt(session.UserID, 10)
	if cached, ok := r.cache.Get(key); ok {
		return cached.(Resolution)
	}

	account, err := r.accounts.GetAccount(ctx, session.UserID)
	if err != nil {
		r.logger.Warn("Resolve: failed to get account for user id=%d, falling back to user: %v", session.UserID, err)
		return Resolution{UserType: domain.UserRegular}
	}

	res := Resolution{
		UserType: Classify(session, account),
		Account:  account,
	}
	r.cache.SetDefault(key, res)

	return res
}

// Invalidate сбрасывает закешированную роль пользователя
func (r *Resolver) Invalidate(userID int64) {
	r.cache.Delete(strconv.FormatInt(userID, 10))
}
