package access

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// AccountProvider источник данных об аккаунте пользователя
type AccountProvider interface {
	GetAccount(ctx context.Context, userID int64) (*domain.Account, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
