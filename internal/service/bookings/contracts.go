package bookings

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error
}

// ProviderRepository интерфейс чтения специалистов из каталога
type ProviderRepository interface {
	GetProviderByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// AccessResolver определяет роль пользователя и сбрасывает её кеш
type AccessResolver interface {
	Resolve(ctx context.Context, session domain.Session) access.Resolution
	Invalidate(userID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
