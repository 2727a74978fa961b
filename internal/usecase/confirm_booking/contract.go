package confirm_booking

import (
	"context"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CreateBatch(ctx context.Context, bookings []domain.Booking) ([]domain.Booking, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
}

// SessionStore хранилище сессий мастера
type SessionStore interface {
	With(id string, fn func(w *wizard.Wizard) error) error
	Delete(id string)
}

// AccessResolver определяет роль пользователя
type AccessResolver interface {
	Resolve(ctx context.Context, session domain.Session) access.Resolution
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события о созданных бронированиях
type EventPublisher interface {
	PublishBookingsCreated(ctx context.Context, bookings []domain.Booking) error
}

// Metrics бизнес-метрики отправки
type Metrics interface {
	BookingsCreated(count int, recurring bool)
	SubmissionFailed()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
