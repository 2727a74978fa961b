package join_waitlist

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
}

// SessionStore хранилище сессий мастера
type SessionStore interface {
	With(id string, fn func(w *wizard.Wizard) error) error
}

// AccessResolver определяет роль пользователя
type AccessResolver interface {
	Resolve(ctx context.Context, session domain.Session) access.Resolution
}

// EventPublisher публикует событие о записи в лист ожидания
type EventPublisher interface {
	PublishWaitlistJoined(ctx context.Context, entry *domain.WaitlistEntry) error
}

// Metrics бизнес-метрики листа ожидания
type Metrics interface {
	WaitlistEntryCreated()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
