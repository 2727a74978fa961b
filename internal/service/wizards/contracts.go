package wizards

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
)

// CatalogRepository интерфейс чтения каталога
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetProvidersByBusiness(ctx context.Context, businessID int64) ([]domain.Provider, error)
	GetPackagesByService(ctx context.Context, serviceID int64) ([]domain.Package, error)
}

// SessionStore хранилище сессий мастера
type SessionStore interface {
	Create(w *wizard.Wizard) string
	With(id string, fn func(w *wizard.Wizard) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
