package get_wizard

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/service/wizards/models"
)

type WizardService interface {
	Get(ctx context.Context, id string, userID int64) (*models.WizardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
