package start_wizard

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/service/wizards/models"
)

type WizardService interface {
	Start(ctx context.Context, req *models.StartWizardRequest) (*models.WizardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
