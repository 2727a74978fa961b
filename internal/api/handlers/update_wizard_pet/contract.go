package update_wizard_pet

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/service/wizards/models"
)

type WizardService interface {
	UpdatePet(ctx context.Context, id string, userID int64, req *models.UpdatePetRequest) (*models.WizardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
