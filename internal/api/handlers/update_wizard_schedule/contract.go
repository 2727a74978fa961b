package update_wizard_schedule

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/service/wizards/models"
)

type WizardService interface {
	UpdateSchedule(ctx context.Context, id string, userID int64, req *models.UpdateScheduleRequest) (*models.WizardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
