package preview_recurrence

import (
	"github.com/m04kA/PetCare-BookingService/internal/service/wizards/models"
)

type WizardService interface {
	PreviewRecurrence(req *models.PreviewRequest) (*models.PreviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
