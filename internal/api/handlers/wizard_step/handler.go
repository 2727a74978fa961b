package wizard_step

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/service/wizards"
	"github.com/m04kA/PetCare-BookingService/internal/service/wizards/models"
)

const (
	msgNotFound  = "сессия бронирования не найдена или истекла"
	msgForbidden = "доступ запрещен"
)

type moveFunc func(ctx context.Context, id string, userID int64) (*models.WizardResponse, error)

type Handler struct {
	service WizardService
	logger  Logger
}

func NewHandler(service WizardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleNext POST /api/v1/wizards/{wizardId}/next
// При незаполненном шаге отвечает 409 со списком недостающих полей
func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /wizards/{id}/next", h.service.Next)
}

// HandleBack POST /api/v1/wizards/{wizardId}/back
func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /wizards/{id}/back", h.service.Back)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, route string, move moveFunc) {
	wizardID := mux.Vars(r)["wizardId"]
	userID, _ := middleware.GetUserID(r.Context())

	result, err := move(r.Context(), wizardID, userID)
	if err != nil {
		switch {
		case errors.Is(err, wizards.ErrWizardNotFound):
			h.logger.Warn("%s - Wizard not found: wizard_id=%s", route, wizardID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, wizards.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: wizard_id=%s, user_id=%d", route, wizardID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case handlers.RespondWizardError(w, err):
			h.logger.Warn("%s - Rejected: wizard_id=%s, error=%v", route, wizardID, err)

		default:
			h.logger.Error("%s - Failed to move wizard: wizard_id=%s, error=%v", route, wizardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Wizard moved: wizard_id=%s, step=%s", route, wizardID, result.Step)
	handlers.RespondJSON(w, http.StatusOK, result)
}
