package get_wizard

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/service/wizards"
)

const (
	msgNotFound  = "сессия бронирования не найдена или истекла"
	msgForbidden = "доступ запрещен"
)

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

// Handle GET /api/v1/wizards/{wizardId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wizardID := mux.Vars(r)["wizardId"]
	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.service.Get(r.Context(), wizardID, userID)
	if err != nil {
		switch {
		case errors.Is(err, wizards.ErrWizardNotFound):
			h.logger.Warn("GET /wizards/{id} - Wizard not found: wizard_id=%s", wizardID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, wizards.ErrAccessDenied):
			h.logger.Warn("GET /wizards/{id} - Access denied: wizard_id=%s, user_id=%d", wizardID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /wizards/{id} - Failed to get wizard: wizard_id=%s, error=%v", wizardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
