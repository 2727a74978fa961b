package update_wizard_pet

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/service/wizards"
	"github.com/m04kA/PetCare-BookingService/internal/service/wizards/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "сессия бронирования не найдена или истекла"
	msgForbidden          = "доступ запрещен"
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

// Handle PATCH /api/v1/wizards/{wizardId}/pet
// Изменения применяются целиком или не применяются вовсе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wizardID := mux.Vars(r)["wizardId"]
	userID, _ := middleware.GetUserID(r.Context())

	var req models.UpdatePetRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /wizards/{id}/pet - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PATCH /wizards/{id}/pet - Validation failed: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err.Error())
		return
	}

	result, err := h.service.UpdatePet(r.Context(), wizardID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, wizards.ErrWizardNotFound):
			h.logger.Warn("PATCH /wizards/{id}/pet - Wizard not found: wizard_id=%s", wizardID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, wizards.ErrAccessDenied):
			h.logger.Warn("PATCH /wizards/{id}/pet - Access denied: wizard_id=%s, user_id=%d", wizardID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, wizards.ErrInvalidInput):
			h.logger.Warn("PATCH /wizards/{id}/pet - Invalid input: wizard_id=%s, error=%v", wizardID, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err.Error())

		case handlers.RespondWizardError(w, err):
			h.logger.Warn("PATCH /wizards/{id}/pet - Rejected: wizard_id=%s, error=%v", wizardID, err)

		default:
			h.logger.Error("PATCH /wizards/{id}/pet - Failed to update wizard: wizard_id=%s, error=%v", wizardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /wizards/{id}/pet - Wizard updated: wizard_id=%s, step=%s", wizardID, result.Step)
	handlers.RespondJSON(w, http.StatusOK, result)
}
