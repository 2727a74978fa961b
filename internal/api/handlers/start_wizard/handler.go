package start_wizard

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/service/wizards"
	"github.com/m04kA/PetCare-BookingService/internal/service/wizards/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgNoProviders        = "у услуги нет доступных специалистов"
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

// Handle POST /api/v1/wizards
// Гость тоже может начать бронирование; войти потребуется на подтверждении.
// Гостю в ответе выдается guestKey, его нужно передавать в заголовке X-Guest-Key
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.StartWizardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizards - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /wizards - Validation failed: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err.Error())
		return
	}
	req.UserID, _ = middleware.GetUserID(r.Context())

	result, err := h.service.Start(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, wizards.ErrServiceNotFound):
			h.logger.Warn("POST /wizards - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, wizards.ErrNoProviders):
			h.logger.Warn("POST /wizards - No providers: service_id=%d", req.ServiceID)
			handlers.RespondConflict(w, msgNoProviders)

		default:
			h.logger.Error("POST /wizards - Failed to start wizard: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /wizards - Wizard started: wizard_id=%s, service_id=%d, user_id=%d",
		result.ID, req.ServiceID, req.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
