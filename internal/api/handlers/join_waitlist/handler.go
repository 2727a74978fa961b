package join_waitlist

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	joinWaitlist "github.com/m04kA/PetCare-BookingService/internal/usecase/join_waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "сессия бронирования не найдена или истекла"
	msgForbidden          = "доступ запрещен"
	msgAuthRequired       = "войдите, чтобы записаться в лист ожидания"
)

type Handler struct {
	useCase JoinWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase JoinWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/wizards/{wizardId}/waitlist
// Тело запроса необязательно: {"notes": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wizardID := mux.Vars(r)["wizardId"]
	userID, _ := middleware.GetUserID(r.Context())

	var req joinWaitlist.Request
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /wizards/{id}/waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /wizards/{id}/waitlist - Validation failed: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err.Error())
		return
	}
	req.WizardID = wizardID
	req.UserID = userID

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, joinWaitlist.ErrAuthRequired):
			h.logger.Warn("POST /wizards/{id}/waitlist - Guest tried to join: wizard_id=%s", wizardID)
			handlers.RespondUnauthorized(w, msgAuthRequired)

		case errors.Is(err, joinWaitlist.ErrWizardNotFound), errors.Is(err, joinWaitlist.ErrInvalidInput):
			h.logger.Warn("POST /wizards/{id}/waitlist - Wizard not found: wizard_id=%s", wizardID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, joinWaitlist.ErrAccessDenied):
			h.logger.Warn("POST /wizards/{id}/waitlist - Access denied: wizard_id=%s, user_id=%d", wizardID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case handlers.RespondWizardError(w, err):
			h.logger.Warn("POST /wizards/{id}/waitlist - Rejected: wizard_id=%s, error=%v", wizardID, err)

		default:
			h.logger.Error("POST /wizards/{id}/waitlist - Failed to join waitlist: wizard_id=%s, error=%v", wizardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /wizards/{id}/waitlist - Waitlist entry created: entry_id=%d, wizard_id=%s", result.ID, wizardID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
