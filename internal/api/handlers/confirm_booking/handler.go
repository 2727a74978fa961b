package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	confirmBooking "github.com/m04kA/PetCare-BookingService/internal/usecase/confirm_booking"
)

const (
	msgNotFound         = "сессия бронирования не найдена или истекла"
	msgForbidden        = "доступ запрещен"
	msgAuthRequired     = "войдите, чтобы забронировать"
	msgSubmissionFailed = "booking failed, please try again"
	msgSlotTaken        = "выбранное время уже занято, выберите другое или встаньте в лист ожидания"
	msgPastDate         = "нельзя забронировать прошедшее время"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/wizards/{wizardId}/confirm
// Создает одну запись или серию записей одной транзакцией
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wizardID := mux.Vars(r)["wizardId"]
	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{
		WizardID: wizardID,
		UserID:   userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrAuthRequired):
			h.logger.Warn("POST /wizards/{id}/confirm - Guest tried to book: wizard_id=%s", wizardID)
			handlers.RespondUnauthorized(w, msgAuthRequired)

		case errors.Is(err, confirmBooking.ErrWizardNotFound), errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /wizards/{id}/confirm - Wizard not found: wizard_id=%s", wizardID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmBooking.ErrAccessDenied):
			h.logger.Warn("POST /wizards/{id}/confirm - Access denied: wizard_id=%s, user_id=%d", wizardID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /wizards/{id}/confirm - Slot taken: wizard_id=%s, %v", wizardID, err)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgSlotTaken,
				"POST /api/v1/wizards/"+wizardID+"/waitlist")

		case errors.Is(err, confirmBooking.ErrPastDate):
			h.logger.Warn("POST /wizards/{id}/confirm - Past date: wizard_id=%s, %v", wizardID, err)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, confirmBooking.ErrSubmissionFailed):
			h.logger.Error("POST /wizards/{id}/confirm - Submission failed: wizard_id=%s, user_id=%d", wizardID, userID)
			handlers.RespondError(w, http.StatusBadGateway, msgSubmissionFailed)

		case handlers.RespondWizardError(w, err):
			h.logger.Warn("POST /wizards/{id}/confirm - Rejected: wizard_id=%s, error=%v", wizardID, err)

		default:
			h.logger.Error("POST /wizards/{id}/confirm - Failed to confirm: wizard_id=%s, error=%v", wizardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /wizards/{id}/confirm - Booking created: wizard_id=%s, user_id=%d, count=%d",
		wizardID, userID, result.Count)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
