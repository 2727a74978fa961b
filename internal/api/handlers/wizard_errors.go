package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-BookingService/internal/recurrence"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
)

const (
	msgStepIncomplete    = "текущий шаг не заполнен"
	msgWrongStep         = "поле нельзя изменить на текущем шаге"
	msgNoStep            = "переход на этот шаг невозможен"
	msgUnknownProvider   = "специалист не оказывает эту услугу"
	msgUnknownPackage    = "пакет не предлагается для этой услуги"
	msgInvalidSchedule   = "некорректная дата или время"
	msgInvalidPet        = "некорректные данные питомца"
	msgInvalidContact    = "некорректные контактные данные"
	msgInvalidRecurrence = "некорректные параметры повторения"
	msgNotAtConfirmation = "бронирование еще не подтверждено"
	msgProviderRequired  = "сначала выберите специалиста"
	msgSubmitInProgress  = "бронирование уже отправляется"
	msgAlreadyCompleted  = "бронирование уже создано"
	msgInvalidNotes      = "слишком длинный комментарий"
)

// RespondWizardError отвечает на ошибки шагов мастера и правил повторения
// Возвращает false, если ошибка не относится к мастеру
func RespondWizardError(w http.ResponseWriter, err error) bool {
	status, msg := wizardErrorStatus(err)
	if status == 0 {
		return false
	}
	RespondErrorWithDetails(w, status, msg, err.Error())
	return true
}

func wizardErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, wizard.ErrStepIncomplete):
		return http.StatusConflict, msgStepIncomplete
	case errors.Is(err, wizard.ErrWrongStep):
		return http.StatusConflict, msgWrongStep
	case errors.Is(err, wizard.ErrNoPreviousStep), errors.Is(err, wizard.ErrNoNextStep):
		return http.StatusConflict, msgNoStep
	case errors.Is(err, wizard.ErrNotAtConfirmation):
		return http.StatusConflict, msgNotAtConfirmation
	case errors.Is(err, wizard.ErrSubmissionInProgress):
		return http.StatusConflict, msgSubmitInProgress
	case errors.Is(err, wizard.ErrAlreadyCompleted):
		return http.StatusConflict, msgAlreadyCompleted
	case errors.Is(err, wizard.ErrUnknownProvider):
		return http.StatusBadRequest, msgUnknownProvider
	case errors.Is(err, wizard.ErrUnknownPackage):
		return http.StatusBadRequest, msgUnknownPackage
	case errors.Is(err, wizard.ErrInvalidDate), errors.Is(err, wizard.ErrUnknownTimeSlot):
		return http.StatusBadRequest, msgInvalidSchedule
	case errors.Is(err, wizard.ErrInvalidPetDetails):
		return http.StatusBadRequest, msgInvalidPet
	case errors.Is(err, wizard.ErrInvalidContact):
		return http.StatusBadRequest, msgInvalidContact
	case errors.Is(err, wizard.ErrProviderRequired):
		return http.StatusBadRequest, msgProviderRequired
	case errors.Is(err, wizard.ErrInvalidNotes):
		return http.StatusBadRequest, msgInvalidNotes
	case errors.Is(err, wizard.ErrInvalidRecurrence), isRecurrenceError(err):
		return http.StatusBadRequest, msgInvalidRecurrence
	default:
		return 0, ""
	}
}

func isRecurrenceError(err error) bool {
	for _, target := range []error{
		recurrence.ErrInvalidInput,
		recurrence.ErrEndBeforeStart,
		recurrence.ErrUnknownCadence,
		recurrence.ErrInvalidDuration,
		recurrence.ErrInvalidPrice,
		recurrence.ErrInvalidTime,
		recurrence.ErrTooManyOccurrences,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
