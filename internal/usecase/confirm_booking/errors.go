package confirm_booking

import "errors"

// Ошибки шагов мастера (wizard.Err*) возвращаются без изменений
var (
	// ErrWizardNotFound возвращается, когда сессия мастера не найдена или истекла
	ErrWizardNotFound = errors.New("wizard session not found")

	// ErrAccessDenied возвращается при отправке чужого черновика
	ErrAccessDenied = errors.New("access denied")

	// ErrAuthRequired возвращается для гостей
	ErrAuthRequired = errors.New("sign in to book")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotNotAvailable возвращается, когда у специалиста не осталось мест на один из визитов
	ErrSlotNotAvailable = errors.New("time slot is fully booked")

	// ErrPastDate возвращается, когда визит назначен на уже прошедшее время
	ErrPastDate = errors.New("booking time is in the past")

	// ErrSubmissionFailed возвращается при любой ошибке сохранения; черновик остается в сессии
	ErrSubmissionFailed = errors.New("booking failed, please try again")
)
