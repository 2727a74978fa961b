package join_waitlist

import "errors"

// Ошибки мастера (wizard.Err*) возвращаются без изменений
var (
	// ErrWizardNotFound возвращается, когда сессия мастера не найдена или истекла
	ErrWizardNotFound = errors.New("wizard session not found")

	// ErrAccessDenied возвращается при обращении к чужой сессии
	ErrAccessDenied = errors.New("access denied")

	// ErrAuthRequired возвращается для гостей
	ErrAuthRequired = errors.New("sign in to join the waitlist")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
