package wizards

import "errors"

// Ошибки шагов мастера (wizard.Err*) возвращаются без изменений
var (
	// ErrWizardNotFound возвращается, когда сессия мастера не найдена или истекла
	ErrWizardNotFound = errors.New("wizard session not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrNoProviders возвращается, когда у услуги нет активных специалистов
	ErrNoProviders = errors.New("service has no active providers")

	// ErrAccessDenied возвращается при обращении к чужой сессии
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
