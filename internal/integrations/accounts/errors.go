package accounts

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accounts client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("accounts client: invalid response")

	// ErrServiceDegraded возвращается, когда сервис аккаунтов недоступен
	ErrServiceDegraded = errors.New("accounts service unavailable: graceful degradation applied")
)
