package events

import "errors"

var (
	// ErrPublish возвращается при ошибке отправки события
	ErrPublish = errors.New("events.publisher: failed to publish")

	// ErrInvalidConfig возвращается при некорректной конфигурации брокера
	ErrInvalidConfig = errors.New("events.publisher: invalid config")
)
