package recurrence

import "errors"

var (
	// ErrInvalidInput возвращается, когда даты правила не заданы
	ErrInvalidInput = errors.New("recurrence: start and end dates are required")

	// ErrEndBeforeStart возвращается, когда дата окончания раньше даты начала
	ErrEndBeforeStart = errors.New("recurrence: end date is before start date")

	// ErrUnknownCadence возвращается для неподдерживаемой периодичности
	ErrUnknownCadence = errors.New("recurrence: unknown cadence")

	// ErrInvalidDuration возвращается при неположительной длительности визита
	ErrInvalidDuration = errors.New("recurrence: duration must be positive")

	// ErrInvalidPrice возвращается при отрицательной цене
	ErrInvalidPrice = errors.New("recurrence: price must not be negative")

	// ErrInvalidTime возвращается при некорректном времени визита
	ErrInvalidTime = errors.New("recurrence: invalid time of day")

	// ErrTooManyOccurrences возвращается, когда серия превышает допустимое количество визитов
	ErrTooManyOccurrences = errors.New("recurrence: too many occurrences")
)
