package wizard

import "errors"

var (
	// ErrStepIncomplete возвращается, когда обязательные поля текущего шага не заполнены
	ErrStepIncomplete = errors.New("wizard: step is incomplete")

	// ErrNoPreviousStep возвращается при попытке вернуться с первого шага
	ErrNoPreviousStep = errors.New("wizard: no previous step")

	// ErrWrongStep возвращается при редактировании полей другого шага
	ErrWrongStep = errors.New("wizard: field cannot be edited on the current step")

	// ErrUnknownProvider возвращается, если специалист не входит в список кандидатов
	ErrUnknownProvider = errors.New("wizard: provider is not available for the service")

	// ErrUnknownPackage возвращается, если пакет не предлагается для услуги
	ErrUnknownPackage = errors.New("wizard: package is not offered for the service")

	// ErrInvalidDate возвращается при пустой дате
	ErrInvalidDate = errors.New("wizard: invalid date")

	// ErrUnknownTimeSlot возвращается, если время не входит в фиксированный список слотов
	ErrUnknownTimeSlot = errors.New("wizard: unknown time slot")

	// ErrInvalidPetDetails возвращается при некорректных данных питомца
	ErrInvalidPetDetails = errors.New("wizard: invalid pet details")

	// ErrInvalidContact возвращается при некорректных контактных данных
	ErrInvalidContact = errors.New("wizard: invalid contact details")

	// ErrInvalidRecurrence возвращается, когда правило повторения не может быть развернуто
	ErrInvalidRecurrence = errors.New("wizard: invalid recurrence")

	// ErrNotAtConfirmation возвращается при сборке бронирований не на шаге подтверждения
	ErrNotAtConfirmation = errors.New("wizard: bookings can be built only at confirmation")

	// ErrProviderRequired возвращается при записи в лист ожидания без выбранного специалиста
	ErrProviderRequired = errors.New("wizard: provider must be selected")

	// ErrSubmissionInProgress возвращается при повторной отправке, пока первая не завершилась
	ErrSubmissionInProgress = errors.New("wizard: submission already in progress")

	// ErrAlreadyCompleted возвращается при любых изменениях после успешной отправки
	ErrAlreadyCompleted = errors.New("wizard: booking already submitted")
)

var (
	// ErrNoNextStep возвращается при попытке перейти дальше шага подтверждения
	ErrNoNextStep = errors.New("wizard: no next step")

	// ErrForeignWizard возвращается, когда мастер принадлежит другому пользователю или гостю
	ErrForeignWizard = errors.New("wizard: belongs to another user")

	// ErrInvalidNotes возвращается при слишком длинном комментарии к листу ожидания
	ErrInvalidNotes = errors.New("wizard: invalid waitlist notes")
)
