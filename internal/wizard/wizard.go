package wizard

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/recurrence"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

const maxContactFieldLength = 255

// Wizard пошаговый мастер бронирования одной услуги
// Шаги: provider_time -> pet_details -> confirmation
// Не потокобезопасен: доступ сериализует хранилище сессий
type Wizard struct {
	step     domain.WizardStep
	status   domain.SubmissionStatus
	draft    domain.BookingDraft
	expander *recurrence.Expander

	// guestKey выдается гостю при создании мастера и подтверждает доступ к черновику без владельца
	guestKey string
	// endDateSet дата окончания серии задана пользователем и не пересчитывается при смене даты
	endDateSet bool
}

// New создает мастер для услуги; единственный кандидат выбирается автоматически
func New(
	expander *recurrence.Expander,
	service domain.Service,
	providers []domain.Provider,
	packages []domain.Package,
	ownerID int64,
) *Wizard {
	if expander == nil {
		expander = recurrence.NewExpander(0)
	}

	w := &Wizard{
		step:   domain.StepProviderTime,
		status: domain.SubmissionEditing,
		draft: domain.BookingDraft{
			OwnerID:   ownerID,
			Service:   service,
			Providers: providers,
			Packages:  packages,
			Cadence:   domain.DefaultCadence,
		},
		expander: expander,
	}

	if len(providers) == 1 {
		id := providers[0].ID
		w.draft.ProviderID = &id
	}

	return w
}

func (w *Wizard) Step() domain.WizardStep {
	return w.step
}

func (w *Wizard) Status() domain.SubmissionStatus {
	return w.status
}

func (w *Wizard) OwnerID() int64 {
	return w.draft.OwnerID
}

// SetGuestKey привязывает гостевой черновик к ключу гостя
func (w *Wizard) SetGuestKey(key string) {
	w.guestKey = key
}

// Authorize проверяет доступ к мастеру
// Черновик гостя доступен только по его ключу; первый вошедший пользователь
// с этим ключом становится владельцем, после чего ключ больше не принимается
func (w *Wizard) Authorize(userID int64, guestKey string) error {
	if w.draft.OwnerID != 0 {
		if userID != w.draft.OwnerID {
			return ErrForeignWizard
		}
		return nil
	}

	if w.guestKey == "" || subtle.ConstantTimeCompare([]byte(guestKey), []byte(w.guestKey)) != 1 {
		return ErrForeignWizard
	}
	if userID != 0 {
		w.draft.OwnerID = userID
		w.guestKey = ""
	}
	return nil
}

// Draft возвращает копию черновика
func (w *Wizard) Draft() domain.BookingDraft {
	return w.draft
}

// Clone возвращает независимую копию для пробного применения изменений
// Списки кандидатов и пакетов общие: мастер их не изменяет
func (w *Wizard) Clone() *Wizard {
	c := *w
	return &c
}

// checkActive запрещает изменения во время и после отправки
func (w *Wizard) checkActive() error {
	switch w.status {
	case domain.SubmissionSubmitting:
		return ErrSubmissionInProgress
	case domain.SubmissionCompleted:
		return ErrAlreadyCompleted
	}
	return nil
}

func (w *Wizard) checkEditable(step domain.WizardStep) error {
	if err := w.checkActive(); err != nil {
		return err
	}
	if w.step != step {
		return fmt.Errorf("%w: current step is %s", ErrWrongStep, w.step)
	}
	return nil
}

// SelectProvider выбирает специалиста из списка кандидатов
func (w *Wizard) SelectProvider(providerID int64) error {
	if err := w.checkEditable(domain.StepProviderTime); err != nil {
		return err
	}
	for _, p := range w.draft.Providers {
		if p.ID == providerID {
			w.draft.ProviderID = &providerID
			return nil
		}
	}
	return fmt.Errorf("%w: id=%d", ErrUnknownProvider, providerID)
}

// SelectDate выбирает дату визита (время суток отбрасывается)
func (w *Wizard) SelectDate(date time.Time) error {
	if err := w.checkEditable(domain.StepProviderTime); err != nil {
		return err
	}
	if date.IsZero() {
		return ErrInvalidDate
	}

	d := dateOnly(date)
	w.draft.Date = &d
	if w.draft.Recurring && !w.endDateSet {
		w.setDefaultEndDate()
	}
	return nil
}

// SelectTime выбирает время из фиксированного списка слотов
func (w *Wizard) SelectTime(at types.TimeString) error {
	if err := w.checkEditable(domain.StepProviderTime); err != nil {
		return err
	}
	normalized, err := types.NewTimeStringFromString(at.String())
	if err != nil || !domain.IsKnownTimeSlot(normalized) {
		return fmt.Errorf("%w: %q", ErrUnknownTimeSlot, at)
	}
	w.draft.Time = &normalized
	return nil
}

// EnableRecurring включает повторение
// Пустая периодичность оставляет текущую (по умолчанию weekly), дата окончания
// по умолчанию на месяц позже даты визита
func (w *Wizard) EnableRecurring(cadence domain.Cadence) error {
	if err := w.checkEditable(domain.StepProviderTime); err != nil {
		return err
	}
	if cadence != "" {
		if !cadence.IsValid() {
			return fmt.Errorf("%w: %v %q", ErrInvalidRecurrence, recurrence.ErrUnknownCadence, cadence)
		}
		w.draft.Cadence = cadence
	}
	if w.draft.Cadence == "" {
		w.draft.Cadence = domain.DefaultCadence
	}

	w.draft.Recurring = true
	if !w.endDateSet {
		w.setDefaultEndDate()
	}
	return nil
}

// DisableRecurring выключает повторение; периодичность и дата окончания сохраняются
func (w *Wizard) DisableRecurring() error {
	if err := w.checkEditable(domain.StepProviderTime); err != nil {
		return err
	}
	w.draft.Recurring = false
	return nil
}

func (w *Wizard) SetCadence(cadence domain.Cadence) error {
	if err := w.checkEditable(domain.StepProviderTime); err != nil {
		return err
	}
	if !cadence.IsValid() {
		return fmt.Errorf("%w: %v %q", ErrInvalidRecurrence, recurrence.ErrUnknownCadence, cadence)
	}
	w.draft.Cadence = cadence
	return nil
}

// SetEndDate задает включительную дату окончания серии
func (w *Wizard) SetEndDate(endDate time.Time) error {
	if err := w.checkEditable(domain.StepProviderTime); err != nil {
		return err
	}
	if endDate.IsZero() {
		return ErrInvalidDate
	}

	d := dateOnly(endDate)
	if w.draft.Date != nil && d.Before(*w.draft.Date) {
		return fmt.Errorf("%w: %v", ErrInvalidRecurrence, recurrence.ErrEndBeforeStart)
	}
	w.draft.EndDate = &d
	w.endDateSet = true
	return nil
}

// SelectPackage выбирает пакет; его цена заменяет расчёт по визитам
func (w *Wizard) SelectPackage(packageID int64) error {
	if err := w.checkEditable(domain.StepProviderTime); err != nil {
		return err
	}
	for _, p := range w.draft.Packages {
		if p.ID == packageID {
			w.draft.PackageID = &packageID
			return nil
		}
	}
	return fmt.Errorf("%w: id=%d", ErrUnknownPackage, packageID)
}

func (w *Wizard) ClearPackage() error {
	if err := w.checkEditable(domain.StepProviderTime); err != nil {
		return err
	}
	w.draft.PackageID = nil
	return nil
}

// SetPetDetails заполняет данные питомца; пустой тип сбрасывает выбор
func (w *Wizard) SetPetDetails(name string, petType domain.PetType, instructions string) error {
	if err := w.checkEditable(domain.StepPetDetails); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	instructions = strings.TrimSpace(instructions)

	if utf8.RuneCountInString(name) > domain.MaxPetNameLength {
		return fmt.Errorf("%w: pet name is longer than %d characters", ErrInvalidPetDetails, domain.MaxPetNameLength)
	}
	if petType != "" && !petType.IsValid() {
		return fmt.Errorf("%w: unknown pet type %q", ErrInvalidPetDetails, petType)
	}
	if utf8.RuneCountInString(instructions) > domain.MaxSpecialInstructionsLength {
		return fmt.Errorf("%w: special instructions are longer than %d characters",
			ErrInvalidPetDetails, domain.MaxSpecialInstructionsLength)
	}

	w.draft.PetName = name
	w.draft.PetType = petType
	w.draft.SpecialInstructions = instructions
	return nil
}

// SetContact заполняет контактные данные владельца
func (w *Wizard) SetContact(name, email, phone string) error {
	if err := w.checkEditable(domain.StepPetDetails); err != nil {
		return err
	}

	name, email, phone = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(phone)
	for _, v := range []string{name, email, phone} {
		if utf8.RuneCountInString(v) > maxContactFieldLength {
			return fmt.Errorf("%w: field is longer than %d characters", ErrInvalidContact, maxContactFieldLength)
		}
	}

	w.draft.CustomerName = name
	w.draft.CustomerEmail = email
	w.draft.CustomerPhone = phone
	return nil
}

// Next переходит на следующий шаг, если текущий заполнен
// При ошибке состояние не меняется
func (w *Wizard) Next() error {
	if err := w.checkActive(); err != nil {
		return err
	}

	switch w.step {
	case domain.StepProviderTime:
		if err := w.validateSchedule(); err != nil {
			return err
		}
		w.step = domain.StepPetDetails
	case domain.StepPetDetails:
		if err := w.validatePet(); err != nil {
			return err
		}
		w.step = domain.StepConfirmation
	default:
		return ErrNoNextStep
	}
	return nil
}

// Back возвращает на предыдущий шаг, сохраняя все введенные данные
func (w *Wizard) Back() error {
	if err := w.checkActive(); err != nil {
		return err
	}

	switch w.step {
	case domain.StepPetDetails:
		w.step = domain.StepProviderTime
	case domain.StepConfirmation:
		w.step = domain.StepPetDetails
	default:
		return ErrNoPreviousStep
	}
	return nil
}

func (w *Wizard) validateSchedule() error {
	var missing []string
	if w.draft.ProviderID == nil {
		missing = append(missing, "provider")
	}
	if w.draft.Date == nil {
		missing = append(missing, "date")
	}
	if w.draft.Time == nil {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrStepIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

func (w *Wizard) validatePet() error {
	var missing []string
	if w.draft.PetName == "" {
		missing = append(missing, "pet name")
	}
	if w.draft.PetType == "" {
		missing = append(missing, "pet type")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrStepIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

func (w *Wizard) rule() domain.RecurrenceRule {
	rule := domain.RecurrenceRule{
		Cadence:   w.draft.Cadence,
		BasePrice: w.draft.Service.Price,
	}
	if w.draft.Date != nil {
		rule.StartDate = *w.draft.Date
	}
	if w.draft.EndDate != nil {
		rule.EndDate = *w.draft.EndDate
	}
	return rule
}

// occurrenceDates даты серии без учета времени визита
func (w *Wizard) occurrenceDates() ([]time.Time, error) {
	rule := w.rule()
	count, err := w.expander.CountOccurrences(rule)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, count)
	for i := range dates {
		dates[i] = recurrence.Step(dateOnly(rule.StartDate), rule.Cadence, i)
	}
	return dates, nil
}

func (w *Wizard) setDefaultEndDate() {
	if w.draft.Date == nil {
		return
	}
	end := recurrence.Step(*w.draft.Date, domain.CadenceMonthly, 1)
	w.draft.EndDate = &end
}

func (w *Wizard) durationMinutes() int {
	if w.draft.Service.DurationMinutes > 0 {
		return w.draft.Service.DurationMinutes
	}
	return domain.DefaultDurationMinutes
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
