package wizard

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/recurrence"
)

// BeginSubmit переводит мастер в состояние отправки
// Вторая отправка до завершения первой отклоняется
func (w *Wizard) BeginSubmit() error {
	if err := w.checkActive(); err != nil {
		return err
	}
	if w.step != domain.StepConfirmation {
		return ErrNotAtConfirmation
	}
	w.status = domain.SubmissionSubmitting
	return nil
}

// FailSubmit возвращает мастер к редактированию; черновик сохраняется для повтора
func (w *Wizard) FailSubmit() {
	if w.status == domain.SubmissionSubmitting {
		w.status = domain.SubmissionEditing
	}
}

// CompleteSubmit фиксирует успешную отправку; дальнейшие изменения запрещены
func (w *Wizard) CompleteSubmit() {
	w.status = domain.SubmissionCompleted
}

// BuildBookings собирает записи для сохранения из подтвержденного черновика
//
// Для серии создается по записи на каждый визит. Цена записи зависит от mode:
// per_occurrence - базовая цена услуги, split_total - итог, разделенный поровну.
// Выбранный пакет всегда делится между записями, так что их сумма равна цене пакета
func (w *Wizard) BuildBookings(mode domain.PricingMode) ([]domain.Booking, error) {
	if w.status == domain.SubmissionCompleted {
		return nil, ErrAlreadyCompleted
	}
	if w.step != domain.StepConfirmation {
		return nil, ErrNotAtConfirmation
	}
	if err := w.validateSchedule(); err != nil {
		return nil, err
	}
	if err := w.validatePet(); err != nil {
		return nil, err
	}
	if !mode.IsValid() {
		mode = domain.DefaultPricingMode
	}

	d := w.draft
	base := d.Service.Price
	pkg := d.SelectedPackage()
	template := w.bookingTemplate(pkg)

	if !d.Recurring {
		b := template
		b.BookingDate = *d.Date
		b.TotalPrice = base
		if pkg != nil {
			b.TotalPrice = pkg.Price
		}
		return []domain.Booking{b}, nil
	}

	occurrences, err := w.expander.Expand(w.rule(), *d.Time, w.durationMinutes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}

	var prices []float64
	switch {
	case pkg != nil:
		prices = recurrence.SplitAmount(pkg.Price, len(occurrences))
	case mode == domain.PricingSplitTotal:
		prices = recurrence.SplitAmount(recurrence.TotalPrice(base, len(occurrences), nil), len(occurrences))
	default:
		prices = make([]float64, len(occurrences))
		for i, o := range occurrences {
			prices[i] = o.Price
		}
	}

	bookings := make([]domain.Booking, len(occurrences))
	for i, o := range occurrences {
		cadence := d.Cadence
		endDate := *d.EndDate

		b := template
		b.BookingDate = o.Date
		b.BookingTime = o.Time
		b.DurationMinutes = o.DurationMinutes
		b.TotalPrice = prices[i]
		b.IsRecurring = true
		b.RecurringType = &cadence
		b.RecurringEndDate = &endDate
		bookings[i] = b
	}

	return bookings, nil
}

func (w *Wizard) bookingTemplate(pkg *domain.Package) domain.Booking {
	d := w.draft

	b := domain.Booking{
		UserID:              d.OwnerID,
		ProviderID:          *d.ProviderID,
		ServiceID:           d.Service.ID,
		BookingTime:         *d.Time,
		DurationMinutes:     w.durationMinutes(),
		Status:              domain.StatusPending,
		PetName:             d.PetName,
		PetType:             d.PetType,
		SpecialInstructions: optional(d.SpecialInstructions),
		CustomerName:        optional(d.CustomerName),
		CustomerEmail:       optional(d.CustomerEmail),
		CustomerPhone:       optional(d.CustomerPhone),
	}
	if pkg != nil {
		id := pkg.ID
		b.PackageID = &id
	}
	return b
}

// BuildWaitlistEntry собирает запись в лист ожидания
// Доступно с любого шага, если выбран специалист; шаг мастера не меняется
func (w *Wizard) BuildWaitlistEntry(notes string) (*domain.WaitlistEntry, error) {
	if err := w.checkActive(); err != nil {
		return nil, err
	}
	if w.draft.ProviderID == nil {
		return nil, ErrProviderRequired
	}

	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > domain.MaxWaitlistNotesLength {
		return nil, fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidNotes, domain.MaxWaitlistNotesLength)
	}

	entry := &domain.WaitlistEntry{
		UserID:     w.draft.OwnerID,
		ServiceID:  w.draft.Service.ID,
		ProviderID: *w.draft.ProviderID,
		Notes:      optional(notes),
		Status:     domain.WaitlistWaiting,
	}
	if w.draft.Date != nil {
		date := *w.draft.Date
		entry.PreferredDate = &date
	}
	if w.draft.Time != nil {
		at := *w.draft.Time
		entry.PreferredTime = &at
	}

	return entry, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
