package wizard

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/recurrence"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// Summary состояние мастера для отображения на любом шаге
type Summary struct {
	Step   domain.WizardStep
	Status domain.SubmissionStatus

	ServiceID       int64
	ServiceName     string
	CategoryName    string
	DurationMinutes int

	ProviderID   *int64
	ProviderName string

	Date *time.Time
	Time *types.TimeString

	PetName             string
	PetType             domain.PetType
	SpecialInstructions string

	Recurrence *RecurrenceSummary
	Package    *domain.Package

	PricePerOccurrence float64
	TotalPrice         float64
	SessionCount       int
}

// RecurrenceSummary живой расчёт серии
// При некорректном правиле Error содержит описание, а Dates пуст
type RecurrenceSummary struct {
	Cadence         domain.Cadence
	EndDate         *time.Time
	OccurrenceCount int
	Dates           []time.Time
	Error           string
}

// Summary пересчитывает итог по текущему черновику
func (w *Wizard) Summary() Summary {
	d := w.draft

	s := Summary{
		Step:                w.step,
		Status:              w.status,
		ServiceID:           d.Service.ID,
		ServiceName:         d.Service.Name,
		CategoryName:        d.Service.DisplayCategory(),
		DurationMinutes:     w.durationMinutes(),
		ProviderID:          d.ProviderID,
		Date:                d.Date,
		Time:                d.Time,
		PetName:             d.PetName,
		PetType:             d.PetType,
		SpecialInstructions: d.SpecialInstructions,
		Package:             d.SelectedPackage(),
		PricePerOccurrence:  d.Service.Price,
	}

	if p := d.SelectedProvider(); p != nil {
		s.ProviderName = p.DisplayName()
	}

	count := 1
	if d.Recurring {
		rs := &RecurrenceSummary{
			Cadence: d.Cadence,
			EndDate: d.EndDate,
		}
		if d.Date != nil && d.EndDate != nil {
			dates, err := w.occurrenceDates()
			if err != nil {
				rs.Error = err.Error()
			} else {
				rs.Dates = dates
				rs.OccurrenceCount = len(dates)
				count = len(dates)
			}
		}
		s.Recurrence = rs
	}

	s.TotalPrice = recurrence.TotalPrice(d.Service.Price, count, s.Package)
	s.SessionCount = recurrence.SessionCount(count, s.Package)

	return s
}
