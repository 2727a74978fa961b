package recurrence

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// Expander разворачивает правило повторения в список конкретных визитов
// Не выполняет I/O; ошибки возможны только из-за некорректного ввода
type Expander struct {
	maxOccurrences int
}

// NewExpander создает expander с ограничением на размер серии
// maxOccurrences <= 0 означает значение по умолчанию
func NewExpander(maxOccurrences int) *Expander {
	if maxOccurrences <= 0 {
		maxOccurrences = domain.DefaultMaxOccurrences
	}
	return &Expander{maxOccurrences: maxOccurrences}
}

// Preview результат расчёта серии для отображения пользователю
type Preview struct {
	Cadence            domain.Cadence
	StartDate          time.Time
	EndDate            time.Time
	OccurrenceCount    int
	Occurrences        []domain.Occurrence
	PricePerOccurrence float64
	TotalPrice         float64
}

// Validate проверяет правило до любых вычислений с датами
func (e *Expander) Validate(rule domain.RecurrenceRule) error {
	if rule.StartDate.IsZero() || rule.EndDate.IsZero() {
		return ErrInvalidInput
	}
	if !rule.Cadence.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCadence, rule.Cadence)
	}
	if rule.BasePrice < 0 {
		return ErrInvalidPrice
	}
	if dateOnly(rule.EndDate).Before(dateOnly(rule.StartDate)) {
		return fmt.Errorf("%w: start=%s, end=%s", ErrEndBeforeStart,
			rule.StartDate.Format(domain.DateFormat), rule.EndDate.Format(domain.DateFormat))
	}
	return nil
}

// CountOccurrences возвращает количество визитов в серии (всегда >= 1)
//
// weekly / biweekly: floor(дней / шаг) + 1
// monthly / quarterly: календарные месяцы, то есть наибольшее k, при котором
// Step(start, k) <= end, плюс 1. Так количество всегда совпадает с Expand
func (e *Expander) CountOccurrences(rule domain.RecurrenceRule) (int, error) {
	if err := e.Validate(rule); err != nil {
		return 0, err
	}

	count := countSteps(rule) + 1
	if count > e.maxOccurrences {
		return 0, fmt.Errorf("%w: %d (max %d)", ErrTooManyOccurrences, count, e.maxOccurrences)
	}
	return count, nil
}

func countSteps(rule domain.RecurrenceRule) int {
	start := dateOnly(rule.StartDate)
	end := dateOnly(rule.EndDate)

	switch rule.Cadence {
	case domain.CadenceWeekly:
		return daysBetween(start, end) / 7
	case domain.CadenceBiweekly:
		return daysBetween(start, end) / 14
	case domain.CadenceMonthly, domain.CadenceQuarterly:
		stepMonths := monthsPerStep(rule.Cadence)
		k := monthsBetween(start, end) / stepMonths
		// В последнем месяце день может оказаться позже даты окончания
		if addMonthsClamped(start, k*stepMonths).After(end) {
			k--
		}
		return k
	default:
		return 0
	}
}

// Expand возвращает все визиты серии в порядке возрастания дат
// Время и длительность одинаковы для всех визитов, цена каждого равна базовой
func (e *Expander) Expand(rule domain.RecurrenceRule, at types.TimeString, durationMinutes int) ([]domain.Occurrence, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if err := at.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	if _, err := at.AddMinutes(durationMinutes); err != nil {
		return nil, fmt.Errorf("%w: visit does not fit into the day", ErrInvalidDuration)
	}

	count, err := e.CountOccurrences(rule)
	if err != nil {
		return nil, err
	}

	start := dateOnly(rule.StartDate)
	occurrences := make([]domain.Occurrence, count)
	for i := 0; i < count; i++ {
		occurrences[i] = domain.Occurrence{
			Date:            Step(start, rule.Cadence, i),
			Time:            at,
			DurationMinutes: durationMinutes,
			Price:           rule.BasePrice,
		}
	}

	return occurrences, nil
}

// Preview считает количество, даты и итоговую цену серии за один вызов
func (e *Expander) Preview(rule domain.RecurrenceRule, at types.TimeString, durationMinutes int, pkg *domain.Package) (*Preview, error) {
	occurrences, err := e.Expand(rule, at, durationMinutes)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Cadence:            rule.Cadence,
		StartDate:          dateOnly(rule.StartDate),
		EndDate:            dateOnly(rule.EndDate),
		OccurrenceCount:    len(occurrences),
		Occurrences:        occurrences,
		PricePerOccurrence: rule.BasePrice,
		TotalPrice:         TotalPrice(rule.BasePrice, len(occurrences), pkg),
	}, nil
}

// Step сдвигает дату начала на i шагов периодичности
// Месячные шаги считаются от даты начала, а не от предыдущего визита,
// поэтому 31 января -> 29 февраля -> 31 марта
func Step(start time.Time, cadence domain.Cadence, i int) time.Time {
	switch cadence {
	case domain.CadenceWeekly:
		return start.AddDate(0, 0, 7*i)
	case domain.CadenceBiweekly:
		return start.AddDate(0, 0, 14*i)
	case domain.CadenceMonthly, domain.CadenceQuarterly:
		return addMonthsClamped(start, monthsPerStep(cadence)*i)
	default:
		return start
	}
}

// TotalPrice итоговая цена для отображения
// Выбранный пакет полностью заменяет расчёт по количеству визитов
func TotalPrice(basePrice float64, occurrenceCount int, pkg *domain.Package) float64 {
	if pkg != nil {
		return roundCents(pkg.Price)
	}
	if occurrenceCount < 1 {
		occurrenceCount = 1
	}
	return roundCents(basePrice * float64(occurrenceCount))
}

// SessionCount количество сеансов для сводки: у пакета своё количество
func SessionCount(occurrenceCount int, pkg *domain.Package) int {
	if pkg != nil {
		return pkg.TotalSessions
	}
	if occurrenceCount < 1 {
		return 1
	}
	return occurrenceCount
}

// SplitAmount делит сумму на n частей с точностью до копейки
// Остаток от округления достаётся первой части, так что сумма частей равна total
func SplitAmount(total float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	totalCents := int64(math.Round(total * 100))
	share := totalCents / int64(n)
	remainder := totalCents - share*int64(n)

	parts := make([]float64, n)
	for i := range parts {
		cents := share
		if i == 0 {
			cents += remainder
		}
		parts[i] = float64(cents) / 100
	}
	return parts
}

func monthsPerStep(cadence domain.Cadence) int {
	if cadence == domain.CadenceQuarterly {
		return 3
	}
	return 1
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

func monthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// addMonthsClamped прибавляет месяцы, прижимая день к последнему дню целевого месяца
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, time.UTC)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
