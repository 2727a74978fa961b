package get_time_slots

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// buildSlots считает свободные места для фиксированного списка слотов
// На сегодня слоты, время которых уже прошло, не возвращаются
func buildSlots(date, now time.Time, duration, capacity int, bookings []*domain.Booking) []domain.AvailableSlot {
	if isDateInPast(date, now) {
		return []domain.AvailableSlot{}
	}

	today := isSameDay(date, now)
	current := types.NewTimeString(now)

	slots := make([]domain.AvailableSlot, 0, len(domain.TimeSlots))
	for _, start := range domain.TimeSlots {
		if today && start.IsBefore(current) {
			continue
		}

		available := capacity - domain.CountOverlapping(bookings, start, duration)
		if available < 0 {
			available = 0
		}

		slots = append(slots, domain.AvailableSlot{
			StartTime:       start,
			DurationMinutes: duration,
			AvailableSpots:  available,
			TotalSpots:      capacity,
		})
	}

	return slots
}

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
