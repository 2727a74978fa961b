package domain

import "github.com/m04kA/PetCare-BookingService/pkg/types"

// AvailableSlot represents one entry of the fixed slot list for a provider and date
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableSpots  int
	TotalSpots      int
}

// IsFull returns true if the slot has no available spots
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// OverlapsSlot reports whether an active booking intersects [start, start+duration)
// Adjacent intervals (one ends exactly when the other starts) do not overlap
func (b *Booking) OverlapsSlot(start types.TimeString, duration int) bool {
	if !b.IsActive() {
		return false
	}
	end, err := start.AddMinutes(duration)
	if err != nil {
		return false
	}
	bookingEnd, err := b.BookingTime.AddMinutes(b.DurationMinutes)
	if err != nil {
		return false
	}
	return b.BookingTime.IsBefore(end) && bookingEnd.IsAfter(start)
}

// CountOverlapping counts active bookings intersecting the slot
func CountOverlapping(bookings []*Booking, start types.TimeString, duration int) int {
	count := 0
	for _, b := range bookings {
		if b.OverlapsSlot(start, duration) {
			count++
		}
	}
	return count
}
