package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

func TestCountOverlapping(t *testing.T) {
	bookings := []*Booking{
		{BookingTime: "10:00", DurationMinutes: 60, Status: StatusConfirmed},
		{BookingTime: "10:30", DurationMinutes: 60, Status: StatusPending},
		{BookingTime: "11:00", DurationMinutes: 60, Status: StatusCancelledByUser},
		{BookingTime: "09:00", DurationMinutes: 60, Status: StatusConfirmed},
	}

	assert.Equal(t, 2, CountOverlapping(bookings, types.TimeString("10:00"), 60))
	assert.Equal(t, 1, CountOverlapping(bookings, types.TimeString("11:00"), 60))
	assert.Equal(t, 0, CountOverlapping(bookings, types.TimeString("12:00"), 60))
	assert.Equal(t, 0, CountOverlapping(nil, types.TimeString("10:00"), 60))
}
