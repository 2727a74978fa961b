package domain

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// WaitlistStatus represents the status of a waitlist entry
type WaitlistStatus string

const (
	WaitlistWaiting   WaitlistStatus = "waiting"
	WaitlistNotified  WaitlistStatus = "notified"
	WaitlistBooked    WaitlistStatus = "booked"
	WaitlistCancelled WaitlistStatus = "cancelled"
)

// WaitlistEntry is a request to be contacted when a provider frees up
type WaitlistEntry struct {
	ID            int64
	UserID        int64
	ServiceID     int64
	ProviderID    int64
	PreferredDate *time.Time
	PreferredTime *types.TimeString
	Notes         *string
	Status        WaitlistStatus
	CreatedAt     time.Time
}
