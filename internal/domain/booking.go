package domain

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusInProgress          BookingStatus = "in_progress"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByUser     BookingStatus = "cancelled_by_user"
	StatusCancelledByBusiness BookingStatus = "cancelled_by_business"
	StatusNoShow              BookingStatus = "no_show"
)

// Booking represents one persisted visit of a pet to a provider
type Booking struct {
	ID              int64
	UserID          int64
	ProviderID      int64
	ServiceID       int64
	BookingDate     time.Time
	BookingTime     types.TimeString
	DurationMinutes int
	TotalPrice      float64
	Status          BookingStatus

	PetName             string
	PetType             PetType
	SpecialInstructions *string

	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string

	// Present only for bookings generated from a recurrence rule
	IsRecurring      bool
	RecurringType    *Cadence
	RecurringEndDate *time.Time
	PackageID        *int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking is in an active state
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser &&
		b.Status != StatusCancelledByBusiness &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByBusiness
}

// ProviderBookingsFilter фильтр для получения бронирований специалиста
type ProviderBookingsFilter struct {
	ProviderID      int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show
}
