package domain

import "github.com/m04kA/PetCare-BookingService/pkg/types"

// Default configuration values
const (
	DefaultDurationMinutes  = 60
	DefaultProviderCapacity = 1
	DefaultMaxOccurrences   = 366
	DefaultPricingMode      = PricingPerOccurrence
	DefaultCadence          = CadenceWeekly
)

// Display fallbacks for optional joined fields
const (
	DefaultProviderName = "Any available provider"
	DefaultCategoryName = "Uncategorized"
)

// Business validation constants
const (
	MaxPetNameLength             = 100
	MaxSpecialInstructionsLength = 1000
	MaxWaitlistNotesLength       = 500
	MaxCancellationReasonLength  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TimeSlots фиксированный список времени начала, из которого выбирает пользователь
var TimeSlots = []types.TimeString{
	"09:00", "10:00", "11:00", "12:00", "13:00",
	"14:00", "15:00", "16:00", "17:00",
}

// IsKnownTimeSlot проверяет, что время входит в фиксированный список
func IsKnownTimeSlot(t types.TimeString) bool {
	for _, slot := range TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при подсчёте свободных мест
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByBusiness,
	StatusNoShow,
}

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelledByUser,
	StatusCancelledByBusiness,
	StatusNoShow,
}
