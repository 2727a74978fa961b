package events

import "time"

// Типы событий
const (
	TypeBookingCreated = "booking.created"
	TypeWaitlistJoined = "waitlist.joined"
)

// Заголовки сообщений
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
)

// BookingCreated событие о созданной записи
type BookingCreated struct {
	BookingID        int64     `json:"booking_id"`
	UserID           int64     `json:"user_id"`
	ProviderID       int64     `json:"provider_id"`
	ServiceID        int64     `json:"service_id"`
	BookingDate      string    `json:"booking_date"`
	BookingTime      string    `json:"booking_time"`
	DurationMinutes  int       `json:"duration_minutes"`
	TotalPrice       float64   `json:"total_price"`
	PetName          string    `json:"pet_name"`
	PetType          string    `json:"pet_type"`
	IsRecurring      bool      `json:"is_recurring"`
	RecurringType    *string   `json:"recurring_type,omitempty"`
	RecurringEndDate *string   `json:"recurring_end_date,omitempty"`
	PackageID        *int64    `json:"package_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// WaitlistJoined событие о новой записи в лист ожидания
type WaitlistJoined struct {
	EntryID       int64     `json:"entry_id"`
	UserID        int64     `json:"user_id"`
	ProviderID    int64     `json:"provider_id"`
	ServiceID     int64     `json:"service_id"`
	PreferredDate *string   `json:"preferred_date,omitempty"`
	PreferredTime *string   `json:"preferred_time,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
