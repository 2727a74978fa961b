package join_waitlist

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// Request модель запроса записи в лист ожидания
type Request struct {
	WizardID string `json:"-"`
	UserID   int64  `json:"-"`
	Notes    string `json:"notes" validate:"max=500"`
}

// Response созданная запись листа ожидания
type Response struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	ServiceID     int64     `json:"serviceId"`
	ProviderID    int64     `json:"providerId"`
	PreferredDate *string   `json:"preferredDate,omitempty"` // "2025-10-15"
	PreferredTime *string   `json:"preferredTime,omitempty"` // "10:00"
	Notes         *string   `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func fromDomain(e *domain.WaitlistEntry) *Response {
	resp := &Response{
		ID:         e.ID,
		UserID:     e.UserID,
		ServiceID:  e.ServiceID,
		ProviderID: e.ProviderID,
		Notes:      e.Notes,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
	}
	if e.PreferredDate != nil {
		date := e.PreferredDate.Format(domain.DateFormat)
		resp.PreferredDate = &date
	}
	if e.PreferredTime != nil {
		at := e.PreferredTime.String()
		resp.PreferredTime = &at
	}
	return resp
}
