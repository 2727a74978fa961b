package models

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/recurrence"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
)

// Request модели

// StartWizardRequest запрос на создание мастера бронирования
type StartWizardRequest struct {
	UserID    int64 `json:"-"`
	ServiceID int64 `json:"serviceId" validate:"required,gt=0"`
}

// UpdateScheduleRequest изменения первого шага; пустые поля не меняются
type UpdateScheduleRequest struct {
	ProviderID   *int64  `json:"providerId,omitempty" validate:"omitempty,gt=0"`
	Date         *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time         *string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Recurring    *bool   `json:"recurring,omitempty"`
	Cadence      *string `json:"cadence,omitempty" validate:"omitempty,oneof=weekly biweekly monthly quarterly"`
	EndDate      *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PackageID    *int64  `json:"packageId,omitempty" validate:"omitempty,gt=0"`
	ClearPackage bool    `json:"clearPackage,omitempty"`
}

// UpdatePetRequest изменения второго шага
type UpdatePetRequest struct {
	PetName             string `json:"petName" validate:"max=100"`
	PetType             string `json:"petType" validate:"omitempty,oneof=dog cat bird rabbit other"`
	SpecialInstructions string `json:"specialInstructions" validate:"max=1000"`
	CustomerName        string `json:"customerName" validate:"max=255"`
	CustomerEmail       string `json:"customerEmail" validate:"omitempty,email,max=255"`
	CustomerPhone       string `json:"customerPhone" validate:"max=255"`
}

// PreviewRequest параметры расчёта серии без мастера
type PreviewRequest struct {
	Cadence         string  `validate:"required,oneof=weekly biweekly monthly quarterly"`
	StartDate       string  `validate:"required,datetime=2006-01-02"`
	EndDate         string  `validate:"required,datetime=2006-01-02"`
	Time            string  `validate:"required,datetime=15:04"`
	DurationMinutes int     `validate:"gt=0,lte=1440"`
	BasePrice       float64 `validate:"gte=0"`
}

// Response модели

// ServiceResponse данные услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ProviderOption специалист, доступный для выбора
type ProviderOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PackageOption пакет, доступный для выбора
type PackageOption struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Description        *string `json:"description,omitempty"`
	Price              float64 `json:"price"`
	TotalSessions      int     `json:"totalSessions"`
	DiscountPercentage int     `json:"discountPercentage"`
}

// RecurrenceResponse живой расчёт серии
type RecurrenceResponse struct {
	Cadence         string   `json:"cadence"`
	EndDate         *string  `json:"endDate,omitempty"`
	OccurrenceCount int      `json:"occurrenceCount"`
	Dates           []string `json:"dates"`
	Error           string   `json:"error,omitempty"`
}

// PetResponse данные питомца и владельца
type PetResponse struct {
	Name                string `json:"name"`
	Type                string `json:"type"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
	CustomerName        string `json:"customerName,omitempty"`
	CustomerEmail       string `json:"customerEmail,omitempty"`
	CustomerPhone       string `json:"customerPhone,omitempty"`
}

// WizardResponse состояние мастера с итоговой сводкой
type WizardResponse struct {
	ID     string `json:"id"`
	Step   string `json:"step"`
	Status string `json:"status"`
	// GuestKey выдается только при старте гостевого мастера; его нужно передавать в X-Guest-Key
	GuestKey string `json:"guestKey,omitempty"`

	Service   ServiceResponse  `json:"service"`
	Providers []ProviderOption `json:"providers"`
	Packages  []PackageOption  `json:"packages"`
	TimeSlots []string         `json:"timeSlots"`

	ProviderID   *int64  `json:"providerId,omitempty"`
	ProviderName string  `json:"providerName,omitempty"`
	Date         *string `json:"date,omitempty"`
	Time         *string `json:"time,omitempty"`

	Recurrence *RecurrenceResponse `json:"recurrence,omitempty"`
	PackageID  *int64              `json:"packageId,omitempty"`
	Pet        PetResponse         `json:"pet"`

	PricePerOccurrence float64 `json:"pricePerOccurrence"`
	TotalPrice         float64 `json:"totalPrice"`
	SessionCount       int     `json:"sessionCount"`
}

// PreviewResponse результат расчёта серии
type PreviewResponse struct {
	Cadence            string   `json:"cadence"`
	OccurrenceCount    int      `json:"occurrenceCount"`
	Dates              []string `json:"dates"`
	PricePerOccurrence float64  `json:"pricePerOccurrence"`
	TotalPrice         float64  `json:"totalPrice"`
}

// Методы конвертации

// FromWizard собирает ответ по мастеру
func FromWizard(id string, w *wizard.Wizard) *WizardResponse {
	s := w.Summary()
	d := w.Draft()

	resp := &WizardResponse{
		ID:     id,
		Step:   string(s.Step),
		Status: string(s.Status),
		Service: ServiceResponse{
			ID:              s.ServiceID,
			Name:            s.ServiceName,
			Category:        s.CategoryName,
			Price:           d.Service.Price,
			DurationMinutes: s.DurationMinutes,
		},
		Providers:    make([]ProviderOption, 0, len(d.Providers)),
		Packages:     make([]PackageOption, 0, len(d.Packages)),
		TimeSlots:    make([]string, 0, len(domain.TimeSlots)),
		ProviderID:   s.ProviderID,
		ProviderName: s.ProviderName,
		PackageID:    d.PackageID,
		Pet: PetResponse{
			Name:                s.PetName,
			Type:                string(s.PetType),
			SpecialInstructions: s.SpecialInstructions,
			CustomerName:        d.CustomerName,
			CustomerEmail:       d.CustomerEmail,
			CustomerPhone:       d.CustomerPhone,
		},
		PricePerOccurrence: s.PricePerOccurrence,
		TotalPrice:         s.TotalPrice,
		SessionCount:       s.SessionCount,
	}

	for i := range d.Providers {
		resp.Providers = append(resp.Providers, ProviderOption{ID: d.Providers[i].ID, Name: d.Providers[i].DisplayName()})
	}
	for _, p := range d.Packages {
		resp.Packages = append(resp.Packages, PackageOption{
			ID:                 p.ID,
			Name:               p.Name,
			Description:        p.Description,
			Price:              p.Price,
			TotalSessions:      p.TotalSessions,
			DiscountPercentage: p.DiscountPercentage,
		})
	}
	for _, slot := range domain.TimeSlots {
		resp.TimeSlots = append(resp.TimeSlots, slot.String())
	}

	if s.Date != nil {
		date := s.Date.Format(domain.DateFormat)
		resp.Date = &date
	}
	if s.Time != nil {
		at := s.Time.String()
		resp.Time = &at
	}

	if s.Recurrence != nil {
		resp.Recurrence = &RecurrenceResponse{
			Cadence:         string(s.Recurrence.Cadence),
			OccurrenceCount: s.Recurrence.OccurrenceCount,
			Dates:           formatDates(s.Recurrence.Dates),
			Error:           s.Recurrence.Error,
		}
		if s.Recurrence.EndDate != nil {
			end := s.Recurrence.EndDate.Format(domain.DateFormat)
			resp.Recurrence.EndDate = &end
		}
	}

	return resp
}

// FromPreview конвертирует расчёт серии в DTO
func FromPreview(p *recurrence.Preview) *PreviewResponse {
	dates := make([]time.Time, len(p.Occurrences))
	for i, o := range p.Occurrences {
		dates[i] = o.Date
	}

	return &PreviewResponse{
		Cadence:            string(p.Cadence),
		OccurrenceCount:    p.OccurrenceCount,
		Dates:              formatDates(dates),
		PricePerOccurrence: p.PricePerOccurrence,
		TotalPrice:         p.TotalPrice,
	}
}

func formatDates(dates []time.Time) []string {
	res := make([]string, len(dates))
	for i, d := range dates {
		res[i] = d.Format(domain.DateFormat)
	}
	return res
}
