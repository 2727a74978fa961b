package models

import (
	"errors"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64   `json:"-"`
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"-"`
	Status string `json:"status" validate:"required"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetProviderBookingsRequest запрос на получение бронирований специалиста
type GetProviderBookingsRequest struct {
	UserID          int64      `json:"userId"`
	ProviderID      int64      `json:"providerId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProviderBookingsRequest) ToDomainFilter() (domain.ProviderBookingsFilter, error) {
	filter := domain.ProviderBookingsFilter{
		ProviderID:      r.ProviderID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	ProviderID      int64   `json:"providerId"`
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	BookingTime     string  `json:"bookingTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	TotalPrice      float64 `json:"totalPrice"`
	Status          string  `json:"status"`

	PetName             string  `json:"petName"`
	PetType             string  `json:"petType"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`

	CustomerName  *string `json:"customerName,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	IsRecurring      bool    `json:"isRecurring"`
	RecurringType    *string `json:"recurringType,omitempty"`
	RecurringEndDate *string `json:"recurringEndDate,omitempty"`
	PackageID        *int64  `json:"packageId,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Роли, в которых пользователь видит бронирование
const (
	ViewerOwner    = "owner"
	ViewerBusiness = "business"
	ViewerAdmin    = "admin"
)

// BookingDetailsResponse бронирование вместе с контекстом просмотра
type BookingDetailsResponse struct {
	Booking    BookingResponse `json:"booking"`
	ViewerRole string          `json:"viewerRole"`
	EndTime    string          `json:"endTime,omitempty"` // "11:00"
	CanCancel  bool            `json:"canCancel"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID,
		UserID:              b.UserID,
		ProviderID:          b.ProviderID,
		ServiceID:           b.ServiceID,
		BookingDate:         b.BookingDate.Format(domain.DateFormat),
		BookingTime:         b.BookingTime.String(),
		DurationMinutes:     b.DurationMinutes,
		TotalPrice:          b.TotalPrice,
		Status:              string(b.Status),
		PetName:             b.PetName,
		PetType:             string(b.PetType),
		SpecialInstructions: b.SpecialInstructions,
		CustomerName:        b.CustomerName,
		CustomerEmail:       b.CustomerEmail,
		CustomerPhone:       b.CustomerPhone,
		IsRecurring:         b.IsRecurring,
		PackageID:           b.PackageID,
		CancellationReason:  b.CancellationReason,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	if b.RecurringType != nil {
		cadence := string(*b.RecurringType)
		resp.RecurringType = &cadence
	}
	if b.RecurringEndDate != nil {
		end := b.RecurringEndDate.Format(domain.DateFormat)
		resp.RecurringEndDate = &end
	}
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingDetails собирает карточку бронирования для роли viewer
func FromDomainBookingDetails(b *domain.Booking, viewer string) *BookingDetailsResponse {
	if b == nil {
		return nil
	}

	resp := &BookingDetailsResponse{
		Booking:    *FromDomainBooking(b),
		ViewerRole: viewer,
		CanCancel:  b.CanBeCancelled(),
	}
	if end, err := b.BookingTime.AddMinutes(b.DurationMinutes); err == nil {
		resp.EndTime = end.String()
	}

	return resp
}

// ViewerFromUserType переводит роль пользователя в роль просмотра чужого бронирования
func ViewerFromUserType(userType domain.UserType) string {
	if userType == domain.UserAdmin {
		return ViewerAdmin
	}
	return ViewerBusiness
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	for _, valid := range domain.AllStatuses {
		if s == valid {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}
