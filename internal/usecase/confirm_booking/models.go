package confirm_booking

import "github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"

// Request модель запроса подтверждения бронирования
type Request struct {
	WizardID string
	UserID   int64
}

// Response созданные записи; для серии - по одной на визит
type Response struct {
	Bookings    []*models.BookingResponse `json:"bookings"`
	Count       int                       `json:"count"`
	IsRecurring bool                      `json:"isRecurring"`
	TotalPrice  float64                   `json:"totalPrice"`
}
