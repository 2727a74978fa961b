package get_booking

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
)

// BookingReader отдаёт карточку бронирования с учётом роли пользователя
type BookingReader interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.BookingDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
