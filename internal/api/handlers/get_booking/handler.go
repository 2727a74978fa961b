package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgNotFound            = "бронирование не найдено"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ к бронированию запрещен"
	msgProviderUnavailable = "специалист бронирования больше не доступен"
)

type Handler struct {
	reader BookingReader
	logger Logger
}

func NewHandler(reader BookingReader, logger Logger) *Handler {
	return &Handler{
		reader: reader,
		logger: logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Владелец видит запись как owner, бизнес специалиста как business, администратор как admin.
// Чужую запись, чей специалист удален из каталога, видит только администратор
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %q", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	details, err := h.reader.GetByID(r.Context(), bookingID, userID)
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	case errors.Is(err, bookings.ErrProviderNotFound):
		h.logger.Warn("GET /bookings/{id} - Provider of booking_id=%d is gone, user_id=%d is not the owner", bookingID, userID)
		handlers.RespondForbidden(w, msgProviderUnavailable)
		return
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	default:
		h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/{id} - booking_id=%d served to user_id=%d as %s, pet=%s, recurring=%t",
		bookingID, userID, details.ViewerRole, details.Booking.PetName, details.Booking.IsRecurring)
	handlers.RespondJSON(w, http.StatusOK, details)
}
