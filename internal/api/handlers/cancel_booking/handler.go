package cancel_booking

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
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgProviderGone       = "специалист бронирования больше не доступен, обратитесь к администратору"
	msgCannotCancel       = "бронирование уже завершено или отменено"
)

type Handler struct {
	canceller BookingCanceller
	logger    Logger
}

func NewHandler(canceller BookingCanceller, logger Logger) *Handler {
	return &Handler{
		canceller: canceller,
		logger:    logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Тело запроса необязательно. В ответе бронирование после отмены:
// статус показывает, кто отменил (cancelled_by_user или cancelled_by_business)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Validation failed: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, err.Error())
		return
	}

	cancelled, err := h.canceller.Cancel(r.Context(), bookingID, req.ToServiceRequest(userID))
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	case errors.Is(err, bookings.ErrProviderNotFound):
		h.logger.Warn("PATCH /bookings/{id}/cancel - Provider of booking_id=%d is gone, user_id=%d is not the owner",
			bookingID, userID)
		handlers.RespondForbidden(w, msgProviderGone)
		return
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	case errors.Is(err, bookings.ErrCannotCancel):
		h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d: %v", bookingID, err)
		handlers.RespondConflict(w, msgCannotCancel)
		return
	default:
		h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - booking_id=%d cancelled by user_id=%d, status=%s, pet=%s",
		bookingID, userID, cancelled.Status, cancelled.PetName)
	handlers.RespondJSON(w, http.StatusOK, cancelled)
}
