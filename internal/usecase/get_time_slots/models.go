package get_time_slots

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// Request модель запроса свободных мест
type Request struct {
	ProviderID int64     // ID специалиста
	ServiceID  *int64    // ID услуги, задает длительность визита (опционально)
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date          time.Time
	ProviderID    int64
	Slots         []domain.AvailableSlot
	WaitlistCount int // Сколько пользователей уже ждут этого специалиста
}
