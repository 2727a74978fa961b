package get_time_slots

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	getTimeSlots "github.com/m04kA/PetCare-BookingService/internal/usecase/get_time_slots"
)

// TimeSlotsResponse HTTP response model
type TimeSlotsResponse struct {
	Date          string     `json:"date"`
	ProviderID    int64      `json:"providerId"`
	Slots         []TimeSlot `json:"slots"`
	WaitlistCount int        `json:"waitlistCount"`
}

// TimeSlot модель временного слота
type TimeSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
	IsFull          bool   `json:"isFull"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTimeSlots.Response) *TimeSlotsResponse {
	slots := make([]TimeSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = TimeSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
			IsFull:          slot.IsFull(),
		}
	}

	return &TimeSlotsResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		ProviderID:    resp.ProviderID,
		Slots:         slots,
		WaitlistCount: resp.WaitlistCount,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(providerID int64, serviceID *int64, dateStr string) (*getTimeSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getTimeSlots.Request{
		ProviderID: providerID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}
