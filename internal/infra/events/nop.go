package events

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// NopPublisher используется, когда kafka выключена в конфигурации
type NopPublisher struct{}

func (NopPublisher) PublishBookingsCreated(context.Context, []domain.Booking) error {
	return nil
}

func (NopPublisher) PublishWaitlistJoined(context.Context, *domain.WaitlistEntry) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
