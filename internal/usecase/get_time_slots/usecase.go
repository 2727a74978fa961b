package get_time_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/catalog"
)

// UseCase use case получения свободных мест у специалиста на дату
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	waitlistRepo WaitlistRepository
	capacity     int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// capacity - сколько визитов специалист принимает одновременно
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	waitlistRepo WaitlistRepository,
	capacity int,
	logger Logger,
) *UseCase {
	if capacity <= 0 {
		capacity = domain.DefaultProviderCapacity
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		waitlistRepo: waitlistRepo,
		capacity:     capacity,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTimeSlots: provider=%d, service=%v, date=%s",
		req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.ProviderID <= 0 || req.Date.IsZero() {
		uc.logger.Warn("GetTimeSlots: validation failed: provider=%d, date=%v", req.ProviderID, req.Date)
		return nil, fmt.Errorf("%w: providerId and date are required", ErrInvalidInput)
	}

	// 2. Получаем специалиста
	provider, err := uc.catalogRepo.GetProviderByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetTimeSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetTimeSlots: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	if !provider.IsActive {
		uc.logger.Warn("GetTimeSlots: provider id=%d is inactive", req.ProviderID)
		return nil, ErrProviderNotFound
	}

	// 3. Длительность визита берём из услуги
	duration := domain.DefaultDurationMinutes
	if req.ServiceID != nil {
		service, err := uc.catalogRepo.GetService(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetTimeSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetTimeSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.BusinessID != provider.BusinessID {
			uc.logger.Warn("GetTimeSlots: service id=%d is not offered by provider id=%d", service.ID, provider.ID)
			return nil, ErrServiceNotOffered
		}
		duration = service.DurationMinutes
	}

	resp := &Response{
		Date:       req.Date,
		ProviderID: req.ProviderID,
		Slots:      []domain.AvailableSlot{},
	}

	// 4. Прошедшие даты - пустой список без запросов к БД
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetTimeSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return resp, nil
	}

	// 5. Активные бронирования специалиста на дату
	bookings, err := uc.bookingRepo.GetByProviderWithFilter(ctx, domain.ProviderBookingsFilter{
		ProviderID: req.ProviderID,
		StartDate:  &req.Date,
		EndDate:    &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetTimeSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	resp.Slots = buildSlots(req.Date, now, duration, uc.capacity, bookings)

	// 6. Размер листа ожидания не критичен для ответа
	waiting, err := uc.waitlistRepo.CountWaiting(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Warn("GetTimeSlots: failed to count waitlist for provider id=%d: %v", req.ProviderID, err)
	} else {
		resp.WaitlistCount = waiting
	}

	uc.logger.Info("GetTimeSlots: returned %d slots for provider=%d, %d existing bookings",
		len(resp.Slots), req.ProviderID, len(bookings))
	return resp, nil
}
