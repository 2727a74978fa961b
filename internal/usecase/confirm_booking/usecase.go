package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/infra/session"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
)

// UseCase use case подтверждения бронирования из мастера
type UseCase struct {
	bookingRepo  BookingRepository
	sessions     SessionStore
	resolver     AccessResolver
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	pricingMode  domain.PricingMode
	capacity     int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	sessions SessionStore,
	resolver AccessResolver,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	pricingMode domain.PricingMode,
	capacity int,
	logger Logger,
) *UseCase {
	if !pricingMode.IsValid() {
		pricingMode = domain.DefaultPricingMode
	}
	if capacity <= 0 {
		capacity = domain.DefaultProviderCapacity
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		sessions:     sessions,
		resolver:     resolver,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		pricingMode:  pricingMode,
		capacity:     capacity,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения бронирования
//
// Сессия блокируется только на время смены статуса: пока идет запись в БД,
// мастер находится в состоянии submitting и повторная отправка отклоняется.
// Гостевой черновик переходит к пользователю, который подтверждает его с ключом гостя.
// После успеха сессия удаляется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: wizard=%s, user=%d", req.WizardID, req.UserID)

	// 1. Валидация входных данных
	if req.WizardID == "" {
		return nil, fmt.Errorf("%w: wizard id is required", ErrInvalidInput)
	}

	// 2. Гости не могут бронировать
	resolution := uc.resolver.Resolve(ctx, domain.Session{UserID: req.UserID})
	if resolution.UserType == domain.UserGuest {
		uc.logger.Warn("ConfirmBooking: guest tried to confirm wizard=%s", req.WizardID)
		return nil, ErrAuthRequired
	}

	// 3. Переводим мастер в submitting и собираем записи
	var bookings []domain.Booking
	err := uc.withOwned(ctx, req.WizardID, req.UserID, func(w *wizard.Wizard) error {
		if err := w.BeginSubmit(); err != nil {
			return err
		}
		built, err := w.BuildBookings(uc.pricingMode)
		if err != nil {
			w.FailSubmit()
			return err
		}
		bookings = built
		return nil
	})
	if err != nil {
		uc.logger.Warn("ConfirmBooking: wizard=%s cannot be submitted: %v", req.WizardID, err)
		return nil, err
	}

	// 4. Проверка свободных мест и одна многострочная вставка в сериализуемой транзакции
	var created []domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.checkAvailability(txCtx, bookings); err != nil {
			return err
		}
		result, err := uc.bookingRepo.CreateBatch(txCtx, bookings)
		if err != nil {
			return err
		}
		created = result
		return nil
	})

	// 5. Фиксируем результат в сессии
	finishErr := uc.sessions.With(req.WizardID, func(w *wizard.Wizard) error {
		if err != nil {
			w.FailSubmit()
		} else {
			w.CompleteSubmit()
		}
		return nil
	})
	if finishErr != nil {
		uc.logger.Warn("ConfirmBooking: wizard=%s expired before submission finished: %v", req.WizardID, finishErr)
	}

	if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrPastDate) {
		uc.logger.Warn("ConfirmBooking: wizard=%s rejected: %v", req.WizardID, err)
		return nil, err
	}
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to store %d bookings for wizard=%s: %v", len(bookings), req.WizardID, err)
		uc.metrics.SubmissionFailed()
		return nil, ErrSubmissionFailed
	}

	uc.sessions.Delete(req.WizardID)

	recurring := len(created) > 0 && created[0].IsRecurring
	uc.metrics.BookingsCreated(len(created), recurring)

	// 6. События не влияют на результат бронирования
	if err := uc.publisher.PublishBookingsCreated(ctx, created); err != nil {
		uc.logger.Warn("ConfirmBooking: failed to publish events for wizard=%s: %v", req.WizardID, err)
	}

	uc.logger.Info("ConfirmBooking: wizard=%s created %d bookings, recurring=%t", req.WizardID, len(created), recurring)

	return newResponse(created, recurring), nil
}

// checkAvailability отклоняет записи в прошлом и записи на слоты, где у специалиста
// уже занято provider_capacity мест. Пересечения считаются так же, как в списке слотов
func (uc *UseCase) checkAvailability(ctx context.Context, bookings []domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	now := uc.timeProvider.Now()
	current := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, time.UTC)

	first, last := bookings[0].BookingDate, bookings[0].BookingDate
	for i := range bookings {
		start, err := bookings[i].BookingTime.OnDate(bookings[i].BookingDate)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if start.Before(current) {
			return fmt.Errorf("%w: %s %s", ErrPastDate, bookings[i].BookingDate.Format(domain.DateFormat), bookings[i].BookingTime)
		}
		if bookings[i].BookingDate.Before(first) {
			first = bookings[i].BookingDate
		}
		if bookings[i].BookingDate.After(last) {
			last = bookings[i].BookingDate
		}
	}

	providerID := bookings[0].ProviderID
	existing, err := uc.bookingRepo.GetByProviderWithFilter(ctx, domain.ProviderBookingsFilter{
		ProviderID: providerID,
		StartDate:  &first,
		EndDate:    &last,
	})
	if err != nil {
		return fmt.Errorf("load provider bookings: %w", err)
	}

	byDate := make(map[string][]*domain.Booking, len(bookings))
	for _, b := range existing {
		key := b.BookingDate.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], b)
	}

	for i := range bookings {
		key := bookings[i].BookingDate.Format(domain.DateFormat)
		taken := domain.CountOverlapping(byDate[key], bookings[i].BookingTime, bookings[i].DurationMinutes)
		if taken >= uc.capacity {
			return fmt.Errorf("%w: provider %d on %s at %s", ErrSlotNotAvailable, providerID, key, bookings[i].BookingTime)
		}
	}
	return nil
}

func (uc *UseCase) withOwned(ctx context.Context, id string, userID int64, fn func(w *wizard.Wizard) error) error {
	err := uc.sessions.With(id, func(w *wizard.Wizard) error {
		if err := w.Authorize(userID, access.GuestKey(ctx)); err != nil {
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
		return fn(w)
	})
	if errors.Is(err, session.ErrSessionNotFound) {
		return ErrWizardNotFound
	}
	return err
}

func newResponse(created []domain.Booking, recurring bool) *Response {
	resp := &Response{
		Bookings:    make([]*models.BookingResponse, 0, len(created)),
		Count:       len(created),
		IsRecurring: recurring,
	}
	cents := int64(0)
	for i := range created {
		resp.Bookings = append(resp.Bookings, models.FromDomainBooking(&created[i]))
		cents += int64(created[i].TotalPrice*100 + 0.5)
	}
	resp.TotalPrice = float64(cents) / 100
	return resp
}
