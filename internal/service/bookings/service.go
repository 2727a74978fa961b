package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с сохраненными бронированиями
type Service struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	resolver     AccessResolver
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	resolver AccessResolver,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		resolver:     resolver,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID вместе с ролью, в которой его видит пользователь
// Доступно владельцу бронирования, владельцу бизнеса специалиста и администратору
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingDetailsResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	viewer := models.ViewerOwner
	if booking.UserID != userID {
		role, err := s.checkProviderAccess(ctx, booking.ProviderID, userID)
		if err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, err
		}
		viewer = models.ViewerFromUserType(role)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d as %s", id, viewer)
	return models.FromDomainBookingDetails(booking, viewer), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProviderBookings получает бронирования специалиста с фильтрацией
// по периоду, статусу и включению неактивных бронирований.
// Доступно владельцу бизнеса и администратору
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetProviderBookings: fetching bookings for provider=%d, user=%d, status=%v, includeInactive=%t",
		req.ProviderID, req.UserID, req.Status, req.IncludeInactive)

	if _, err := s.checkProviderAccess(ctx, req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: successfully fetched %d bookings for provider=%d", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Владелец бронирования отменяет со статусом cancelled_by_user,
// владелец бизнеса или администратор - cancelled_by_business
// Возвращает бронирование в состоянии после отмены
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	cancelStatus := domain.StatusCancelledByUser
	if booking.UserID != req.UserID {
		if _, err := s.checkProviderAccess(ctx, booking.ProviderID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return nil, err
		}
		cancelStatus = domain.StatusCancelledByBusiness
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: status %s", ErrCannotCancel, booking.Status)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return models.FromDomainBooking(cancelled), nil
}

// UpdateStatus обновляет статус бронирования
// Доступно владельцу бизнеса специалиста и администратору
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d", bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	if _, err := s.checkProviderAccess(ctx, booking.ProviderID, req.UserID); err != nil {
		return err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkProviderAccess проверяет, что пользователь администратор
// или владелец бизнеса, которому принадлежит специалист, и возвращает его роль.
// При отказе закешированная роль сбрасывается: права могли появиться после кеширования
func (s *Service) checkProviderAccess(ctx context.Context, providerID int64, userID int64) (domain.UserType, error) {
	res := s.resolver.Resolve(ctx, domain.Session{UserID: userID})
	if res.UserType == domain.UserAdmin {
		return domain.UserAdmin, nil
	}

	provider, err := s.providerRepo.GetProviderByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProviderNotFound) {
			s.logger.Warn("checkProviderAccess: provider id=%d not found", providerID)
			return "", ErrProviderNotFound
		}
		s.logger.Error("checkProviderAccess: failed to get provider id=%d: %v", providerID, err)
		return "", fmt.Errorf("%w: checkProviderAccess - failed to get provider: %v", ErrInternal, err)
	}

	if provider.OwnerID == userID || (res.Account != nil && res.Account.OwnsBusiness(provider.BusinessID)) {
		s.logger.Info("checkProviderAccess: user=%d owns business=%d of provider=%d", userID, provider.BusinessID, providerID)
		return domain.UserBusiness, nil
	}

	s.resolver.Invalidate(userID)
	s.logger.Warn("checkProviderAccess: user=%d has no access to provider=%d", userID, providerID)
	return "", ErrAccessDenied
}
