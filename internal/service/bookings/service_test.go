package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
	"github.com/m04kA/PetCare-BookingService/pkg/ptr"
)

type fakeBookings struct {
	bookings  map[int64]*domain.Booking
	cancelled map[int64]domain.BookingStatus
	filter    domain.ProviderBookingsFilter
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookings) GetByUserID(_ context.Context, userID int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	var res []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			res = append(res, b)
		}
	}
	return res, nil
}

func (f *fakeBookings) GetByProviderWithFilter(_ context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return nil, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.bookings[id].Status = status
	return nil
}

func (f *fakeBookings) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason *string) error {
	f.cancelled[id] = status
	f.bookings[id].Status = status
	f.bookings[id].CancellationReason = reason
	return nil
}

type fakeProviders struct{}

func (fakeProviders) GetProviderByID(_ context.Context, id int64) (*domain.Provider, error) {
	return &domain.Provider{ID: id, BusinessID: 3, OwnerID: 50}, nil
}

type fakeResolver struct {
	roles       map[int64]access.Resolution
	invalidated []int64
}

func (f *fakeResolver) Resolve(_ context.Context, session domain.Session) access.Resolution {
	if res, ok := f.roles[session.UserID]; ok {
		return res
	}
	return access.Resolution{UserType: domain.UserRegular}
}

func (f *fakeResolver) Invalidate(userID int64) {
	f.invalidated = append(f.invalidated, userID)
}

func newService() (*Service, *fakeBookings) {
	repo := &fakeBookings{
		bookings: map[int64]*domain.Booking{
			1: {ID: 1, UserID: 42, ProviderID: 11, BookingDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), BookingTime: "10:00", Status: domain.StatusPending},
			2: {ID: 2, UserID: 42, ProviderID: 11, Status: domain.StatusCompleted},
		},
		cancelled: map[int64]domain.BookingStatus{},
	}
	resolver := &fakeResolver{roles: map[int64]access.Resolution{
		60: {UserType: domain.UserBusiness, Account: &domain.Account{UserID: 60, BusinessIDs: []int64{3}}},
		70: {UserType: domain.UserAdmin, Account: &domain.Account{UserID: 70, IsAdmin: true}},
	}}
	return NewService(repo, fakeProviders{}, resolver, logger.NewNop()), repo
}

func TestService_GetByID_Access(t *testing.T) {
	s, _ := newService()
	ctx := context.Background()

	resp, err := s.GetByID(ctx, 1, 42)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", resp.Booking.BookingDate)
	assert.Equal(t, models.ViewerOwner, resp.ViewerRole)
	assert.True(t, resp.CanCancel)

	resp, err = s.GetByID(ctx, 1, 60)
	require.NoError(t, err)
	assert.Equal(t, models.ViewerBusiness, resp.ViewerRole)

	resp, err = s.GetByID(ctx, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, models.ViewerBusiness, resp.ViewerRole)

	resp, err = s.GetByID(ctx, 1, 70)
	require.NoError(t, err)
	assert.Equal(t, models.ViewerAdmin, resp.ViewerRole)

	_, err = s.GetByID(ctx, 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetByID(ctx, 404, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetByID_EndTime(t *testing.T) {
	s, repo := newService()
	repo.bookings[1].DurationMinutes = 90

	resp, err := s.GetByID(context.Background(), 1, 42)

	require.NoError(t, err)
	assert.Equal(t, "11:30", resp.EndTime)
}

func TestService_DeniedAccessDropsCachedRole(t *testing.T) {
	s, _ := newService()
	resolver := s.resolver.(*fakeResolver)

	_, err := s.GetByID(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, []int64{99}, resolver.invalidated)

	_, err = s.GetByID(context.Background(), 1, 60)
	require.NoError(t, err)
	assert.Equal(t, []int64{99}, resolver.invalidated)
}

func TestService_Cancel_ByOwner(t *testing.T) {
	s, repo := newService()

	resp, err := s.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42, CancellationReason: ptr.Ptr("sick pet")})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByUser, repo.cancelled[1])
	assert.Equal(t, string(domain.StatusCancelledByUser), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "sick pet", *resp.CancellationReason)
}

func TestService_Cancel_ByBusiness(t *testing.T) {
	s, repo := newService()

	resp, err := s.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 60})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByBusiness, repo.cancelled[1])
	assert.Equal(t, string(domain.StatusCancelledByBusiness), resp.Status)
}

func TestService_Cancel_Rejected(t *testing.T) {
	s, repo := newService()
	ctx := context.Background()

	_, err := s.Cancel(ctx, 1, &models.CancelBookingRequest{UserID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.Cancel(ctx, 2, &models.CancelBookingRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)

	_, err = s.Cancel(ctx, 2, &models.CancelBookingRequest{UserID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied, "foreign users learn nothing about the status")

	assert.Empty(t, repo.cancelled)
}

func TestService_GetProviderBookings(t *testing.T) {
	s, repo := newService()
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{UserID: 42, ProviderID: 11})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{UserID: 60, ProviderID: 11, Status: ptr.Ptr("bogus")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := s.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{
		UserID:     60,
		ProviderID: 11,
		StartDate:  &day,
		EndDate:    &day,
		Status:     ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	require.NotNil(t, repo.filter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.filter.Status)
}

func TestService_UpdateStatus(t *testing.T) {
	s, repo := newService()
	ctx := context.Background()

	assert.ErrorIs(t, s.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 60, Status: "done"}), ErrInvalidInput)
	assert.ErrorIs(t, s.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 42, Status: "confirmed"}), ErrAccessDenied)

	require.NoError(t, s.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 70, Status: "confirmed"}))
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
}
