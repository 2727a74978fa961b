package get_time_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
	"github.com/m04kA/PetCare-BookingService/pkg/ptr"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookings struct {
	bookings []*domain.Booking
	calls    int
	err      error
}

func (f *fakeBookings) GetByProviderWithFilter(context.Context, domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, f.err
}

type fakeCatalog struct{}

func (fakeCatalog) GetProviderByID(_ context.Context, id int64) (*domain.Provider, error) {
	switch id {
	case 11:
		return &domain.Provider{ID: 11, BusinessID: 3, IsActive: true}, nil
	case 12:
		return &domain.Provider{ID: 12, BusinessID: 3, IsActive: false}, nil
	default:
		return nil, catalogRepo.ErrProviderNotFound
	}
}

func (fakeCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	switch id {
	case 7:
		return &domain.Service{ID: 7, BusinessID: 3, DurationMinutes: 90}, nil
	case 8:
		return &domain.Service{ID: 8, BusinessID: 4, DurationMinutes: 60}, nil
	default:
		return nil, catalogRepo.ErrServiceNotFound
	}
}

type fakeWaitlist struct {
	count int
	err   error
}

func (f fakeWaitlist) CountWaiting(context.Context, int64) (int, error) {
	return f.count, f.err
}

func newUseCase(bookings *fakeBookings, waitlist fakeWaitlist, capacity int, now time.Time) *UseCase {
	uc := NewUseCase(bookings, fakeCatalog{}, waitlist, capacity, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func booking(at string, duration int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{BookingTime: types.TimeString(at), DurationMinutes: duration, Status: status}
}

func TestUseCase_Execute_CountsOverlaps(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	bookings := &fakeBookings{bookings: []*domain.Booking{
		booking("10:00", 60, domain.StatusConfirmed),
		booking("10:30", 60, domain.StatusPending),
		booking("12:00", 60, domain.StatusCancelledByUser),
	}}
	uc := newUseCase(bookings, fakeWaitlist{count: 3}, 2, date.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 11, Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Slots, len(domain.TimeSlots))
	assert.Equal(t, 3, resp.WaitlistCount)

	byTime := map[string]domain.AvailableSlot{}
	for _, s := range resp.Slots {
		byTime[s.StartTime.String()] = s
	}

	// 09:00-10:00 граничит с 10:00 и не пересекается
	assert.Equal(t, 2, byTime["09:00"].AvailableSpots)
	assert.Equal(t, 0, byTime["10:00"].AvailableSpots)
	slot10 := byTime["10:00"]
	assert.True(t, slot10.IsFull())
	assert.Equal(t, 1, byTime["11:00"].AvailableSpots)
	assert.Equal(t, 2, byTime["12:00"].AvailableSpots)
	assert.Equal(t, 2, byTime["12:00"].TotalSpots)
	assert.Equal(t, domain.DefaultDurationMinutes, byTime["12:00"].DurationMinutes)
}

func TestUseCase_Execute_ServiceDuration(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	bookings := &fakeBookings{bookings: []*domain.Booking{booking("10:00", 60, domain.StatusConfirmed)}}
	uc := newUseCase(bookings, fakeWaitlist{}, 1, date.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 11, ServiceID: ptr.Ptr(int64(7)), Date: date})
	require.NoError(t, err)

	// 09:00-10:30 пересекается с 10:00-11:00
	assert.Equal(t, 90, resp.Slots[0].DurationMinutes)
	assert.Equal(t, 0, resp.Slots[0].AvailableSpots)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	bookings := &fakeBookings{}
	uc := newUseCase(bookings, fakeWaitlist{}, 1, date.AddDate(0, 0, 1))

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 11, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Zero(t, bookings.calls)
}

func TestUseCase_Execute_TodaySkipsPastSlots(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	uc := newUseCase(&fakeBookings{}, fakeWaitlist{}, 1, date.Add(13*time.Hour+30*time.Minute))

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 11, Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, "14:00", resp.Slots[0].StartTime.String())
}

func TestUseCase_Execute_Errors(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	now := date.AddDate(0, 0, -1)

	tests := []struct {
		name     string
		req      *Request
		bookings *fakeBookings
		wantErr  error
	}{
		{name: "no provider id", req: &Request{Date: date}, wantErr: ErrInvalidInput},
		{name: "no date", req: &Request{ProviderID: 11}, wantErr: ErrInvalidInput},
		{name: "unknown provider", req: &Request{ProviderID: 99, Date: date}, wantErr: ErrProviderNotFound},
		{name: "inactive provider", req: &Request{ProviderID: 12, Date: date}, wantErr: ErrProviderNotFound},
		{name: "unknown service", req: &Request{ProviderID: 11, ServiceID: ptr.Ptr(int64(99)), Date: date}, wantErr: ErrServiceNotFound},
		{name: "foreign service", req: &Request{ProviderID: 11, ServiceID: ptr.Ptr(int64(8)), Date: date}, wantErr: ErrServiceNotOffered},
		{
			name:     "storage failure",
			req:      &Request{ProviderID: 11, Date: date},
			bookings: &fakeBookings{err: errors.New("connection reset")},
			wantErr:  ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := tt.bookings
			if bookings == nil {
				bookings = &fakeBookings{}
			}
			uc := newUseCase(bookings, fakeWaitlist{}, 1, now)

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_WaitlistFailureIgnored(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	uc := newUseCase(&fakeBookings{}, fakeWaitlist{err: errors.New("timeout")}, 0, date.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 11, Date: date})
	require.NoError(t, err)
	assert.Zero(t, resp.WaitlistCount)
	assert.Equal(t, domain.DefaultProviderCapacity, resp.Slots[0].TotalSpots)
}
