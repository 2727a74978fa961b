package confirm_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/infra/session"
	"github.com/m04kA/PetCare-BookingService/internal/recurrence"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
)

type fakeRepo struct {
	err     error
	calls   int
	onWrite func()
	stored  []*domain.Booking
}

func (f *fakeRepo) CreateBatch(_ context.Context, bookings []domain.Booking) ([]domain.Booking, error) {
	f.calls++
	if f.onWrite != nil {
		f.onWrite()
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Booking, len(bookings))
	for i, b := range bookings {
		b.ID = int64(100 + len(f.stored))
		out[i] = b
		stored := b
		f.stored = append(f.stored, &stored)
	}
	return out, nil
}

func (f *fakeRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	var res []*domain.Booking
	for _, b := range f.stored {
		if b.ProviderID != filter.ProviderID || !b.IsActive() {
			continue
		}
		if filter.StartDate != nil && b.BookingDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.BookingDate.After(*filter.EndDate) {
			continue
		}
		res = append(res, b)
	}
	return res, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type passTx struct{}

func (passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, s domain.Session) access.Resolution {
	if s.IsAnonymous() {
		return access.Resolution{UserType: domain.UserGuest}
	}
	return access.Resolution{UserType: domain.UserRegular}
}

type fakePublisher struct {
	published []domain.Booking
	err       error
}

func (f *fakePublisher) PublishBookingsCreated(_ context.Context, bookings []domain.Booking) error {
	f.published = append(f.published, bookings...)
	return f.err
}

type fakeMetrics struct {
	created   int
	recurring bool
	failed    int
}

func (f *fakeMetrics) BookingsCreated(count int, recurring bool) {
	f.created += count
	f.recurring = recurring
}

func (f *fakeMetrics) SubmissionFailed() { f.failed++ }

type fixture struct {
	uc        *UseCase
	store     *session.Store
	repo      *fakeRepo
	publisher *fakePublisher
	metrics   *fakeMetrics
}

var march1 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	return newFixtureWithCapacity(1)
}

func newFixtureWithCapacity(capacity int) *fixture {
	f := &fixture{
		store:     session.NewStore(time.Minute, time.Minute, nil),
		repo:      &fakeRepo{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	f.uc = NewUseCase(f.repo, f.store, fakeResolver{}, passTx{}, f.publisher, f.metrics, "", capacity, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)}
	return f
}

// readyWizard собирает мастер на шаге подтверждения: 10:00 у специалиста 11
func readyWizard(t *testing.T, owner int64, day time.Time, recurring bool) *wizard.Wizard {
	t.Helper()
	w := wizard.New(
		recurrence.NewExpander(0),
		domain.Service{ID: 7, BusinessID: 3, Name: "Grooming", Price: 100, DurationMinutes: 60},
		[]domain.Provider{{ID: 11, BusinessID: 3, IsActive: true}},
		nil,
		owner,
	)
	require.NoError(t, w.SelectDate(day))
	require.NoError(t, w.SelectTime("10:00"))
	if recurring {
		require.NoError(t, w.EnableRecurring(domain.CadenceWeekly))
		require.NoError(t, w.SetEndDate(day.AddDate(0, 0, 28)))
	}
	require.NoError(t, w.Next())
	require.NoError(t, w.SetPetDetails("Rex", domain.PetDog, ""))
	require.NoError(t, w.Next())
	return w
}

// confirmedWizard создает мастер пользователя 42 на 1 марта
func (f *fixture) confirmedWizard(t *testing.T, recurring bool) string {
	t.Helper()
	return f.store.Create(readyWizard(t, 42, march1, recurring))
}

func (f *fixture) status(t *testing.T, id string) domain.SubmissionStatus {
	t.Helper()
	var status domain.SubmissionStatus
	require.NoError(t, f.store.With(id, func(w *wizard.Wizard) error {
		status = w.Status()
		return nil
	}))
	return status
}

func TestUseCase_Execute_Single(t *testing.T) {
	f := newFixture()
	id := f.confirmedWizard(t, false)

	resp, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.False(t, resp.IsRecurring)
	assert.Equal(t, 100.0, resp.TotalPrice)
	assert.Equal(t, int64(100), resp.Bookings[0].ID)

	assert.Equal(t, 1, f.metrics.created)
	assert.Len(t, f.publisher.published, 1)

	// Завершенный мастер удаляется, повторная отправка ничего не создает
	assert.Zero(t, f.store.Count())
	_, err = f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	assert.ErrorIs(t, err, ErrWizardNotFound)
	assert.Equal(t, 1, f.repo.calls)
}

func TestUseCase_Execute_Recurring(t *testing.T) {
	f := newFixture()
	id := f.confirmedWizard(t, true)

	resp, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	require.NoError(t, err)

	// 1, 8, 15, 22, 29 марта
	assert.Equal(t, 5, resp.Count)
	assert.True(t, resp.IsRecurring)
	assert.Equal(t, 500.0, resp.TotalPrice)
	assert.True(t, f.metrics.recurring)
	assert.Len(t, f.publisher.published, 5)
}

func TestUseCase_Execute_StoreFailureKeepsDraft(t *testing.T) {
	f := newFixture()
	f.repo.err = errors.New("could not serialize access")
	id := f.confirmedWizard(t, false)

	_, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.Equal(t, domain.SubmissionEditing, f.status(t, id))
	assert.Equal(t, 1, f.metrics.failed)
	assert.Empty(t, f.publisher.published)

	// После ошибки можно повторить
	f.repo.err = nil
	_, err = f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	require.NoError(t, err)
}

func TestUseCase_Execute_RejectsSecondSubmitInFlight(t *testing.T) {
	f := newFixture()
	id := f.confirmedWizard(t, false)

	var inFlightErr error
	f.repo.onWrite = func() {
		_, inFlightErr = f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	}

	_, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	require.NoError(t, err)
	assert.ErrorIs(t, inFlightErr, wizard.ErrSubmissionInProgress)
	assert.Equal(t, 1, f.repo.calls)
}

func TestUseCase_Execute_PublishFailureIgnored(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker unavailable")
	id := f.confirmedWizard(t, false)

	_, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	require.NoError(t, err)
	assert.Zero(t, f.store.Count())
}

func TestUseCase_Execute_AccessErrors(t *testing.T) {
	f := newFixture()
	id := f.confirmedWizard(t, false)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "guest", req: &Request{WizardID: id}, wantErr: ErrAuthRequired},
		{name: "foreign wizard", req: &Request{WizardID: id, UserID: 43}, wantErr: ErrAccessDenied},
		{name: "unknown wizard", req: &Request{WizardID: "missing", UserID: 42}, wantErr: ErrWizardNotFound},
		{name: "empty id", req: &Request{UserID: 42}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Zero(t, f.repo.calls)
}

func TestUseCase_Execute_NotAtConfirmation(t *testing.T) {
	f := newFixture()
	w := wizard.New(nil, domain.Service{ID: 7, Price: 10}, []domain.Provider{{ID: 11}}, nil, 42)
	id := f.store.Create(w)

	_, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	assert.ErrorIs(t, err, wizard.ErrNotAtConfirmation)
	assert.Equal(t, domain.SubmissionEditing, f.status(t, id))
}

func TestUseCase_Execute_GuestDraftConfirmedAfterSignIn(t *testing.T) {
	f := newFixture()
	w := readyWizard(t, 0, march1, true)
	w.SetGuestKey("guest-key")
	id := f.store.Create(w)
	ctx := access.WithGuestKey(context.Background(), "guest-key")

	_, err := f.uc.Execute(ctx, &Request{WizardID: id})
	require.ErrorIs(t, err, ErrAuthRequired)

	resp, err := f.uc.Execute(ctx, &Request{WizardID: id, UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Count)
	for _, b := range resp.Bookings {
		assert.Equal(t, int64(42), b.UserID)
	}
	for _, b := range f.repo.stored {
		assert.Equal(t, int64(42), b.UserID)
	}
}

func TestUseCase_Execute_GuestDraftNeedsKey(t *testing.T) {
	f := newFixture()
	w := readyWizard(t, 0, march1, false)
	w.SetGuestKey("guest-key")
	id := f.store.Create(w)

	_, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	assert.ErrorIs(t, err, ErrAccessDenied)

	wrong := access.WithGuestKey(context.Background(), "other-key")
	_, err = f.uc.Execute(wrong, &Request{WizardID: id, UserID: 42})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Черновик, подтвержденный одним пользователем, другому недоступен
	right := access.WithGuestKey(context.Background(), "guest-key")
	require.NoError(t, f.store.With(id, func(w *wizard.Wizard) error {
		return w.Authorize(42, "guest-key")
	}))
	_, err = f.uc.Execute(right, &Request{WizardID: id, UserID: 43})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, f.repo.calls)
}

func TestUseCase_Execute_SlotTaken(t *testing.T) {
	f := newFixture()
	first := f.store.Create(readyWizard(t, 42, march1, false))
	second := f.store.Create(readyWizard(t, 43, march1, false))

	_, err := f.uc.Execute(context.Background(), &Request{WizardID: first, UserID: 42})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{WizardID: second, UserID: 43})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.repo.calls)
	assert.Len(t, f.repo.stored, 1)

	// Черновик остается, можно выбрать другое время или встать в лист ожидания
	assert.Equal(t, domain.SubmissionEditing, f.status(t, second))
}

func TestUseCase_Execute_CapacityAllowsParallelBookings(t *testing.T) {
	f := newFixtureWithCapacity(2)
	ids := []string{
		f.store.Create(readyWizard(t, 41, march1, false)),
		f.store.Create(readyWizard(t, 42, march1, false)),
		f.store.Create(readyWizard(t, 43, march1, false)),
	}

	for i, id := range ids[:2] {
		_, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: int64(41 + i)})
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(context.Background(), &Request{WizardID: ids[2], UserID: 43})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, f.repo.stored, 2)
}

func TestUseCase_Execute_SeriesRejectedWhenOneOccurrenceTaken(t *testing.T) {
	f := newFixture()
	f.repo.stored = []*domain.Booking{
		{ID: 1, ProviderID: 11, BookingDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), BookingTime: "10:30", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ID: 2, ProviderID: 11, BookingDate: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), BookingTime: "10:00", DurationMinutes: 60, Status: domain.StatusCancelledByUser},
		{ID: 3, ProviderID: 12, BookingDate: time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC), BookingTime: "10:00", DurationMinutes: 60, Status: domain.StatusPending},
	}
	id := f.confirmedWizard(t, true)

	_, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})

	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Contains(t, err.Error(), "2024-03-15")
	assert.Zero(t, f.repo.calls)
}

func TestUseCase_Execute_AdjacentBookingDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.repo.stored = []*domain.Booking{
		{ID: 1, ProviderID: 11, BookingDate: march1, BookingTime: "09:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ID: 2, ProviderID: 11, BookingDate: march1, BookingTime: "11:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}
	id := f.confirmedWizard(t, false)

	_, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	require.NoError(t, err)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	f := newFixture()
	f.uc.timeProvider = fixedTime{now: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)}
	id := f.confirmedWizard(t, false)

	_, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})

	assert.ErrorIs(t, err, ErrPastDate)
	assert.Zero(t, f.repo.calls)
	assert.Equal(t, domain.SubmissionEditing, f.status(t, id))
}

func TestUseCase_Execute_SameDayLaterSlot(t *testing.T) {
	f := newFixture()
	f.uc.timeProvider = fixedTime{now: time.Date(2024, 3, 1, 9, 45, 0, 0, time.UTC)}
	id := f.confirmedWizard(t, false)

	_, err := f.uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	require.NoError(t, err)
}
