package join_waitlist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/infra/session"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
)

type fakeRepo struct {
	created []*domain.WaitlistEntry
	err     error
}

func (f *fakeRepo) Create(_ context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := *entry
	out.ID = int64(len(f.created) + 1)
	out.CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.created = append(f.created, &out)
	return &out, nil
}

type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, s domain.Session) access.Resolution {
	if s.IsAnonymous() {
		return access.Resolution{UserType: domain.UserGuest}
	}
	return access.Resolution{UserType: domain.UserRegular}
}

type fakePublisher struct {
	events int
	err    error
}

func (f *fakePublisher) PublishWaitlistJoined(context.Context, *domain.WaitlistEntry) error {
	f.events++
	return f.err
}

type fakeMetrics struct{ entries int }

func (f *fakeMetrics) WaitlistEntryCreated() { f.entries++ }

func setup() (*UseCase, *session.Store, *fakeRepo, *fakePublisher, *fakeMetrics) {
	store := session.NewStore(time.Minute, time.Minute, nil)
	repo := &fakeRepo{}
	publisher := &fakePublisher{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(repo, store, fakeResolver{}, publisher, metrics, logger.NewNop())
	return uc, store, repo, publisher, metrics
}

func newWizard(providers ...domain.Provider) *wizard.Wizard {
	return wizard.New(nil, domain.Service{ID: 7, BusinessID: 3, Price: 30}, providers, nil, 42)
}

func TestUseCase_Execute(t *testing.T) {
	uc, store, repo, publisher, metrics := setup()
	w := newWizard(domain.Provider{ID: 11})
	require.NoError(t, w.SelectDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, w.SelectTime("14:00"))
	id := store.Create(w)

	resp, err := uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42, Notes: "  mornings are better "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(11), resp.ProviderID)
	assert.Equal(t, int64(7), resp.ServiceID)
	require.NotNil(t, resp.PreferredDate)
	assert.Equal(t, "2024-03-05", *resp.PreferredDate)
	require.NotNil(t, resp.PreferredTime)
	assert.Equal(t, "14:00", *resp.PreferredTime)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "mornings are better", *resp.Notes)
	assert.Equal(t, "waiting", resp.Status)

	assert.Len(t, repo.created, 1)
	assert.Equal(t, 1, publisher.events)
	assert.Equal(t, 1, metrics.entries)

	// Шаг мастера не меняется
	require.NoError(t, store.With(id, func(w *wizard.Wizard) error {
		assert.Equal(t, domain.StepProviderTime, w.Step())
		assert.Equal(t, domain.SubmissionEditing, w.Status())
		return nil
	}))
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	uc, store, repo, _, _ := setup()
	withProvider := store.Create(newWizard(domain.Provider{ID: 11}))
	noProvider := store.Create(newWizard(domain.Provider{ID: 11}, domain.Provider{ID: 12}))

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "guest", req: &Request{WizardID: withProvider}, wantErr: ErrAuthRequired},
		{name: "foreign wizard", req: &Request{WizardID: withProvider, UserID: 7}, wantErr: ErrAccessDenied},
		{name: "unknown wizard", req: &Request{WizardID: "missing", UserID: 42}, wantErr: ErrWizardNotFound},
		{name: "empty id", req: &Request{UserID: 42}, wantErr: ErrInvalidInput},
		{name: "provider not chosen", req: &Request{WizardID: noProvider, UserID: 42}, wantErr: wizard.ErrProviderRequired},
		{
			name:    "notes too long",
			req:     &Request{WizardID: withProvider, UserID: 42, Notes: strings.Repeat("a", domain.MaxWaitlistNotesLength+1)},
			wantErr: wizard.ErrInvalidNotes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, repo.created)
}

func TestUseCase_Execute_StoreFailure(t *testing.T) {
	uc, store, repo, publisher, metrics := setup()
	repo.err = errors.New("connection refused")
	id := store.Create(newWizard(domain.Provider{ID: 11}))

	_, err := uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, publisher.events)
	assert.Zero(t, metrics.entries)
}

func TestUseCase_Execute_PublishFailureIgnored(t *testing.T) {
	uc, store, _, publisher, _ := setup()
	publisher.err = errors.New("broker down")
	id := store.Create(newWizard(domain.Provider{ID: 11}))

	resp, err := uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	require.NoError(t, err)
	assert.Nil(t, resp.PreferredDate)
	assert.Nil(t, resp.Notes)
}

func TestUseCase_Execute_GuestDraftAfterSignIn(t *testing.T) {
	uc, store, repo, _, _ := setup()
	w := wizard.New(nil, domain.Service{ID: 7, BusinessID: 3, Price: 30}, []domain.Provider{{ID: 11}}, nil, 0)
	w.SetGuestKey("guest-key")
	id := store.Create(w)

	_, err := uc.Execute(context.Background(), &Request{WizardID: id, UserID: 42})
	assert.ErrorIs(t, err, ErrAccessDenied)

	ctx := access.WithGuestKey(context.Background(), "guest-key")
	resp, err := uc.Execute(ctx, &Request{WizardID: id, UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.UserID)
	require.Len(t, repo.created, 1)
	assert.Equal(t, int64(42), repo.created[0].UserID)
}
