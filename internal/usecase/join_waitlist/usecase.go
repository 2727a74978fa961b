package join_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/infra/session"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
)

// UseCase use case записи в лист ожидания из мастера бронирования
type UseCase struct {
	waitlistRepo WaitlistRepository
	sessions     SessionStore
	resolver     AccessResolver
	publisher    EventPublisher
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	waitlistRepo WaitlistRepository,
	sessions SessionStore,
	resolver AccessResolver,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		waitlistRepo: waitlistRepo,
		sessions:     sessions,
		resolver:     resolver,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case записи в лист ожидания
// Шаг и черновик мастера не меняются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("JoinWaitlist: wizard=%s, user=%d", req.WizardID, req.UserID)

	// 1. Валидация входных данных
	if req.WizardID == "" {
		return nil, fmt.Errorf("%w: wizard id is required", ErrInvalidInput)
	}

	// 2. Гости не могут записываться
	resolution := uc.resolver.Resolve(ctx, domain.Session{UserID: req.UserID})
	if resolution.UserType == domain.UserGuest {
		uc.logger.Warn("JoinWaitlist: guest tried to join from wizard=%s", req.WizardID)
		return nil, ErrAuthRequired
	}

	// 3. Собираем запись из черновика; гостевой черновик переходит к пользователю с ключом гостя
	var entry *domain.WaitlistEntry
	err := uc.sessions.With(req.WizardID, func(w *wizard.Wizard) error {
		if err := w.Authorize(req.UserID, access.GuestKey(ctx)); err != nil {
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
		built, err := w.BuildWaitlistEntry(req.Notes)
		if err != nil {
			return err
		}
		entry = built
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrWizardNotFound
		}
		uc.logger.Warn("JoinWaitlist: wizard=%s rejected: %v", req.WizardID, err)
		return nil, err
	}

	// 4. Сохраняем запись
	created, err := uc.waitlistRepo.Create(ctx, entry)
	if err != nil {
		uc.logger.Error("JoinWaitlist: failed to create entry for wizard=%s: %v", req.WizardID, err)
		return nil, fmt.Errorf("%w: failed to create waitlist entry: %v", ErrInternal, err)
	}
	uc.metrics.WaitlistEntryCreated()

	// 5. Событие не влияет на результат
	if err := uc.publisher.PublishWaitlistJoined(ctx, created); err != nil {
		uc.logger.Warn("JoinWaitlist: failed to publish event for entry id=%d: %v", created.ID, err)
	}

	uc.logger.Info("JoinWaitlist: created entry id=%d for provider=%d", created.ID, created.ProviderID)
	return fromDomain(created), nil
}
