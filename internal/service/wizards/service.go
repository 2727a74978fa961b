package wizards

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/infra/session"
	catalogRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/PetCare-BookingService/internal/recurrence"
	"github.com/m04kA/PetCare-BookingService/internal/service/wizards/models"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// Service управляет жизненным циклом сессий мастера бронирования
type Service struct {
	catalog  CatalogRepository
	store    SessionStore
	expander *recurrence.Expander
	logger   Logger
}

// NewService создает новый экземпляр сервиса мастера
func NewService(catalog CatalogRepository, store SessionStore, expander *recurrence.Expander, logger Logger) *Service {
	return &Service{
		catalog:  catalog,
		store:    store,
		expander: expander,
		logger:   logger,
	}
}

// Start создает мастер для услуги: загружает услугу, специалистов бизнеса и пакеты
func (s *Service) Start(ctx context.Context, req *models.StartWizardRequest) (*models.WizardResponse, error) {
	s.logger.Info("StartWizard: user=%d, service=%d", req.UserID, req.ServiceID)

	service, err := s.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("StartWizard: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("StartWizard: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Start - get service: %v", ErrInternal, err)
	}

	providers, err := s.catalog.GetProvidersByBusiness(ctx, service.BusinessID)
	if err != nil {
		s.logger.Error("StartWizard: failed to get providers of business id=%d: %v", service.BusinessID, err)
		return nil, fmt.Errorf("%w: Start - get providers: %v", ErrInternal, err)
	}
	if len(providers) == 0 {
		s.logger.Warn("StartWizard: business id=%d has no active providers", service.BusinessID)
		return nil, ErrNoProviders
	}

	packages, err := s.catalog.GetPackagesByService(ctx, service.ID)
	if err != nil {
		s.logger.Error("StartWizard: failed to get packages of service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: Start - get packages: %v", ErrInternal, err)
	}

	w := wizard.New(s.expander, *service, providers, packages, req.UserID)
	var guestKey string
	if req.UserID == 0 {
		guestKey = uuid.NewString()
		w.SetGuestKey(guestKey)
	}
	id := s.store.Create(w)

	s.logger.Info("StartWizard: created wizard id=%s for user=%d, guest=%t, providers=%d, packages=%d",
		id, req.UserID, guestKey != "", len(providers), len(packages))
	resp := models.FromWizard(id, w)
	resp.GuestKey = guestKey
	return resp, nil
}

// Get возвращает текущее состояние мастера
func (s *Service) Get(ctx context.Context, id string, userID int64) (*models.WizardResponse, error) {
	var resp *models.WizardResponse
	err := s.withOwned(ctx, id, userID, func(w *wizard.Wizard) error {
		resp = models.FromWizard(id, w)
		return nil
	})
	return resp, err
}

// UpdateSchedule применяет изменения первого шага целиком или не применяет вовсе
func (s *Service) UpdateSchedule(ctx context.Context, id string, userID int64, req *models.UpdateScheduleRequest) (*models.WizardResponse, error) {
	s.logger.Info("UpdateSchedule: wizard id=%s, user=%d", id, userID)

	var resp *models.WizardResponse
	err := s.withOwned(ctx, id, userID, func(w *wizard.Wizard) error {
		draft := w.Clone()
		if err := applySchedule(draft, req); err != nil {
			s.logger.Warn("UpdateSchedule: wizard id=%s rejected changes: %v", id, err)
			return err
		}
		*w = *draft
		resp = models.FromWizard(id, w)
		return nil
	})
	return resp, err
}

func applySchedule(w *wizard.Wizard, req *models.UpdateScheduleRequest) error {
	if req.ProviderID != nil {
		if err := w.SelectProvider(*req.ProviderID); err != nil {
			return err
		}
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return err
		}
		if err := w.SelectDate(date); err != nil {
			return err
		}
	}
	if req.Time != nil {
		if err := w.SelectTime(types.TimeString(*req.Time)); err != nil {
			return err
		}
	}

	var cadence domain.Cadence
	if req.Cadence != nil {
		cadence = domain.Cadence(*req.Cadence)
	}
	switch {
	case req.Recurring != nil && *req.Recurring:
		if err := w.EnableRecurring(cadence); err != nil {
			return err
		}
	case req.Recurring != nil:
		if err := w.DisableRecurring(); err != nil {
			return err
		}
		if cadence != "" {
			if err := w.SetCadence(cadence); err != nil {
				return err
			}
		}
	case cadence != "":
		if err := w.SetCadence(cadence); err != nil {
			return err
		}
	}

	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return err
		}
		if err := w.SetEndDate(endDate); err != nil {
			return err
		}
	}

	if req.ClearPackage {
		if err := w.ClearPackage(); err != nil {
			return err
		}
	} else if req.PackageID != nil {
		if err := w.SelectPackage(*req.PackageID); err != nil {
			return err
		}
	}

	return nil
}

// UpdatePet применяет изменения второго шага
func (s *Service) UpdatePet(ctx context.Context, id string, userID int64, req *models.UpdatePetRequest) (*models.WizardResponse, error) {
	s.logger.Info("UpdatePet: wizard id=%s, user=%d", id, userID)

	var resp *models.WizardResponse
	err := s.withOwned(ctx, id, userID, func(w *wizard.Wizard) error {
		draft := w.Clone()
		if err := draft.SetPetDetails(req.PetName, domain.PetType(req.PetType), req.SpecialInstructions); err != nil {
			return err
		}
		if err := draft.SetContact(req.CustomerName, req.CustomerEmail, req.CustomerPhone); err != nil {
			return err
		}
		*w = *draft
		resp = models.FromWizard(id, w)
		return nil
	})
	return resp, err
}

// Next переводит мастер на следующий шаг
func (s *Service) Next(ctx context.Context, id string, userID int64) (*models.WizardResponse, error) {
	return s.move(ctx, id, userID, "Next", (*wizard.Wizard).Next)
}

// Back возвращает мастер на предыдущий шаг
func (s *Service) Back(ctx context.Context, id string, userID int64) (*models.WizardResponse, error) {
	return s.move(ctx, id, userID, "Back", (*wizard.Wizard).Back)
}

func (s *Service) move(ctx context.Context, id string, userID int64, op string, step func(*wizard.Wizard) error) (*models.WizardResponse, error) {
	var resp *models.WizardResponse
	err := s.withOwned(ctx, id, userID, func(w *wizard.Wizard) error {
		from := w.Step()
		if err := step(w); err != nil {
			s.logger.Warn("%s: wizard id=%s stays at %s: %v", op, id, from, err)
			return err
		}
		s.logger.Info("%s: wizard id=%s moved %s -> %s", op, id, from, w.Step())
		resp = models.FromWizard(id, w)
		return nil
	})
	return resp, err
}

// PreviewRecurrence считает серию без создания мастера
func (s *Service) PreviewRecurrence(req *models.PreviewRequest) (*models.PreviewResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	preview, err := s.expander.Preview(domain.RecurrenceRule{
		Cadence:   domain.Cadence(req.Cadence),
		StartDate: start,
		EndDate:   end,
		BasePrice: req.BasePrice,
	}, types.TimeString(req.Time), req.DurationMinutes, nil)
	if err != nil {
		return nil, err
	}

	return models.FromPreview(preview), nil
}

// withOwned выполняет fn над мастером, доступным пользователю
// Гостевой черновик открывается ключом из контекста и переходит к первому вошедшему пользователю
func (s *Service) withOwned(ctx context.Context, id string, userID int64, fn func(w *wizard.Wizard) error) error {
	err := s.store.With(id, func(w *wizard.Wizard) error {
		wasGuest := w.OwnerID() == 0
		if err := w.Authorize(userID, access.GuestKey(ctx)); err != nil {
			s.logger.Warn("wizard id=%s: access denied for user=%d", id, userID)
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
		if wasGuest && userID != 0 {
			s.logger.Info("wizard id=%s: guest draft claimed by user=%d", id, userID)
		}
		return fn(w)
	})
	if errors.Is(err, session.ErrSessionNotFound) {
		return ErrWizardNotFound
	}
	return err
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return date, nil
}
