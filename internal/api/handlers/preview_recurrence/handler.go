package preview_recurrence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/wizards"
	"github.com/m04kA/PetCare-BookingService/internal/service/wizards/models"
)

const (
	msgInvalidParams   = "некорректные параметры запроса"
	msgInvalidDuration = "некорректная длительность визита"
	msgInvalidPrice    = "некорректная цена"
)

type Handler struct {
	service WizardService
	logger  Logger
}

func NewHandler(service WizardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/recurrence/preview
// Query params: cadence, startDate, endDate, time (обязательные), duration, basePrice (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.PreviewRequest{
		Cadence:         query.Get("cadence"),
		StartDate:       query.Get("startDate"),
		EndDate:         query.Get("endDate"),
		Time:            query.Get("time"),
		DurationMinutes: domain.DefaultDurationMinutes,
	}

	if raw := query.Get("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /recurrence/preview - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.DurationMinutes = duration
	}

	if raw := query.Get("basePrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.logger.Warn("GET /recurrence/preview - Invalid base price: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPrice)
			return
		}
		req.BasePrice = price
	}

	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("GET /recurrence/preview - Validation failed: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidParams, err.Error())
		return
	}

	result, err := h.service.PreviewRecurrence(req)
	if err != nil {
		if handlers.RespondWizardError(w, err) {
			h.logger.Warn("GET /recurrence/preview - Invalid rule: %v", err)
			return
		}
		if errors.Is(err, wizards.ErrInvalidInput) {
			h.logger.Warn("GET /recurrence/preview - Invalid input: %v", err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidParams, err.Error())
			return
		}
		h.logger.Error("GET /recurrence/preview - Failed to preview: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /recurrence/preview - Preview calculated: cadence=%s, count=%d", result.Cadence, result.OccurrenceCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
