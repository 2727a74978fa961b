package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/recurrence"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
)

func TestRespondJSON_NilData(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRespondErrorWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithDetails(rec, http.StatusBadRequest, "ошибка", "подробности")

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Error: "ошибка", Details: "подробности"}, body)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var p payload
	err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &p)
	assert.ErrorIs(t, err, ErrEmptyBody)

	err = DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Рекс","age":3}`)), &p)
	assert.Error(t, err)

	err = DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Рекс"}`)), &p)
	require.NoError(t, err)
	assert.Equal(t, "Рекс", p.Name)
}

func TestValidate(t *testing.T) {
	type payload struct {
		Notes string `json:"notes" validate:"max=3"`
	}

	assert.NoError(t, Validate(&payload{Notes: "ok"}))

	err := Validate(&payload{Notes: "too long"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Notes")
}

func TestRespondWizardError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "step incomplete", err: fmt.Errorf("%w: pet name", wizard.ErrStepIncomplete), want: http.StatusConflict},
		{name: "in flight", err: wizard.ErrSubmissionInProgress, want: http.StatusConflict},
		{name: "unknown slot", err: wizard.ErrUnknownTimeSlot, want: http.StatusBadRequest},
		{name: "recurrence input", err: fmt.Errorf("preview: %w", recurrence.ErrEndBeforeStart), want: http.StatusBadRequest},
		{name: "too many", err: recurrence.ErrTooManyOccurrences, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.True(t, RespondWizardError(rec, tt.err))
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.False(t, RespondWizardError(httptest.NewRecorder(), fmt.Errorf("boom")))
}
