package cancel_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
)

type fakeService struct {
	err       error
	bookingID int64
	req       *models.CancelBookingRequest
}

func (f *fakeService) Cancel(_ context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	f.bookingID = bookingID
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{
		ID:                 bookingID,
		UserID:             req.UserID,
		PetName:            "Шарик",
		Status:             "cancelled_by_user",
		CancellationReason: req.CancellationReason,
	}, nil
}

func serve(svc *fakeService, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/bookings/{bookingId}/cancel", middleware.Auth(
		http.HandlerFunc(NewHandler(svc, logger.NewNop()).Handle),
	)).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_WithReason(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/bookings/15/cancel", `{"cancellationReason":"питомец заболел"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(15), svc.bookingID)
	assert.Equal(t, int64(7), svc.req.UserID)
	require.NotNil(t, svc.req.CancellationReason)
	assert.Equal(t, "питомец заболел", *svc.req.CancellationReason)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(15), body.ID)
	assert.Equal(t, "cancelled_by_user", body.Status)
	require.NotNil(t, body.CancellationReason)
	assert.Equal(t, "питомец заболел", *body.CancellationReason)
}

func TestHandler_EmptyBody(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/bookings/15/cancel", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.req.CancellationReason)
}

func TestHandler_BadInput(t *testing.T) {
	rec := serve(&fakeService{}, "/bookings/abc/cancel", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeService{}, "/bookings/15/cancel", `{"unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeService{}, "/bookings/15/cancel", fmt.Sprintf(`{"cancellationReason":%q}`, strings.Repeat("x", 501)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "foreign booking", err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{name: "provider removed", err: bookings.ErrProviderNotFound, want: http.StatusForbidden},
		{name: "already finished", err: fmt.Errorf("%w: status completed", bookings.ErrCannotCancel), want: http.StatusConflict},
		{name: "unexpected", err: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "/bookings/15/cancel", "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
