package accounts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/pkg/logger"
)

func TestClient_GetAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/1/account":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":1,"is_admin":false,"business_ids":[3,4]}`))
		case "/internal/users/2/account":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, logger.NewNop())

	account, err := c.GetAccount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.UserID)
	assert.Equal(t, []int64{3, 4}, account.BusinessIDs)
	assert.True(t, account.OwnsBusiness(4))

	account, err = c.GetAccount(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, account.IsAdmin)
	assert.Empty(t, account.BusinessIDs)

	_, err = c.GetAccount(context.Background(), 3)
	assert.ErrorIs(t, err, ErrServiceDegraded)
}
