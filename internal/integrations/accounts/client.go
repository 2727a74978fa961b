package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// Client клиент сервиса аккаунтов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetAccount получает аккаунт пользователя
// Отсутствие записи (404) означает обычного пользователя без прав
func (c *Client) GetAccount(ctx context.Context, userID int64) (*domain.Account, error) {
	url := fmt.Sprintf("%s/internal/users/%d/account", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrServiceDegraded, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		c.log.Info("GetAccount: no account record for user id=%d", userID)
		return &domain.Account{UserID: userID}, nil
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("GetAccount: accounts service returned %d for user id=%d", resp.StatusCode, userID)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrServiceDegraded, resp.StatusCode, string(body))
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &domain.Account{
		UserID:      userID,
		IsAdmin:     account.IsAdmin,
		BusinessIDs: account.BusinessIDs,
	}, nil
}
