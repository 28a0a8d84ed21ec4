package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hrbot/internal/apperrors"
	"hrbot/internal/models"
	"net/http"
	"strings"
	"time"
)

// Client — HTTP-клиент к API контент-сервиса. Ходит в те же ручки,
// что и админ-панель, но только на чтение и на создание обращений.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("запрос к бэкенду: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.ErrNotFound
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("ответ бэкенда: %w", err)
	}
	if resp.StatusCode >= 400 {
		if env.Error != "" {
			return apperrors.Validation(env.Error)
		}
		return fmt.Errorf("бэкенд вернул статус %d", resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("ответ бэкенда: %w", err)
		}
	}
	return nil
}

func (c *Client) GetUser(ctx context.Context, telegramID int64) (*models.TelegramAuthResponse, error) {
	var auth models.TelegramAuthResponse
	body := map[string]int64{"telegram_id": telegramID}
	if err := c.call(ctx, http.MethodPost, "/api/v1/auth/telegram", body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *Client) GetRootNode(ctx context.Context) (*models.NodeView, error) {
	var view models.NodeView
	if err := c.call(ctx, http.MethodGet, "/api/v1/nodes/root", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) GetNode(ctx context.Context, nodeID int) (*models.NodeView, error) {
	var view models.NodeView
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/nodes/%d", nodeID), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) SendHRRequest(ctx context.Context, telegramID int64, message string) (*models.HRRequest, error) {
	var req models.HRRequest
	body := map[string]interface{}{"telegram_id": telegramID, "message": message}
	if err := c.call(ctx, http.MethodPost, "/api/v1/hr-request", body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (c *Client) GetHRRequests(ctx context.Context, telegramID int64, offset, limit int) ([]*models.HRRequest, error) {
	var list []*models.HRRequest
	path := fmt.Sprintf("/api/v1/hr-requests?telegram_id=%d&offset=%d&limit=%d", telegramID, offset, limit)
	if err := c.call(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
