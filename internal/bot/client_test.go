package bot

import (
	"context"
	"encoding/json"
	"hrbot/internal/apperrors"
	"hrbot/internal/models"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeJSON(t *testing.T, w http.ResponseWriter, status int, data interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"data": data}))
}

func TestClientGetNode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/nodes/7", r.URL.Path)
		envelopeJSON(t, w, http.StatusOK, models.NodeView{ID: 7, Title: "Отпуск"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	view, err := client.GetNode(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, view.ID)
	assert.Equal(t, "Отпуск", view.Title)
}

func TestClientGetNodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetNode(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClientGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/telegram", r.URL.Path)

		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(100), body["telegram_id"])

		envelopeJSON(t, w, http.StatusOK, models.TelegramAuthResponse{Allowed: true, Role: models.RoleUser})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	auth, err := client.GetUser(context.Background(), 100)
	require.NoError(t, err)
	assert.True(t, auth.Allowed)
	assert.Equal(t, models.RoleUser, auth.Role)
}

func TestClientValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "текст обращения обязателен"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SendHRRequest(context.Background(), 100, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "обязателен")
}

func TestClientGetHRRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "100", q.Get("telegram_id"))
		assert.Equal(t, "5", q.Get("offset"))
		assert.Equal(t, "6", q.Get("limit"))
		envelopeJSON(t, w, http.StatusOK, []models.HRRequest{{ID: 6}, {ID: 5}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	list, err := client.GetHRRequests(context.Background(), 100, 5, 6)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 6, list[0].ID)
}
