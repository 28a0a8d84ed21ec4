package handlers

import (
	"encoding/json"
	"errors"
	"hrbot/internal/logger"
	"hrbot/internal/services"
	helpers "hrbot/internal/utils/helpers"
	"net/http"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type telegramAuthRequest struct {
	TelegramID int64 `json:"telegram_id"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// TelegramAuth godoc
// @Summary Проверка допуска Telegram-аккаунта
// @Tags auth
// @Accept json
// @Produce json
// @Param input body telegramAuthRequest true "Telegram ID"
// @Success 200 {object} models.TelegramAuthResponse
// @Failure 400 {string} string "Ошибка запроса"
// @Router /api/v1/auth/telegram [post]
func (h *AuthHandler) TelegramAuth(w http.ResponseWriter, r *http.Request) {
	var req telegramAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	auth, err := h.authService.TelegramAuth(r.Context(), req.TelegramID)
	if err != nil {
		respondError(w, err, "Ошибка проверки доступа")
		return
	}
	helpers.JSON(w, http.StatusOK, auth)
}

// Login godoc
// @Summary Вход в админ-панель
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Логин и пароль"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "Неверный логин или пароль"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	token, err := h.authService.AdminLogin(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			helpers.Error(w, http.StatusUnauthorized, "Неверный логин или пароль")
			return
		}
		respondError(w, err, "Ошибка входа")
		return
	}

	logger.Log.Info("Выдан access-токен", zap.String("login", req.Login))
	helpers.JSON(w, http.StatusOK, loginResponse{AccessToken: token})
}
