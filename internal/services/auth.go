package services

import (
	"context"
	"errors"
	"hrbot/internal/apperrors"
	"hrbot/internal/config"
	"hrbot/internal/logger"
	"hrbot/internal/models"
	"hrbot/internal/utils"
	"time"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("неверный логин или пароль")

type AuthUserRepo interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}

type AuthService struct {
	users AuthUserRepo
	cfg   *config.Config
}

func NewAuthService(users AuthUserRepo, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// TelegramAuth проверяет, допущен ли Telegram-аккаунт к боту.
// Неизвестный или деактивированный аккаунт — отказ, не ошибка.
func (s *AuthService) TelegramAuth(ctx context.Context, telegramID int64) (*models.TelegramAuthResponse, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Log.Info("Отказ в доступе: аккаунт не привязан (service)",
				zap.Int64("telegram_id", telegramID))
			return &models.TelegramAuthResponse{Allowed: false}, nil
		}
		return nil, err
	}
	return &models.TelegramAuthResponse{Allowed: true, Role: user.Role}, nil
}

// AdminLogin выдаёт JWT для админ-панели. Доступ только привилегированным ролям.
func (s *AuthService) AdminLogin(ctx context.Context, login, password string) (string, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if user.HashedPassword == "" || !utils.CheckPassword(user.HashedPassword, password) {
		logger.Log.Warn("Неудачная попытка входа (service)", zap.String("login", login))
		return "", ErrInvalidCredentials
	}
	if !models.IsPrivilegedRole(user.Role) {
		return "", ErrInvalidCredentials
	}

	ttl, err := time.ParseDuration(s.cfg.AccessTokenTTL)
	if err != nil {
		ttl = 12 * time.Hour
	}
	token, err := utils.GenerateToken(s.cfg.JWTSecret, user.ID, user.Role, ttl)
	if err != nil {
		return "", err
	}
	logger.Log.Info("Вход в админ-панель (service)",
		zap.Int("user_id", user.ID), zap.String("role", user.Role))
	return token, nil
}
