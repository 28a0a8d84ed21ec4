package services

import (
	"context"
	"fmt"
	"hrbot/internal/logger"
	"hrbot/internal/models"

	"go.uber.org/zap"
)

type HRRequestRepo interface {
	CreateHRRequest(ctx context.Context, userID int, message string) (*models.HRRequest, error)
	GetHRRequestByID(ctx context.Context, id int) (*models.HRRequest, error)
	GetUserHRRequests(ctx context.Context, userID, offset, limit int) ([]*models.HRRequest, error)
	GetAllHRRequests(ctx context.Context, status string, offset, limit int) ([]*models.HRRequest, error)
	AnswerHRRequest(ctx context.Context, id int, reply string) (*models.HRRequest, error)
}

type UserRepo interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string)
}

type HRService struct {
	requests HRRequestRepo
	users    UserRepo
	notifier Notifier
}

func NewHRService(requests HRRequestRepo, users UserRepo, notifier Notifier) *HRService {
	return &HRService{requests: requests, users: users, notifier: notifier}
}

// Create регистрирует обращение пользователя к HR и подтверждает приём
// уведомлением. Сбой уведомления операцию не отменяет.
func (s *HRService) Create(ctx context.Context, telegramID int64, message string) (*models.HRRequest, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	req, err := s.requests.CreateHRRequest(ctx, user.ID, message)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Обращение к HR зарегистрировано (service)",
		zap.Int("request_id", req.ID), zap.Int("user_id", user.ID))

	s.notifier.SendMessage(ctx, telegramID,
		fmt.Sprintf("Ваш вопрос #%d зарегистрирован!\nОжидайте ответа от HR.", req.ID))
	return req, nil
}

// ListForUser — обращения пользователя по telegram_id, свежие первыми.
func (s *HRService) ListForUser(ctx context.Context, telegramID int64, offset, limit int) ([]*models.HRRequest, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return s.requests.GetUserHRRequests(ctx, user.ID, offset, limit)
}

// ListAll — все обращения для HR, опционально по статусу.
func (s *HRService) ListAll(ctx context.Context, status string, offset, limit int) ([]*models.HRRequest, error) {
	return s.requests.GetAllHRRequests(ctx, status, offset, limit)
}

func (s *HRService) Get(ctx context.Context, id int) (*models.HRRequest, error) {
	return s.requests.GetHRRequestByID(ctx, id)
}

// Answer записывает ответ HR. Повторный ответ отклоняет репозиторий.
// После записи автор обращения получает уведомление, если привязан к Telegram.
func (s *HRService) Answer(ctx context.Context, id int, reply string) (*models.HRRequest, error) {
	req, err := s.requests.AnswerHRRequest(ctx, id, reply)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Ответ HR записан (service)", zap.Int("request_id", req.ID))

	user, err := s.users.GetUserByID(ctx, req.UserID)
	if err != nil {
		logger.Log.Warn("Автор обращения не найден, уведомление пропущено (service)",
			zap.Int("request_id", req.ID), zap.Error(err))
		return req, nil
	}
	if user.TelegramID != nil {
		s.notifier.SendMessage(ctx, *user.TelegramID,
			fmt.Sprintf("Ответ от HR по вопросу #%d:\n%s", req.ID, reply))
	}
	return req, nil
}
