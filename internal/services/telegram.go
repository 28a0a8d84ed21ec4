package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hrbot/internal/logger"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier отправляет пользователям уведомления в Telegram.
// Отправка строго best-effort: любая ошибка логируется и гасится,
// бизнес-операция от неё не зависит.
type TelegramNotifier struct {
	token   string
	baseURL string
	client  *http.Client
}

func NewTelegramNotifier(token string) *TelegramNotifier {
	return &TelegramNotifier{
		token:   token,
		baseURL: telegramAPIBase,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// SendMessage отправляет текст в чат. Пустой токен выключает отправку.
func (t *TelegramNotifier) SendMessage(ctx context.Context, chatID int64, text string) {
	if t.token == "" {
		logger.Log.Debug("Токен бота не задан, уведомление пропущено (service)",
			zap.Int64("chat_id", chatID))
		return
	}

	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		logger.Log.Warn("Не удалось сериализовать уведомление (service)", zap.Error(err))
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logger.Log.Warn("Не удалось создать запрос к Telegram (service)", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		logger.Log.Warn("Ошибка отправки уведомления в Telegram (service)",
			zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Warn("Telegram вернул ошибку (service)",
			zap.Int64("chat_id", chatID), zap.Int("status", resp.StatusCode))
		return
	}

	logger.Log.Info("Уведомление отправлено (service)", zap.Int64("chat_id", chatID))
}
