package models

import "time"

// Статусы HR-вопроса.
const (
	HRStatusNew      = "Новое"
	HRStatusAnswered = "Отвечено"
)

// HRRequest — вопрос пользователя к HR. Отвечать можно только один раз:
// ответ, статус и время ответа проставляются атомарно.
type HRRequest struct {
	ID        int        `json:"id"`
	UserID    int        `json:"-"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	HRReply   *string    `json:"hr_reply,omitempty"`
	RepliedAt *time.Time `json:"replied_at,omitempty"`
}
