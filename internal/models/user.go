package models

// Роли пользователей. Значения хранятся в БД в исходном виде.
const (
	RoleAdmin   = "Администратор"
	RoleManager = "Менеджер"
	RoleUser    = "Пользователь"
)

// AdminRoles — роли с доступом к админ-панели.
var AdminRoles = map[string]struct{}{
	RoleAdmin:   {},
	RoleManager: {},
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

func IsPrivilegedRole(role string) bool {
	_, ok := AdminRoles[role]
	return ok
}

type User struct {
	ID             int    `json:"id"`
	Login          string `json:"login"`
	FullName       string `json:"full_name"`
	HashedPassword string `json:"-"`
	TelegramID     *int64 `json:"telegram_id"`
	IsActive       bool   `json:"is_active"`
	Role           string `json:"role"`
}

// TelegramAuthResponse — ответ на авторизацию по Telegram ID.
type TelegramAuthResponse struct {
	Allowed bool   `json:"allowed"`
	Role    string `json:"role,omitempty"`
}
