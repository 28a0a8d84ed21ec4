package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"hrbot/internal/logger"
	"hrbot/internal/models"
	"hrbot/internal/utils"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const minPasswordLen = 4

type ImportUserRepo interface {
	IsLoginTaken(ctx context.Context, login string) (bool, error)
	IsTelegramIDTaken(ctx context.Context, telegramID int64) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// ImporterService загружает пользователей пакетно из CSV.
// Ожидаемые колонки: login, full_name, telegram_id, role, password.
type ImporterService struct {
	users ImportUserRepo
}

func NewImporterService(users ImportUserRepo) *ImporterService {
	return &ImporterService{users: users}
}

// ImportUsers читает CSV и создаёт пользователей. Некорректные строки
// молча пропускаются, возвращается число созданных.
// Правила пропуска: пустой или занятый логин, занятый или нечисловой
// telegram_id, неизвестная роль, привилегированная роль без пароля
// достаточной длины. Роль «Пользователь» пароль не хранит.
func (s *ImporterService) ImportUsers(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("не удалось прочитать заголовок: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["login"]; !ok {
		return 0, fmt.Errorf("в файле нет колонки login")
	}
	if _, ok := cols["role"]; !ok {
		return 0, fmt.Errorf("в файле нет колонки role")
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	count := 0
	seenLogins := map[string]struct{}{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("ошибка чтения строки: %w", err)
		}

		login := cell(row, "login")
		if login == "" {
			continue
		}
		if _, dup := seenLogins[login]; dup {
			continue
		}
		taken, err := s.users.IsLoginTaken(ctx, login)
		if err != nil {
			return count, err
		}
		if taken {
			continue
		}

		var telegramID *int64
		if raw := cell(row, "telegram_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				continue
			}
			idTaken, err := s.users.IsTelegramIDTaken(ctx, id)
			if err != nil {
				return count, err
			}
			if idTaken {
				continue
			}
			telegramID = &id
		}

		role := cell(row, "role")
		if !models.ValidRole(role) {
			continue
		}

		hashed := ""
		if models.IsPrivilegedRole(role) {
			password := cell(row, "password")
			if len([]rune(password)) < minPasswordLen {
				continue
			}
			hashed, err = utils.HashPassword(password)
			if err != nil {
				return count, err
			}
		}

		user := &models.User{
			Login:          login,
			FullName:       cell(row, "full_name"),
			HashedPassword: hashed,
			TelegramID:     telegramID,
			IsActive:       true,
			Role:           role,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return count, err
		}
		seenLogins[login] = struct{}{}
		count++
	}

	logger.Log.Info("Импорт пользователей завершён (service)", zap.Int("created", count))
	return count, nil
}
