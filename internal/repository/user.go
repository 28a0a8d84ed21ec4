package repository

import (
	"context"
	"errors"
	"hrbot/internal/apperrors"
	"hrbot/internal/logger"
	"hrbot/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, login, full_name, hashed_password, telegram_id, is_active, role`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var fullName, hashed *string
	err := row.Scan(&u.ID, &u.Login, &fullName, &hashed, &u.TelegramID, &u.IsActive, &u.Role)
	if err != nil {
		return nil, err
	}
	if fullName != nil {
		u.FullName = *fullName
	}
	if hashed != nil {
		u.HashedPassword = *hashed
	}
	return &u, nil
}

// GetByTelegramID возвращает только активного пользователя.
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по Telegram ID (repo)", zap.Int64("telegram_id", telegramID))
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения пользователя по Telegram ID (repo)", zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

// GetByLogin возвращает только активного пользователя.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по логину (repo)", zap.String("login", login))
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE login = $1`, login))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения пользователя по логину (repo)", zap.String("login", login), zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения пользователя по ID (repo)", zap.Int("user_id", id), zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) IsLoginTaken(ctx context.Context, login string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE login = $1)`, login).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки логина (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) IsTelegramIDTaken(ctx context.Context, telegramID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE telegram_id = $1)`, telegramID).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки Telegram ID (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, models.RoleAdmin).Scan(&count)
	return count, err
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("login", user.Login), zap.String("role", user.Role))
	var hashed *string
	if user.HashedPassword != "" {
		hashed = &user.HashedPassword
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (login, full_name, hashed_password, telegram_id, is_active, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		user.Login, user.FullName, hashed, user.TelegramID, user.IsActive, user.Role,
	).Scan(&user.ID)
	if err != nil {
		logger.Log.Error("Ошибка создания пользователя (repo)", zap.Error(err))
	}
	return err
}
