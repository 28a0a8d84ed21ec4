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

type HRRequestRepository struct {
	db *pgxpool.Pool
}

func NewHRRequestRepository(db *pgxpool.Pool) *HRRequestRepository {
	return &HRRequestRepository{db: db}
}

const hrColumns = `id, user_id, message, status, created_at, hr_reply, replied_at`

func scanHRRequest(row pgx.Row) (*models.HRRequest, error) {
	var req models.HRRequest
	err := row.Scan(&req.ID, &req.UserID, &req.Message, &req.Status, &req.CreatedAt, &req.HRReply, &req.RepliedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *HRRequestRepository) CreateHRRequest(ctx context.Context, userID int, message string) (*models.HRRequest, error) {
	logger.Log.Info("Создание HR-вопроса (repo)", zap.Int("user_id", userID))
	req, err := scanHRRequest(r.db.QueryRow(ctx,
		`INSERT INTO hr_request (user_id, message, status, created_at)
		 VALUES ($1, $2, $3, now())
		 RETURNING `+hrColumns,
		userID, message, models.HRStatusNew))
	if err != nil {
		logger.Log.Error("Ошибка создания HR-вопроса (repo)", zap.Error(err))
		return nil, err
	}
	return req, nil
}

func (r *HRRequestRepository) GetHRRequestByID(ctx context.Context, id int) (*models.HRRequest, error) {
	req, err := scanHRRequest(r.db.QueryRow(ctx,
		`SELECT `+hrColumns+` FROM hr_request WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения HR-вопроса (repo)", zap.Int("request_id", id), zap.Error(err))
		return nil, err
	}
	return req, nil
}

// GetUserHRRequests — вопросы пользователя по убыванию даты создания.
func (r *HRRequestRepository) GetUserHRRequests(ctx context.Context, userID, offset, limit int) ([]*models.HRRequest, error) {
	logger.Log.Debug("Получение HR-вопросов пользователя (repo)",
		zap.Int("user_id", userID), zap.Int("offset", offset), zap.Int("limit", limit))
	rows, err := r.db.Query(ctx,
		`SELECT `+hrColumns+`
		 FROM hr_request
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 OFFSET $2 LIMIT $3`,
		userID, offset, limit)
	if err != nil {
		logger.Log.Error("Ошибка получения HR-вопросов (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectHRRequests(rows)
}

// GetAllHRRequests — все вопросы для админки, опционально по статусу.
func (r *HRRequestRepository) GetAllHRRequests(ctx context.Context, status string, offset, limit int) ([]*models.HRRequest, error) {
	query := `SELECT ` + hrColumns + ` FROM hr_request`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`
		args = append(args, status, offset, limit)
	} else {
		query += ` ORDER BY created_at DESC OFFSET $1 LIMIT $2`
		args = append(args, offset, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка получения списка HR-вопросов (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectHRRequests(rows)
}

func collectHRRequests(rows pgx.Rows) ([]*models.HRRequest, error) {
	var list []*models.HRRequest
	for rows.Next() {
		req, err := scanHRRequest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// AnswerHRRequest отвечает на вопрос ровно один раз: условный UPDATE
// проставляет ответ, статус и время атомарно.
func (r *HRRequestRepository) AnswerHRRequest(ctx context.Context, id int, reply string) (*models.HRRequest, error) {
	logger.Log.Info("Ответ на HR-вопрос (repo)", zap.Int("request_id", id))
	req, err := scanHRRequest(r.db.QueryRow(ctx,
		`UPDATE hr_request
		 SET hr_reply = $2, status = $3, replied_at = now()
		 WHERE id = $1 AND hr_reply IS NULL
		 RETURNING `+hrColumns,
		id, reply, models.HRStatusAnswered))
	if errors.Is(err, pgx.ErrNoRows) {
		// Либо вопроса нет, либо ответ уже дан.
		if _, getErr := r.GetHRRequestByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, apperrors.Validation("можно ответить только один раз")
	}
	if err != nil {
		logger.Log.Error("Ошибка ответа на HR-вопрос (repo)", zap.Int("request_id", id), zap.Error(err))
		return nil, err
	}
	return req, nil
}
