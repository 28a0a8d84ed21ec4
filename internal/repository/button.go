package repository

import (
	"context"
	"errors"
	"hrbot/internal/apperrors"
	"hrbot/internal/logger"
	"hrbot/internal/models"
	"hrbot/internal/validators"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ButtonRepository struct {
	db *pgxpool.Pool
}

func NewButtonRepository(db *pgxpool.Pool) *ButtonRepository {
	return &ButtonRepository{db: db}
}

const buttonColumns = `id, source_node_id, target_node_id, label, "order", is_active`

func scanButton(row pgx.Row) (*models.Button, error) {
	var b models.Button
	err := row.Scan(&b.ID, &b.SourceNodeID, &b.TargetNodeID, &b.Label, &b.Order, &b.IsActive)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ButtonRepository) GetButtonByID(ctx context.Context, id int) (*models.Button, error) {
	button, err := scanButton(r.db.QueryRow(ctx,
		`SELECT `+buttonColumns+` FROM button WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения кнопки (repo)", zap.Int("button_id", id), zap.Error(err))
		return nil, err
	}
	return button, nil
}

func validateButton(ctx context.Context, tr treeReader, b *models.Button, excludeID int) error {
	if err := validators.CheckUniqueButtonEdge(ctx, tr, b.SourceNodeID, b.TargetNodeID, excludeID); err != nil {
		return err
	}
	if err := validators.CheckUniqueButtonSlot(ctx, tr, b.SourceNodeID, b.Order, excludeID); err != nil {
		return err
	}
	return validators.CheckUniqueButtonLabel(ctx, tr, b.SourceNodeID, b.Label, excludeID)
}

// CreateButton валидирует и вставляет кнопку. Флаг is_active сразу
// наследуется от текущего состояния целевого узла.
func (r *ButtonRepository) CreateButton(ctx context.Context, b *models.Button) error {
	logger.Log.Info("Создание кнопки (repo)",
		zap.Int("source_node_id", b.SourceNodeID), zap.Int("target_node_id", b.TargetNodeID))
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tr := treeReader{q: tx}
	if err := validateButton(ctx, tr, b, 0); err != nil {
		return err
	}

	var targetActive bool
	err = tx.QueryRow(ctx, `SELECT is_active FROM node WHERE id = $1`, b.TargetNodeID).Scan(&targetActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Validation("целевой узел не найден")
	}
	if err != nil {
		return err
	}
	if _, found, err := tr.ParentID(ctx, b.SourceNodeID); err != nil {
		return err
	} else if !found {
		return apperrors.Validation("исходный узел не найден")
	}

	b.IsActive = targetActive
	err = tx.QueryRow(ctx,
		`INSERT INTO button (source_node_id, target_node_id, label, "order", is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		b.SourceNodeID, b.TargetNodeID, b.Label, b.Order, b.IsActive,
	).Scan(&b.ID)
	if err != nil {
		logger.Log.Error("Ошибка вставки кнопки (repo)", zap.Error(err))
		return err
	}
	return tx.Commit(ctx)
}

func (r *ButtonRepository) UpdateButton(ctx context.Context, id int, input *models.UpdateButtonRequest) error {
	logger.Log.Info("Обновление кнопки (repo)", zap.Int("button_id", id))
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	current, err := scanButton(tx.QueryRow(ctx,
		`SELECT `+buttonColumns+` FROM button WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}

	next := *current
	if input.SourceNodeID != nil {
		next.SourceNodeID = *input.SourceNodeID
	}
	if input.TargetNodeID != nil {
		next.TargetNodeID = *input.TargetNodeID
	}
	if input.Label != nil {
		next.Label = *input.Label
	}
	if input.Order != nil {
		next.Order = *input.Order
	}

	tr := treeReader{q: tx}
	if err := validateButton(ctx, tr, &next, id); err != nil {
		return err
	}

	// Смена цели — флаг пересчитывается от нового целевого узла.
	var targetActive bool
	err = tx.QueryRow(ctx, `SELECT is_active FROM node WHERE id = $1`, next.TargetNodeID).Scan(&targetActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Validation("целевой узел не найден")
	}
	if err != nil {
		return err
	}
	next.IsActive = targetActive

	_, err = tx.Exec(ctx,
		`UPDATE button SET source_node_id = $1, target_node_id = $2, label = $3, "order" = $4, is_active = $5
		 WHERE id = $6`,
		next.SourceNodeID, next.TargetNodeID, next.Label, next.Order, next.IsActive, id)
	if err != nil {
		logger.Log.Error("Ошибка обновления кнопки (repo)", zap.Int("button_id", id), zap.Error(err))
		return err
	}
	return tx.Commit(ctx)
}

func (r *ButtonRepository) DeleteButton(ctx context.Context, id int) error {
	logger.Log.Info("Удаление кнопки (repo)", zap.Int("button_id", id))
	tag, err := r.db.Exec(ctx, `DELETE FROM button WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления кнопки (repo)", zap.Int("button_id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
