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

type ImageRepository struct {
	db *pgxpool.Pool
}

func NewImageRepository(db *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{db: db}
}

func getNodeForImage(ctx context.Context, q DBTX, nodeID int) (*models.Node, error) {
	node, err := scanNode(q.QueryRow(ctx,
		`SELECT `+nodeColumns+` FROM node WHERE id = $1`, nodeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Validation("узел не найден")
	}
	if err != nil {
		return nil, err
	}
	if !node.IsActive {
		return nil, apperrors.Validation("узел не найден")
	}
	return node, nil
}

func validateImage(ctx context.Context, q DBTX, img *models.Image, isNew bool, excludeID int) error {
	node, err := getNodeForImage(ctx, q, img.NodeID)
	if err != nil {
		return err
	}
	tr := treeReader{q: q}
	if err := validators.CheckUniqueImageSlot(ctx, tr, img.NodeID, img.Order, excludeID); err != nil {
		return err
	}
	if err := validators.CheckUniqueImageFileName(ctx, tr, img.NodeID, img.FileName, excludeID); err != nil {
		return err
	}
	return validators.CheckImageAttachment(ctx, tr, node, isNew, excludeID)
}

func (r *ImageRepository) GetImageByID(ctx context.Context, id int) (*models.Image, error) {
	var img models.Image
	err := r.db.QueryRow(ctx,
		`SELECT id, node_id, image_url, file_name, "order" FROM image WHERE id = $1`, id).
		Scan(&img.ID, &img.NodeID, &img.ImageURL, &img.FileName, &img.Order)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения изображения (repo)", zap.Int("image_id", id), zap.Error(err))
		return nil, err
	}
	return &img, nil
}

func (r *ImageRepository) CreateImage(ctx context.Context, img *models.Image) error {
	logger.Log.Info("Создание изображения (repo)",
		zap.Int("node_id", img.NodeID), zap.String("file_name", img.FileName))
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := validateImage(ctx, tx, img, true, 0); err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO image (node_id, image_url, file_name, "order")
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		img.NodeID, img.ImageURL, img.FileName, img.Order,
	).Scan(&img.ID)
	if err != nil {
		logger.Log.Error("Ошибка вставки изображения (repo)", zap.Error(err))
		return err
	}
	return tx.Commit(ctx)
}

func (r *ImageRepository) UpdateImage(ctx context.Context, id int, input *models.UpdateImageRequest) error {
	logger.Log.Info("Обновление изображения (repo)", zap.Int("image_id", id))
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var current models.Image
	err = tx.QueryRow(ctx,
		`SELECT id, node_id, image_url, file_name, "order" FROM image WHERE id = $1 FOR UPDATE`, id).
		Scan(&current.ID, &current.NodeID, &current.ImageURL, &current.FileName, &current.Order)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}

	next := current
	if input.ImageURL != nil {
		next.ImageURL = *input.ImageURL
	}
	if input.FileName != nil {
		next.FileName = *input.FileName
	}
	if input.Order != nil {
		next.Order = *input.Order
	}

	if err := validateImage(ctx, tx, &next, false, id); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE image SET image_url = $1, file_name = $2, "order" = $3 WHERE id = $4`,
		next.ImageURL, next.FileName, next.Order, id)
	if err != nil {
		logger.Log.Error("Ошибка обновления изображения (repo)", zap.Int("image_id", id), zap.Error(err))
		return err
	}
	return tx.Commit(ctx)
}

func (r *ImageRepository) DeleteImage(ctx context.Context, id int) error {
	logger.Log.Info("Удаление изображения (repo)", zap.Int("image_id", id))
	tag, err := r.db.Exec(ctx, `DELETE FROM image WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления изображения (repo)", zap.Int("image_id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
