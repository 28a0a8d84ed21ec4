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

type NodeRepository struct {
	db *pgxpool.Pool
}

func NewNodeRepository(db *pgxpool.Pool) *NodeRepository {
	return &NodeRepository{db: db}
}

const nodeColumns = `id, title, text, layout_type, parent_id, is_active`

func scanNode(row pgx.Row) (*models.Node, error) {
	var n models.Node
	var text *string
	err := row.Scan(&n.ID, &n.Title, &text, &n.LayoutType, &n.ParentID, &n.IsActive)
	if err != nil {
		return nil, err
	}
	if text != nil {
		n.Text = *text
	}
	return &n, nil
}

func (r *NodeRepository) GetNodeByID(ctx context.Context, id int) (*models.Node, error) {
	logger.Log.Debug("Получение узла по ID (repo)", zap.Int("node_id", id))
	node, err := scanNode(r.db.QueryRow(ctx,
		`SELECT `+nodeColumns+` FROM node WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения узла (repo)", zap.Int("node_id", id), zap.Error(err))
		return nil, err
	}
	return node, nil
}

func (r *NodeRepository) GetRootNode(ctx context.Context) (*models.Node, error) {
	logger.Log.Debug("Получение корневого узла (repo)")
	node, err := scanNode(r.db.QueryRow(ctx,
		`SELECT `+nodeColumns+` FROM node WHERE parent_id IS NULL`))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения корневого узла (repo)", zap.Error(err))
		return nil, err
	}
	return node, nil
}

// CountRootNodes — стартовая проверка: больше одного корня — фатально.
func (r *NodeRepository) CountRootNodes(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM node WHERE parent_id IS NULL`).Scan(&count)
	return count, err
}

func (r *NodeRepository) GetActiveChildren(ctx context.Context, nodeID int) ([]*models.Node, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+nodeColumns+` FROM node WHERE parent_id = $1 AND is_active = true`, nodeID)
	if err != nil {
		logger.Log.Error("Ошибка получения дочерних узлов (repo)", zap.Int("node_id", nodeID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var children []*models.Node
	for rows.Next() {
		child, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, rows.Err()
}

func (r *NodeRepository) GetActiveButtons(ctx context.Context, sourceNodeID int) ([]*models.Button, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, source_node_id, target_node_id, label, "order", is_active
		 FROM button
		 WHERE source_node_id = $1 AND is_active = true
		 ORDER BY "order" ASC`, sourceNodeID)
	if err != nil {
		logger.Log.Error("Ошибка получения кнопок узла (repo)", zap.Int("node_id", sourceNodeID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var buttons []*models.Button
	for rows.Next() {
		var b models.Button
		if err := rows.Scan(&b.ID, &b.SourceNodeID, &b.TargetNodeID, &b.Label, &b.Order, &b.IsActive); err != nil {
			return nil, err
		}
		buttons = append(buttons, &b)
	}
	return buttons, rows.Err()
}

func (r *NodeRepository) GetImages(ctx context.Context, nodeID int) ([]*models.Image, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, node_id, image_url, file_name, "order"
		 FROM image
		 WHERE node_id = $1
		 ORDER BY "order" ASC`, nodeID)
	if err != nil {
		logger.Log.Error("Ошибка получения изображений узла (repo)", zap.Int("node_id", nodeID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var images []*models.Image
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.NodeID, &img.ImageURL, &img.FileName, &img.Order); err != nil {
			return nil, err
		}
		images = append(images, &img)
	}
	return images, rows.Err()
}

// CreateNode валидирует и вставляет узел в одной транзакции.
func (r *NodeRepository) CreateNode(ctx context.Context, n *models.Node) error {
	logger.Log.Info("Создание узла (repo)", zap.String("title", n.Title))
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tr := treeReader{q: tx}
	if err := validators.CheckTitleUnique(ctx, tr, n.Title, 0); err != nil {
		return err
	}
	if err := validators.CheckSingleRoot(ctx, tr, n.ParentID, 0); err != nil {
		return err
	}
	if n.ParentID != nil {
		if _, found, err := tr.ParentID(ctx, *n.ParentID); err != nil {
			return err
		} else if !found {
			return apperrors.Validation("родительский узел не найден")
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO node (title, text, layout_type, parent_id, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		n.Title, n.Text, n.LayoutType, n.ParentID, n.IsActive,
	).Scan(&n.ID)
	if err != nil {
		logger.Log.Error("Ошибка вставки узла (repo)", zap.Error(err))
		return err
	}
	return tx.Commit(ctx)
}

// UpdateNode валидирует и обновляет узел в одной транзакции. При смене
// флага is_active все кнопки, ведущие в узел, пересчитываются тут же.
func (r *NodeRepository) UpdateNode(ctx context.Context, id int, input *models.UpdateNodeRequest) error {
	logger.Log.Info("Обновление узла (repo)", zap.Int("node_id", id))
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	current, err := scanNode(tx.QueryRow(ctx,
		`SELECT `+nodeColumns+` FROM node WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}

	title := current.Title
	if input.Title != nil {
		title = *input.Title
	}
	text := current.Text
	if input.Text != nil {
		text = *input.Text
	}
	layout := current.LayoutType
	if input.LayoutType != nil {
		layout = *input.LayoutType
	}
	parentID := current.ParentID
	if input.SetParent {
		parentID = input.ParentID
	}
	isActive := current.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	tr := treeReader{q: tx}
	if err := validators.CheckTitleUnique(ctx, tr, title, id); err != nil {
		return err
	}
	if err := validators.CheckNoCycle(ctx, tr, id, parentID); err != nil {
		return err
	}
	if err := validators.CheckSingleRoot(ctx, tr, parentID, id); err != nil {
		return err
	}
	if parentID != nil {
		if _, found, err := tr.ParentID(ctx, *parentID); err != nil {
			return err
		} else if !found {
			return apperrors.Validation("родительский узел не найден")
		}
	}
	if !isActive {
		if err := validators.CheckCanDeactivate(ctx, tr, id); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE node SET title = $1, text = $2, layout_type = $3, parent_id = $4, is_active = $5
		 WHERE id = $6`,
		title, text, layout, parentID, isActive, id)
	if err != nil {
		logger.Log.Error("Ошибка обновления узла (repo)", zap.Int("node_id", id), zap.Error(err))
		return err
	}

	if isActive != current.IsActive {
		if err := rederiveButtons(ctx, tx, id, isActive); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// DeleteNode удаляет узел. Исходящие кнопки и изображения каскадируются
// схемой; входящие кнопки переживают удаление цели и гаснут.
func (r *NodeRepository) DeleteNode(ctx context.Context, id int) error {
	logger.Log.Info("Удаление узла (repo)", zap.Int("node_id", id))
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	current, err := scanNode(tx.QueryRow(ctx,
		`SELECT `+nodeColumns+` FROM node WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}

	tr := treeReader{q: tx}
	if err := validators.CheckCanDelete(ctx, tr, id, current.ParentID); err != nil {
		return err
	}

	if err := rederiveButtons(ctx, tx, id, false); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM node WHERE id = $1`, id); err != nil {
		logger.Log.Error("Ошибка удаления узла (repo)", zap.Int("node_id", id), zap.Error(err))
		return err
	}
	return tx.Commit(ctx)
}

// rederiveButtons синхронизирует is_active кнопок с целевым узлом —
// внутри той же транзакции, что и изменение самого узла.
func rederiveButtons(ctx context.Context, q DBTX, targetNodeID int, active bool) error {
	_, err := q.Exec(ctx,
		`UPDATE button SET is_active = $1 WHERE target_node_id = $2`, active, targetNodeID)
	if err != nil {
		logger.Log.Error("Ошибка пересчёта кнопок (repo)",
			zap.Int("target_node_id", targetNodeID), zap.Error(err))
	}
	return err
}
