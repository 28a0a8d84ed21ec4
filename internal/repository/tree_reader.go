package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// treeReader реализует validators.TreeReader поверх пула или транзакции.
type treeReader struct {
	q DBTX
}

func (t treeReader) ParentID(ctx context.Context, nodeID int) (*int, bool, error) {
	var parentID *int
	err := t.q.QueryRow(ctx, `SELECT parent_id FROM node WHERE id = $1`, nodeID).Scan(&parentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return parentID, true, nil
}

func (t treeReader) RootNodeID(ctx context.Context) (*int, error) {
	var id int
	err := t.q.QueryRow(ctx, `SELECT id FROM node WHERE parent_id IS NULL LIMIT 1`).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (t treeReader) HasChildren(ctx context.Context, nodeID int) (bool, error) {
	var exists bool
	err := t.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM node WHERE parent_id = $1)`, nodeID).Scan(&exists)
	return exists, err
}

func (t treeReader) TitleTaken(ctx context.Context, title string, excludeID int) (bool, error) {
	var exists bool
	err := t.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM node WHERE title = $1 AND id <> $2)`,
		title, excludeID).Scan(&exists)
	return exists, err
}

func (t treeReader) ButtonSlotTaken(ctx context.Context, sourceNodeID, order, excludeID int) (bool, error) {
	var exists bool
	err := t.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM button WHERE source_node_id = $1 AND "order" = $2 AND id <> $3)`,
		sourceNodeID, order, excludeID).Scan(&exists)
	return exists, err
}

func (t treeReader) ButtonEdgeTaken(ctx context.Context, sourceNodeID, targetNodeID, excludeID int) (bool, error) {
	var exists bool
	err := t.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM button WHERE source_node_id = $1 AND target_node_id = $2 AND id <> $3)`,
		sourceNodeID, targetNodeID, excludeID).Scan(&exists)
	return exists, err
}

func (t treeReader) ButtonLabelTaken(ctx context.Context, sourceNodeID int, label string, excludeID int) (bool, error) {
	var exists bool
	err := t.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM button WHERE source_node_id = $1 AND label = $2 AND id <> $3)`,
		sourceNodeID, label, excludeID).Scan(&exists)
	return exists, err
}

func (t treeReader) ImageSlotTaken(ctx context.Context, nodeID, order, excludeID int) (bool, error) {
	var exists bool
	err := t.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM image WHERE node_id = $1 AND "order" = $2 AND id <> $3)`,
		nodeID, order, excludeID).Scan(&exists)
	return exists, err
}

func (t treeReader) ImageFileNameTaken(ctx context.Context, nodeID int, fileName string, excludeID int) (bool, error) {
	var exists bool
	err := t.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM image WHERE node_id = $1 AND file_name = $2 AND id <> $3)`,
		nodeID, fileName, excludeID).Scan(&exists)
	return exists, err
}

func (t treeReader) CountImages(ctx context.Context, nodeID, excludeID int) (int, error) {
	var count int
	err := t.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM image WHERE node_id = $1 AND id <> $2`,
		nodeID, excludeID).Scan(&count)
	return count, err
}
