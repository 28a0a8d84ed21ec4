package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hrbot/internal/logger"
	"hrbot/internal/models"

	"go.uber.org/zap"
)

const nodeViewPrefix = "nodeview:"

// NodeViewCache — кэш собранных представлений узлов в Redis.
// Пустой адрес выключает кэш: все операции становятся no-op.
type NodeViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNodeViewCache(addr string) (*NodeViewCache, error) {
	if addr == "" {
		return &NodeViewCache{}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &NodeViewCache{client: client, ttl: 10 * time.Minute}, nil
}

func NewNodeViewCacheWithClient(client *redis.Client) *NodeViewCache {
	return &NodeViewCache{client: client, ttl: 10 * time.Minute}
}

func (c *NodeViewCache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *NodeViewCache) key(nodeID int) string {
	return fmt.Sprintf("%s%d", nodeViewPrefix, nodeID)
}

func (c *NodeViewCache) Get(ctx context.Context, nodeID int) (*models.NodeView, bool) {
	if !c.Enabled() {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.key(nodeID)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Log.Warn("Кэш узлов недоступен на чтение", zap.Error(err))
		return nil, false
	}

	var view models.NodeView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, false
	}
	return &view, true
}

func (c *NodeViewCache) Set(ctx context.Context, view *models.NodeView) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(view.ID), raw, c.ttl).Err(); err != nil {
		logger.Log.Warn("Кэш узлов недоступен на запись", zap.Error(err))
	}
}

// InvalidateAll сбрасывает все представления. Любая мутация дерева может
// затронуть чужие представления (список детей родителя, кнопки соседей),
// поэтому сброс полный.
func (c *NodeViewCache) InvalidateAll(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	iter := c.client.Scan(ctx, 0, nodeViewPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Log.Warn("Кэш узлов недоступен на сброс", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			logger.Log.Warn("Кэш узлов недоступен на сброс", zap.Error(err))
		}
	}
}

func (c *NodeViewCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
