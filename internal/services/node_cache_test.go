package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrbot/internal/models"
)

func newTestCache(t *testing.T) *NodeViewCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewNodeViewCacheWithClient(client)
}

func TestNodeViewCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	view := &models.NodeView{
		ID:         1,
		Title:      "Меню",
		LayoutType: models.LayoutText,
		Children:   []models.ChildNodeView{},
		Buttons:    []models.ButtonView{{ID: 10, Label: "Отпуск", TargetNodeID: 2, Order: 1}},
		Images:     []models.ImageView{},
	}
	cache.Set(ctx, view)

	got, ok := cache.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, view.Title, got.Title)
	require.Len(t, got.Buttons, 1)
	assert.Equal(t, "Отпуск", got.Buttons[0].Label)
}

func TestNodeViewCacheMiss(t *testing.T) {
	cache := newTestCache(t)

	_, ok := cache.Get(context.Background(), 99)
	assert.False(t, ok)
}

func TestNodeViewCacheInvalidateAll(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, &models.NodeView{ID: 1, Title: "Меню"})
	cache.Set(ctx, &models.NodeView{ID: 2, Title: "Отпуск"})

	cache.InvalidateAll(ctx)

	_, ok := cache.Get(ctx, 1)
	assert.False(t, ok)
	_, ok = cache.Get(ctx, 2)
	assert.False(t, ok)
}

func TestNodeViewCacheDisabled(t *testing.T) {
	cache, err := NewNodeViewCache("")
	require.NoError(t, err)
	assert.False(t, cache.Enabled())

	ctx := context.Background()
	cache.Set(ctx, &models.NodeView{ID: 1})
	_, ok := cache.Get(ctx, 1)
	assert.False(t, ok)
	cache.InvalidateAll(ctx)
	require.NoError(t, cache.Close())
}
