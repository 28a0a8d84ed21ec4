package services

import (
	"context"
	"errors"
	"hrbot/internal/apperrors"
	"hrbot/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNodeRepo struct {
	nodes    map[int]*models.Node
	buttons  map[int][]*models.Button
	images   map[int][]*models.Image
	children map[int][]*models.Node
	mutated  []string
}

func (f *fakeNodeRepo) GetNodeByID(_ context.Context, id int) (*models.Node, error) {
	n, ok := f.nodes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return n, nil
}

func (f *fakeNodeRepo) GetRootNode(_ context.Context) (*models.Node, error) {
	for _, n := range f.nodes {
		if n.ParentID == nil && n.IsActive {
			return n, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeNodeRepo) CountRootNodes(_ context.Context) (int, error) {
	count := 0
	for _, n := range f.nodes {
		if n.ParentID == nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeNodeRepo) GetActiveChildren(_ context.Context, nodeID int) ([]*models.Node, error) {
	return f.children[nodeID], nil
}

func (f *fakeNodeRepo) GetActiveButtons(_ context.Context, sourceNodeID int) ([]*models.Button, error) {
	return f.buttons[sourceNodeID], nil
}

func (f *fakeNodeRepo) GetImages(_ context.Context, nodeID int) ([]*models.Image, error) {
	return f.images[nodeID], nil
}

func (f *fakeNodeRepo) CreateNode(_ context.Context, n *models.Node) error {
	f.mutated = append(f.mutated, "create")
	return nil
}

func (f *fakeNodeRepo) UpdateNode(_ context.Context, id int, _ *models.UpdateNodeRequest) error {
	f.mutated = append(f.mutated, "update")
	return nil
}

func (f *fakeNodeRepo) DeleteNode(_ context.Context, id int) error {
	f.mutated = append(f.mutated, "delete")
	return nil
}

type fakeButtonRepo struct{ err error }

func (f *fakeButtonRepo) GetButtonByID(_ context.Context, id int) (*models.Button, error) {
	return nil, apperrors.ErrNotFound
}
func (f *fakeButtonRepo) CreateButton(_ context.Context, _ *models.Button) error { return f.err }
func (f *fakeButtonRepo) UpdateButton(_ context.Context, _ int, _ *models.UpdateButtonRequest) error {
	return f.err
}
func (f *fakeButtonRepo) DeleteButton(_ context.Context, _ int) error { return f.err }

type fakeImageRepo struct{ err error }

func (f *fakeImageRepo) GetImageByID(_ context.Context, id int) (*models.Image, error) {
	return nil, apperrors.ErrNotFound
}
func (f *fakeImageRepo) CreateImage(_ context.Context, _ *models.Image) error { return f.err }
func (f *fakeImageRepo) UpdateImage(_ context.Context, _ int, _ *models.UpdateImageRequest) error {
	return f.err
}
func (f *fakeImageRepo) DeleteImage(_ context.Context, _ int) error { return f.err }

func newTestNodeService(repo *fakeNodeRepo) *NodeService {
	cache, _ := NewNodeViewCache("")
	return NewNodeService(repo, &fakeButtonRepo{}, &fakeImageRepo{}, cache, "https://hr.example.com")
}

func intPtr(v int) *int { return &v }

func TestAssembleNode(t *testing.T) {
	repo := &fakeNodeRepo{
		nodes: map[int]*models.Node{
			1: {ID: 1, Title: "Меню", LayoutType: models.LayoutText, IsActive: true},
			2: {ID: 2, Title: "Отпуск", LayoutType: models.LayoutGallery, ParentID: intPtr(1), IsActive: true},
		},
		buttons: map[int][]*models.Button{
			1: {
				{ID: 10, SourceNodeID: 1, TargetNodeID: 2, Label: "Отпуск", Order: 1, IsActive: true},
				{ID: 11, SourceNodeID: 1, TargetNodeID: 2, Label: "Ещё", Order: 2, IsActive: true},
			},
		},
		images: map[int][]*models.Image{
			1: {
				{ID: 20, NodeID: 1, ImageURL: "https://cdn.example.com/pic.png", FileName: "pic.png", Order: 1},
				{ID: 21, NodeID: 1, ImageURL: "local.png", FileName: "local.png", Order: 2},
			},
		},
		children: map[int][]*models.Node{
			1: {{ID: 2, Title: "Отпуск", LayoutType: models.LayoutGallery, ParentID: intPtr(1)}},
		},
	}
	svc := newTestNodeService(repo)

	view, err := svc.AssembleNode(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Меню", view.Title)
	require.Len(t, view.Buttons, 2)
	assert.Equal(t, "Отпуск", view.Buttons[0].Label)

	// Абсолютный URL проходит как есть, относительный достраивается.
	require.Len(t, view.Images, 2)
	assert.Equal(t, "https://cdn.example.com/pic.png", view.Images[0].ImageURL)
	assert.Equal(t, "https://hr.example.com/media/local.png", view.Images[1].ImageURL)

	require.Len(t, view.Children, 1)
	assert.Equal(t, 2, view.Children[0].ID)
}

func TestAssembleNodeInactive(t *testing.T) {
	repo := &fakeNodeRepo{
		nodes: map[int]*models.Node{
			1: {ID: 1, Title: "Скрытый", LayoutType: models.LayoutText, IsActive: false},
		},
	}
	svc := newTestNodeService(repo)

	_, err := svc.AssembleNode(context.Background(), 1)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestAssembleNodeMissing(t *testing.T) {
	svc := newTestNodeService(&fakeNodeRepo{nodes: map[int]*models.Node{}})

	_, err := svc.AssembleNode(context.Background(), 42)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestGetRootView(t *testing.T) {
	repo := &fakeNodeRepo{
		nodes: map[int]*models.Node{
			1: {ID: 1, Title: "Меню", LayoutType: models.LayoutText, IsActive: true},
		},
	}
	svc := newTestNodeService(repo)

	view, err := svc.GetRootView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, view.ID)
	assert.Nil(t, view.ParentID)
}

func TestAssembleNodeEmptyCollections(t *testing.T) {
	repo := &fakeNodeRepo{
		nodes: map[int]*models.Node{
			1: {ID: 1, Title: "Пустой", LayoutType: models.LayoutText, IsActive: true},
		},
	}
	svc := newTestNodeService(repo)

	view, err := svc.AssembleNode(context.Background(), 1)
	require.NoError(t, err)

	// Пустые коллекции сериализуются как [], не null.
	assert.NotNil(t, view.Buttons)
	assert.NotNil(t, view.Images)
	assert.NotNil(t, view.Children)
}

func TestNodeMutationsDelegate(t *testing.T) {
	repo := &fakeNodeRepo{nodes: map[int]*models.Node{}}
	svc := newTestNodeService(repo)

	require.NoError(t, svc.CreateNode(context.Background(), &models.Node{Title: "Новый"}))
	require.NoError(t, svc.UpdateNode(context.Background(), 1, &models.UpdateNodeRequest{}))
	require.NoError(t, svc.DeleteNode(context.Background(), 1))

	assert.Equal(t, []string{"create", "update", "delete"}, repo.mutated)
}
