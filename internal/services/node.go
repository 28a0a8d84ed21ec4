package services

import (
	"context"
	"fmt"
	"hrbot/internal/apperrors"
	"hrbot/internal/logger"
	"hrbot/internal/models"
	"path"
	"strings"

	"go.uber.org/zap"
)

type NodeRepo interface {
	GetNodeByID(ctx context.Context, id int) (*models.Node, error)
	GetRootNode(ctx context.Context) (*models.Node, error)
	CountRootNodes(ctx context.Context) (int, error)
	GetActiveChildren(ctx context.Context, nodeID int) ([]*models.Node, error)
	GetActiveButtons(ctx context.Context, sourceNodeID int) ([]*models.Button, error)
	GetImages(ctx context.Context, nodeID int) ([]*models.Image, error)
	CreateNode(ctx context.Context, n *models.Node) error
	UpdateNode(ctx context.Context, id int, input *models.UpdateNodeRequest) error
	DeleteNode(ctx context.Context, id int) error
}

type ButtonRepo interface {
	GetButtonByID(ctx context.Context, id int) (*models.Button, error)
	CreateButton(ctx context.Context, b *models.Button) error
	UpdateButton(ctx context.Context, id int, input *models.UpdateButtonRequest) error
	DeleteButton(ctx context.Context, id int) error
}

type ImageRepo interface {
	GetImageByID(ctx context.Context, id int) (*models.Image, error)
	CreateImage(ctx context.Context, img *models.Image) error
	UpdateImage(ctx context.Context, id int, input *models.UpdateImageRequest) error
	DeleteImage(ctx context.Context, id int) error
}

type NodeService struct {
	nodes        NodeRepo
	buttons      ButtonRepo
	images       ImageRepo
	cache        *NodeViewCache
	mediaBaseURL string
}

func NewNodeService(nodes NodeRepo, buttons ButtonRepo, images ImageRepo, cache *NodeViewCache, mediaBaseURL string) *NodeService {
	return &NodeService{
		nodes:        nodes,
		buttons:      buttons,
		images:       images,
		cache:        cache,
		mediaBaseURL: strings.TrimRight(mediaBaseURL, "/"),
	}
}

// makeFullURL достраивает относительный адрес изображения до абсолютного.
// Уже абсолютный URL проходит без изменений.
func (s *NodeService) makeFullURL(imageURL, fileName string) string {
	if imageURL == "" && fileName == "" {
		return ""
	}
	if strings.HasPrefix(imageURL, "http") {
		return imageURL
	}
	name := fileName
	if name == "" {
		name = imageURL
	}
	return fmt.Sprintf("%s/media/%s", s.mediaBaseURL, path.Base(name))
}

// AssembleNode собирает внешнее представление узла: атрибуты, активные
// кнопки по порядку, изображения по порядку, активные дочерние узлы.
// Неактивный узел для клиента не существует.
func (s *NodeService) AssembleNode(ctx context.Context, nodeID int) (*models.NodeView, error) {
	if view, ok := s.cache.Get(ctx, nodeID); ok {
		return view, nil
	}

	node, err := s.nodes.GetNodeByID(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	view, err := s.assemble(ctx, node)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, view)
	return view, nil
}

// GetRootView — корневой узел в собранном виде. Отсутствие корня —
// ошибка конфигурации, отдаётся как NotFound.
func (s *NodeService) GetRootView(ctx context.Context) (*models.NodeView, error) {
	root, err := s.nodes.GetRootNode(ctx)
	if err != nil {
		return nil, err
	}
	return s.AssembleNode(ctx, root.ID)
}

func (s *NodeService) assemble(ctx context.Context, node *models.Node) (*models.NodeView, error) {
	if !node.IsActive {
		return nil, apperrors.ErrNotFound
	}

	buttons, err := s.nodes.GetActiveButtons(ctx, node.ID)
	if err != nil {
		return nil, err
	}
	images, err := s.nodes.GetImages(ctx, node.ID)
	if err != nil {
		return nil, err
	}
	children, err := s.nodes.GetActiveChildren(ctx, node.ID)
	if err != nil {
		return nil, err
	}

	view := &models.NodeView{
		ID:         node.ID,
		Title:      node.Title,
		Text:       node.Text,
		LayoutType: node.LayoutType,
		ParentID:   node.ParentID,
		Children:   []models.ChildNodeView{},
		Buttons:    []models.ButtonView{},
		Images:     []models.ImageView{},
	}
	for _, b := range buttons {
		view.Buttons = append(view.Buttons, models.ButtonView{
			ID:           b.ID,
			Label:        b.Label,
			TargetNodeID: b.TargetNodeID,
			Order:        b.Order,
		})
	}
	for _, img := range images {
		view.Images = append(view.Images, models.ImageView{
			ID:       img.ID,
			ImageURL: s.makeFullURL(img.ImageURL, img.FileName),
			Order:    img.Order,
		})
	}
	for _, child := range children {
		view.Children = append(view.Children, models.ChildNodeView{
			ID:         child.ID,
			Title:      child.Title,
			Text:       child.Text,
			LayoutType: child.LayoutType,
			ParentID:   child.ParentID,
		})
	}
	return view, nil
}

// --- Команды мутации дерева ---

func (s *NodeService) CreateNode(ctx context.Context, n *models.Node) error {
	logger.Log.Info("Создание узла (service)", zap.String("title", n.Title))
	if err := s.nodes.CreateNode(ctx, n); err != nil {
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}

func (s *NodeService) UpdateNode(ctx context.Context, id int, input *models.UpdateNodeRequest) error {
	logger.Log.Info("Обновление узла (service)", zap.Int("node_id", id))
	if err := s.nodes.UpdateNode(ctx, id, input); err != nil {
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}

func (s *NodeService) DeleteNode(ctx context.Context, id int) error {
	logger.Log.Info("Удаление узла (service)", zap.Int("node_id", id))
	if err := s.nodes.DeleteNode(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}

func (s *NodeService) GetNode(ctx context.Context, id int) (*models.Node, error) {
	return s.nodes.GetNodeByID(ctx, id)
}

func (s *NodeService) GetButton(ctx context.Context, id int) (*models.Button, error) {
	return s.buttons.GetButtonByID(ctx, id)
}

func (s *NodeService) CreateButton(ctx context.Context, b *models.Button) error {
	logger.Log.Info("Создание кнопки (service)",
		zap.Int("source_node_id", b.SourceNodeID), zap.Int("target_node_id", b.TargetNodeID))
	if err := s.buttons.CreateButton(ctx, b); err != nil {
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}

func (s *NodeService) UpdateButton(ctx context.Context, id int, input *models.UpdateButtonRequest) error {
	logger.Log.Info("Обновление кнопки (service)", zap.Int("button_id", id))
	if err := s.buttons.UpdateButton(ctx, id, input); err != nil {
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}

func (s *NodeService) DeleteButton(ctx context.Context, id int) error {
	logger.Log.Info("Удаление кнопки (service)", zap.Int("button_id", id))
	if err := s.buttons.DeleteButton(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}

func (s *NodeService) GetImage(ctx context.Context, id int) (*models.Image, error) {
	return s.images.GetImageByID(ctx, id)
}

func (s *NodeService) CreateImage(ctx context.Context, img *models.Image) error {
	logger.Log.Info("Создание изображения (service)", zap.Int("node_id", img.NodeID))
	if err := s.images.CreateImage(ctx, img); err != nil {
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}

func (s *NodeService) UpdateImage(ctx context.Context, id int, input *models.UpdateImageRequest) error {
	logger.Log.Info("Обновление изображения (service)", zap.Int("image_id", id))
	if err := s.images.UpdateImage(ctx, id, input); err != nil {
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}

func (s *NodeService) DeleteImage(ctx context.Context, id int) error {
	logger.Log.Info("Удаление изображения (service)", zap.Int("image_id", id))
	if err := s.images.DeleteImage(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}
