package handlers

import (
	"encoding/json"
	"hrbot/internal/logger"
	"hrbot/internal/models"
	"hrbot/internal/services"
	helpers "hrbot/internal/utils/helpers"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type NodeHandler struct {
	nodeService *services.NodeService
}

func NewNodeHandler(nodeService *services.NodeService) *NodeHandler {
	return &NodeHandler{nodeService: nodeService}
}

type createNodeRequest struct {
	Title      string            `json:"title"`
	Text       string            `json:"text"`
	LayoutType models.LayoutType `json:"layout_type"`
	ParentID   *int              `json:"parent_id"`
	IsActive   *bool             `json:"is_active"`
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// GetRootNode godoc
// @Summary Корневой узел диалога в собранном виде
// @Tags nodes
// @Produce json
// @Success 200 {object} models.NodeView
// @Failure 404 {string} string "Не найдено"
// @Router /api/v1/nodes/root [get]
func (h *NodeHandler) GetRootNode(w http.ResponseWriter, r *http.Request) {
	view, err := h.nodeService.GetRootView(r.Context())
	if err != nil {
		respondError(w, err, "Ошибка получения корневого узла")
		return
	}
	helpers.JSON(w, http.StatusOK, view)
}

// GetNode godoc
// @Summary Узел диалога в собранном виде
// @Tags nodes
// @Produce json
// @Param id path int true "ID узла"
// @Success 200 {object} models.NodeView
// @Failure 404 {string} string "Не найдено"
// @Router /api/v1/nodes/{id} [get]
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	view, err := h.nodeService.AssembleNode(r.Context(), id)
	if err != nil {
		respondError(w, err, "Ошибка получения узла")
		return
	}
	helpers.JSON(w, http.StatusOK, view)
}

// CreateNode godoc
// @Summary Создать узел
// @Tags admin-nodes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body createNodeRequest true "Данные узла"
// @Success 201 {object} models.Node
// @Failure 400 {string} string "Нарушение правил дерева"
// @Router /api/admin/nodes [post]
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req createNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if req.Title == "" {
		helpers.Error(w, http.StatusBadRequest, "Название обязательно")
		return
	}
	if !req.LayoutType.Valid() {
		helpers.Error(w, http.StatusBadRequest, "Неизвестный тип отображения")
		return
	}

	node := &models.Node{
		Title:      req.Title,
		Text:       req.Text,
		LayoutType: req.LayoutType,
		ParentID:   req.ParentID,
		IsActive:   true,
	}
	if req.IsActive != nil {
		node.IsActive = *req.IsActive
	}

	if err := h.nodeService.CreateNode(r.Context(), node); err != nil {
		respondError(w, err, "Ошибка создания узла")
		return
	}

	logger.Log.Info("Узел создан", zap.Int("node_id", node.ID), zap.String("title", node.Title))
	helpers.JSON(w, http.StatusCreated, node)
}

// UpdateNode godoc
// @Summary Обновить узел
// @Tags admin-nodes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID узла"
// @Param input body models.UpdateNodeRequest true "Изменяемые поля"
// @Success 200 {string} string "Узел обновлён"
// @Failure 400 {string} string "Нарушение правил дерева"
// @Router /api/admin/nodes/{id} [patch]
func (h *NodeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var req models.UpdateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if req.LayoutType != nil && !req.LayoutType.Valid() {
		helpers.Error(w, http.StatusBadRequest, "Неизвестный тип отображения")
		return
	}

	if err := h.nodeService.UpdateNode(r.Context(), id, &req); err != nil {
		respondError(w, err, "Ошибка обновления узла")
		return
	}
	helpers.JSON(w, http.StatusOK, "Узел обновлён")
}

// DeleteNode godoc
// @Summary Удалить узел
// @Tags admin-nodes
// @Security ApiKeyAuth
// @Param id path int true "ID узла"
// @Success 200 {string} string "Узел удалён"
// @Failure 400 {string} string "Удаление запрещено правилами дерева"
// @Router /api/admin/nodes/{id} [delete]
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	if err := h.nodeService.DeleteNode(r.Context(), id); err != nil {
		respondError(w, err, "Ошибка удаления узла")
		return
	}

	logger.Log.Info("Узел удалён", zap.Int("node_id", id))
	helpers.JSON(w, http.StatusOK, "Узел удалён")
}
