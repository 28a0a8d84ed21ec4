package handlers

import (
	"encoding/json"
	"hrbot/internal/logger"
	"hrbot/internal/models"
	"hrbot/internal/services"
	helpers "hrbot/internal/utils/helpers"
	"net/http"

	"go.uber.org/zap"
)

type ButtonHandler struct {
	nodeService *services.NodeService
}

func NewButtonHandler(nodeService *services.NodeService) *ButtonHandler {
	return &ButtonHandler{nodeService: nodeService}
}

type createButtonRequest struct {
	SourceNodeID int    `json:"source_node_id"`
	TargetNodeID int    `json:"target_node_id"`
	Label        string `json:"label"`
	Order        int    `json:"order"`
}

// CreateButton godoc
// @Summary Создать кнопку-переход
// @Tags admin-buttons
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body createButtonRequest true "Данные кнопки"
// @Success 201 {object} models.Button
// @Failure 400 {string} string "Нарушение правил дерева"
// @Router /api/admin/buttons [post]
func (h *ButtonHandler) CreateButton(w http.ResponseWriter, r *http.Request) {
	var req createButtonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if req.Label == "" {
		helpers.Error(w, http.StatusBadRequest, "Подпись кнопки обязательна")
		return
	}

	button := &models.Button{
		SourceNodeID: req.SourceNodeID,
		TargetNodeID: req.TargetNodeID,
		Label:        req.Label,
		Order:        req.Order,
	}
	if err := h.nodeService.CreateButton(r.Context(), button); err != nil {
		respondError(w, err, "Ошибка создания кнопки")
		return
	}

	logger.Log.Info("Кнопка создана", zap.Int("button_id", button.ID))
	helpers.JSON(w, http.StatusCreated, button)
}

// UpdateButton godoc
// @Summary Обновить кнопку
// @Tags admin-buttons
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID кнопки"
// @Param input body models.UpdateButtonRequest true "Изменяемые поля"
// @Success 200 {string} string "Кнопка обновлена"
// @Failure 400 {string} string "Нарушение правил дерева"
// @Router /api/admin/buttons/{id} [patch]
func (h *ButtonHandler) UpdateButton(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var req models.UpdateButtonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	if err := h.nodeService.UpdateButton(r.Context(), id, &req); err != nil {
		respondError(w, err, "Ошибка обновления кнопки")
		return
	}
	helpers.JSON(w, http.StatusOK, "Кнопка обновлена")
}

// DeleteButton godoc
// @Summary Удалить кнопку
// @Tags admin-buttons
// @Security ApiKeyAuth
// @Param id path int true "ID кнопки"
// @Success 200 {string} string "Кнопка удалена"
// @Router /api/admin/buttons/{id} [delete]
func (h *ButtonHandler) DeleteButton(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	if err := h.nodeService.DeleteButton(r.Context(), id); err != nil {
		respondError(w, err, "Ошибка удаления кнопки")
		return
	}
	helpers.JSON(w, http.StatusOK, "Кнопка удалена")
}
