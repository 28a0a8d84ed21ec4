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

type ImageHandler struct {
	nodeService *services.NodeService
}

func NewImageHandler(nodeService *services.NodeService) *ImageHandler {
	return &ImageHandler{nodeService: nodeService}
}

type createImageRequest struct {
	NodeID   int    `json:"node_id"`
	ImageURL string `json:"image_url"`
	FileName string `json:"file_name"`
	Order    int    `json:"order"`
}

// CreateImage godoc
// @Summary Прикрепить изображение к узлу
// @Tags admin-images
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body createImageRequest true "Данные изображения"
// @Success 201 {object} models.Image
// @Failure 400 {string} string "Лимит вложений или дубликат"
// @Router /api/admin/images [post]
func (h *ImageHandler) CreateImage(w http.ResponseWriter, r *http.Request) {
	var req createImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if req.FileName == "" {
		helpers.Error(w, http.StatusBadRequest, "Имя файла обязательно")
		return
	}

	img := &models.Image{
		NodeID:   req.NodeID,
		ImageURL: req.ImageURL,
		FileName: req.FileName,
		Order:    req.Order,
	}
	if err := h.nodeService.CreateImage(r.Context(), img); err != nil {
		respondError(w, err, "Ошибка прикрепления изображения")
		return
	}

	logger.Log.Info("Изображение прикреплено",
		zap.Int("image_id", img.ID), zap.Int("node_id", img.NodeID))
	helpers.JSON(w, http.StatusCreated, img)
}

// UpdateImage godoc
// @Summary Обновить изображение
// @Tags admin-images
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID изображения"
// @Param input body models.UpdateImageRequest true "Изменяемые поля"
// @Success 200 {string} string "Изображение обновлено"
// @Failure 400 {string} string "Лимит вложений или дубликат"
// @Router /api/admin/images/{id} [patch]
func (h *ImageHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var req models.UpdateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	if err := h.nodeService.UpdateImage(r.Context(), id, &req); err != nil {
		respondError(w, err, "Ошибка обновления изображения")
		return
	}
	helpers.JSON(w, http.StatusOK, "Изображение обновлено")
}

// DeleteImage godoc
// @Summary Удалить изображение
// @Tags admin-images
// @Security ApiKeyAuth
// @Param id path int true "ID изображения"
// @Success 200 {string} string "Изображение удалено"
// @Router /api/admin/images/{id} [delete]
func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	if err := h.nodeService.DeleteImage(r.Context(), id); err != nil {
		respondError(w, err, "Ошибка удаления изображения")
		return
	}
	helpers.JSON(w, http.StatusOK, "Изображение удалено")
}
