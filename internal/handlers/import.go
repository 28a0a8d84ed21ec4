package handlers

import (
	"hrbot/internal/logger"
	"hrbot/internal/services"
	helpers "hrbot/internal/utils/helpers"
	"net/http"

	"go.uber.org/zap"
)

const maxImportSize = 10 << 20 // 10 МБ

type ImportHandler struct {
	importer *services.ImporterService
}

func NewImportHandler(importer *services.ImporterService) *ImportHandler {
	return &ImportHandler{importer: importer}
}

type importResponse struct {
	Created int `json:"created"`
}

// ImportUsers godoc
// @Summary Массовый импорт пользователей из CSV
// @Tags admin-users
// @Security ApiKeyAuth
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV с колонками login,full_name,telegram_id,role,password"
// @Success 200 {object} importResponse
// @Failure 400 {string} string "Некорректный файл"
// @Router /api/admin/users/import [post]
func (h *ImportHandler) ImportUsers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Не удалось разобрать форму")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Файл не передан")
		return
	}
	defer file.Close()

	count, err := h.importer.ImportUsers(r.Context(), file)
	if err != nil {
		logger.Log.Error("Импорт пользователей не удался",
			zap.String("file", header.Filename), zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	helpers.JSON(w, http.StatusOK, importResponse{Created: count})
}
