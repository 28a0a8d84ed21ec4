package handlers

import (
	"errors"
	"hrbot/internal/apperrors"
	"hrbot/internal/logger"
	helpers "hrbot/internal/utils/helpers"
	"net/http"

	"go.uber.org/zap"
)

// respondError переводит ошибки доменного слоя в HTTP-статусы:
// нарушение бизнес-правила — 400, отсутствие сущности — 404,
// всё остальное — 500 с нейтральным текстом.
func respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case apperrors.IsValidation(err):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "Не найдено")
	default:
		logger.Log.Error(fallback, zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, fallback)
	}
}
