package handlers

import (
	"encoding/json"
	"hrbot/internal/services"
	helpers "hrbot/internal/utils/helpers"
	"net/http"
	"strconv"
)

type HRRequestHandler struct {
	hrService *services.HRService
	pageSize  int
}

func NewHRRequestHandler(hrService *services.HRService, pageSize int) *HRRequestHandler {
	return &HRRequestHandler{hrService: hrService, pageSize: pageSize}
}

type createHRRequestBody struct {
	TelegramID int64  `json:"telegram_id"`
	Message    string `json:"message"`
}

type answerHRRequestBody struct {
	Reply string `json:"reply"`
}

func queryInt(r *http.Request, name, def string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		raw = def
	}
	return strconv.Atoi(raw)
}

// CreateHRRequest godoc
// @Summary Зарегистрировать обращение к HR
// @Tags hr-requests
// @Accept json
// @Produce json
// @Param input body createHRRequestBody true "Telegram ID и текст"
// @Success 201 {object} models.HRRequest
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/v1/hr-request [post]
func (h *HRRequestHandler) CreateHRRequest(w http.ResponseWriter, r *http.Request) {
	var req createHRRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if req.Message == "" {
		helpers.Error(w, http.StatusBadRequest, "Текст обращения обязателен")
		return
	}

	created, err := h.hrService.Create(r.Context(), req.TelegramID, req.Message)
	if err != nil {
		respondError(w, err, "Ошибка регистрации обращения")
		return
	}
	helpers.JSON(w, http.StatusCreated, created)
}

// ListHRRequests godoc
// @Summary Обращения пользователя, свежие первыми
// @Tags hr-requests
// @Produce json
// @Param telegram_id query int true "Telegram ID"
// @Param offset query int false "Смещение"
// @Param limit query int false "Размер страницы"
// @Success 200 {array} models.HRRequest
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/v1/hr-requests [get]
func (h *HRRequestHandler) ListHRRequests(w http.ResponseWriter, r *http.Request) {
	telegramID, err := strconv.ParseInt(r.URL.Query().Get("telegram_id"), 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный telegram_id")
		return
	}
	offset, err := queryInt(r, "offset", "0")
	if err != nil || offset < 0 {
		helpers.Error(w, http.StatusBadRequest, "Некорректный offset")
		return
	}
	limit, err := queryInt(r, "limit", strconv.Itoa(h.pageSize))
	if err != nil || limit < 1 {
		helpers.Error(w, http.StatusBadRequest, "Некорректный limit")
		return
	}

	list, err := h.hrService.ListForUser(r.Context(), telegramID, offset, limit)
	if err != nil {
		respondError(w, err, "Ошибка получения обращений")
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// ListAllHRRequests godoc
// @Summary Все обращения для HR
// @Tags admin-hr-requests
// @Security ApiKeyAuth
// @Produce json
// @Param status query string false "Фильтр по статусу"
// @Param offset query int false "Смещение"
// @Param limit query int false "Размер страницы"
// @Success 200 {array} models.HRRequest
// @Router /api/admin/hr-requests [get]
func (h *HRRequestHandler) ListAllHRRequests(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", "0")
	if err != nil || offset < 0 {
		helpers.Error(w, http.StatusBadRequest, "Некорректный offset")
		return
	}
	limit, err := queryInt(r, "limit", "50")
	if err != nil || limit < 1 {
		helpers.Error(w, http.StatusBadRequest, "Некорректный limit")
		return
	}

	list, err := h.hrService.ListAll(r.Context(), r.URL.Query().Get("status"), offset, limit)
	if err != nil {
		respondError(w, err, "Ошибка получения обращений")
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// AnswerHRRequest godoc
// @Summary Ответить на обращение (один раз)
// @Tags admin-hr-requests
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID обращения"
// @Param input body answerHRRequestBody true "Текст ответа"
// @Success 200 {object} models.HRRequest
// @Failure 400 {string} string "Повторный ответ запрещён"
// @Router /api/admin/hr-requests/{id}/answer [patch]
func (h *HRRequestHandler) AnswerHRRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var req answerHRRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if req.Reply == "" {
		helpers.Error(w, http.StatusBadRequest, "Текст ответа обязателен")
		return
	}

	answered, err := h.hrService.Answer(r.Context(), id, req.Reply)
	if err != nil {
		respondError(w, err, "Ошибка записи ответа")
		return
	}
	helpers.JSON(w, http.StatusOK, answered)
}
