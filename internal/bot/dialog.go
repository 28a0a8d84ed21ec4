package bot

import (
	"context"
	"errors"
	"hrbot/internal/logger"
	"hrbot/internal/models"
	"strings"

	"go.uber.org/zap"
)

// Тексты бота.
const (
	MsgAccessDenied = "Доступ запрещен. Обратись к HR."
	MsgWriteHR      = "Напиши свой вопрос в свободной форме сообщением боту. HR увидит " +
		"его и ответит тебе прямо здесь в чате. Пожалуйста, укажи детали, " +
		"если это важно (например, дату, отдел и т.д)."
	MsgTooShort     = "Пожалуйста, опиши свой вопрос чуть подробнее (минимум 30 символов)."
	MsgAbusive      = "Сообщение вероятно содержит грубые выражения. Пожалуйста, переформулируй."
	MsgAdminBlocked = "Пользователи с административной ролью не могут отправлять сообщения HR через бота."
	MsgNoRequests   = "Еще нет HR-вопросов."

	// Название узла, ведущего в диалог обращения к HR.
	DefaultHRQuestionTitle = "не нашел ответ на свой вопрос?"
)

var (
	ErrAccessDenied   = errors.New("доступ запрещён")
	ErrNotInitialized = errors.New("сессия не инициализирована")
)

type Backend interface {
	GetUser(ctx context.Context, telegramID int64) (*models.TelegramAuthResponse, error)
	GetRootNode(ctx context.Context) (*models.NodeView, error)
	GetNode(ctx context.Context, nodeID int) (*models.NodeView, error)
	SendHRRequest(ctx context.Context, telegramID int64, message string) (*models.HRRequest, error)
	GetHRRequests(ctx context.Context, telegramID int64, offset, limit int) ([]*models.HRRequest, error)
}

type Classifier interface {
	Predict(text string) int
	PredictProba(text string) float64
}

type Options struct {
	MinMessageLen int
	PageSize      int
	SwearProba    float64
	// Узел с этим названием — вход в диалог обращения к HR.
	HRQuestionTitle string
}

// Engine — машина состояний диалога. Не знает про транспорт: принимает
// явное состояние сессии, меняет его и возвращает данные для показа.
type Engine struct {
	backend    Backend
	classifier Classifier
	opts       Options
}

func NewEngine(backend Backend, classifier Classifier, opts Options) *Engine {
	return &Engine{backend: backend, classifier: classifier, opts: opts}
}

// authorize проверяет допуск по внешнему идентификатору. Любая ошибка
// внешнего вызова трактуется как отказ.
func (e *Engine) authorize(ctx context.Context, s *Session, telegramID int64) error {
	auth, err := e.backend.GetUser(ctx, telegramID)
	if err != nil {
		logger.Log.Warn("Проверка доступа не удалась, доступ закрыт (bot)",
			zap.Int64("telegram_id", telegramID), zap.Error(err))
		return ErrAccessDenied
	}
	if !auth.Allowed {
		return ErrAccessDenied
	}
	s.IsAdmin = models.IsPrivilegedRole(auth.Role)
	return nil
}

// Start — первый контакт или явный возврат в начало: проверка доступа,
// сброс стека, переход в корень.
func (e *Engine) Start(ctx context.Context, s *Session, telegramID int64) (*models.NodeView, error) {
	s.AwaitingSupport = false
	if err := e.authorize(ctx, s, telegramID); err != nil {
		return nil, err
	}

	root, err := e.backend.GetRootNode(ctx)
	if err != nil {
		return nil, err
	}
	s.Clear()
	s.Push(root.ID)
	return root, nil
}

// Home возвращает в корень. Если бот ждал текст обращения, ожидание
// снимается, а стек не трогается.
func (e *Engine) Home(ctx context.Context, s *Session, telegramID int64) (*models.NodeView, error) {
	if s.AwaitingSupport {
		s.AwaitingSupport = false
		return e.currentView(ctx, s)
	}
	return e.Start(ctx, s, telegramID)
}

// Navigate — переход по кнопке к целевому узлу.
func (e *Engine) Navigate(ctx context.Context, s *Session, nodeID int) (*models.NodeView, error) {
	node, err := e.backend.GetNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	s.Push(node.ID)
	return node, nil
}

// Back — шаг назад по стеку. Из ожидания текста обращения выходит,
// не меняя позицию.
func (e *Engine) Back(ctx context.Context, s *Session) (*models.NodeView, error) {
	if s.AwaitingSupport {
		s.AwaitingSupport = false
		return e.currentView(ctx, s)
	}
	if _, ok := s.Back(); !ok {
		return nil, ErrNotInitialized
	}
	return e.currentView(ctx, s)
}

func (e *Engine) currentView(ctx context.Context, s *Session) (*models.NodeView, error) {
	id, ok := s.Current()
	if !ok {
		return nil, ErrNotInitialized
	}
	return e.backend.GetNode(ctx, id)
}

// NavHints — подсказки транспорту для отрисовки клавиатуры узла.
type NavHints struct {
	ShowBack bool
	// Текущий узел — вход в обращение к HR.
	ShowWriteHR bool
	IsAdmin     bool
}

// Hints вычисляет видимость навигационных элементов для текущего узла.
func (e *Engine) Hints(s *Session, node *models.NodeView) NavHints {
	return NavHints{
		ShowBack:    len(s.Stack) > 1,
		ShowWriteHR: strings.EqualFold(node.Title, e.opts.HRQuestionTitle),
		IsAdmin:     s.IsAdmin,
	}
}

// RequestSupport переводит диалог в режим ожидания текста обращения.
// Позиция в дереве не меняется.
func (e *Engine) RequestSupport(s *Session) string {
	s.AwaitingSupport = true
	return MsgWriteHR
}

type SubmitStatus int

const (
	SubmitAccepted SubmitStatus = iota
	SubmitTooShort
	SubmitAbusive
	SubmitAdminBlocked
	SubmitNotAwaiting
)

type SubmitResult struct {
	Status  SubmitStatus
	Message string
	Request *models.HRRequest
	// Node заполнен при принятом обращении: возврат в корень.
	Node *models.NodeView
}

// SubmitSupport обрабатывает текст обращения. Отклонённое сообщение
// оставляет режим ожидания включённым, принятое — создаёт обращение
// и возвращает пользователя в корень.
func (e *Engine) SubmitSupport(ctx context.Context, s *Session, telegramID int64, text string) (*SubmitResult, error) {
	if err := e.authorize(ctx, s, telegramID); err != nil {
		s.AwaitingSupport = false
		return nil, err
	}
	if s.IsAdmin {
		s.AwaitingSupport = false
		return &SubmitResult{Status: SubmitAdminBlocked, Message: MsgAdminBlocked}, nil
	}
	if !s.AwaitingSupport {
		return &SubmitResult{Status: SubmitNotAwaiting}, nil
	}

	normalized := strings.ToLower(strings.TrimSpace(text))
	if len([]rune(normalized)) < e.opts.MinMessageLen {
		return &SubmitResult{Status: SubmitTooShort, Message: MsgTooShort}, nil
	}
	if e.classifier.Predict(normalized) == 1 || e.classifier.PredictProba(normalized) >= e.opts.SwearProba {
		return &SubmitResult{Status: SubmitAbusive, Message: MsgAbusive}, nil
	}

	req, err := e.backend.SendHRRequest(ctx, telegramID, text)
	if err != nil {
		return nil, err
	}
	s.AwaitingSupport = false

	root, err := e.Start(ctx, s, telegramID)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{Status: SubmitAccepted, Request: req, Node: root}, nil
}

type RequestsPage struct {
	Requests []*models.HRRequest
	Page     int
	HasPrev  bool
	HasNext  bool
}

// MyRequests — страница истории обращений пользователя. Для проверки
// существования следующей страницы запрашивается одна лишняя строка.
func (e *Engine) MyRequests(ctx context.Context, s *Session, telegramID int64) (*RequestsPage, error) {
	offset := s.HRPage * e.opts.PageSize
	list, err := e.backend.GetHRRequests(ctx, telegramID, offset, e.opts.PageSize+1)
	if err != nil {
		return nil, err
	}

	page := &RequestsPage{
		Page:    s.HRPage,
		HasPrev: s.HRPage > 0,
		HasNext: len(list) > e.opts.PageSize,
	}
	if page.HasNext {
		list = list[:e.opts.PageSize]
	}
	page.Requests = list
	return page, nil
}

// NextRequests листает историю вперёд и возвращает новую страницу.
func (e *Engine) NextRequests(ctx context.Context, s *Session, telegramID int64) (*RequestsPage, error) {
	page, err := e.MyRequests(ctx, s, telegramID)
	if err != nil {
		return nil, err
	}
	if !page.HasNext {
		return page, nil
	}
	s.NextPage(true)
	return e.MyRequests(ctx, s, telegramID)
}

// PrevRequests листает назад, не опускаясь ниже первой страницы.
func (e *Engine) PrevRequests(ctx context.Context, s *Session, telegramID int64) (*RequestsPage, error) {
	s.PrevPage()
	return e.MyRequests(ctx, s, telegramID)
}
