package bot

import (
	"context"
	"errors"
	"hrbot/internal/apperrors"
	"hrbot/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	users    map[int64]*models.TelegramAuthResponse
	nodes    map[int]*models.NodeView
	rootID   int
	authErr  error
	requests []*models.HRRequest
	history  map[int64][]*models.HRRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users: map[int64]*models.TelegramAuthResponse{
			100: {Allowed: true, Role: models.RoleUser},
			200: {Allowed: true, Role: models.RoleAdmin},
		},
		nodes: map[int]*models.NodeView{
			1: {ID: 1, Title: "Меню"},
			2: {ID: 2, Title: "Отпуск"},
			3: {ID: 3, Title: "Зарплата"},
		},
		rootID:  1,
		history: map[int64][]*models.HRRequest{},
	}
}

func (f *fakeBackend) GetUser(_ context.Context, telegramID int64) (*models.TelegramAuthResponse, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	auth, ok := f.users[telegramID]
	if !ok {
		return &models.TelegramAuthResponse{Allowed: false}, nil
	}
	return auth, nil
}

func (f *fakeBackend) GetRootNode(_ context.Context) (*models.NodeView, error) {
	return f.nodes[f.rootID], nil
}

func (f *fakeBackend) GetNode(_ context.Context, nodeID int) (*models.NodeView, error) {
	node, ok := f.nodes[nodeID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return node, nil
}

func (f *fakeBackend) SendHRRequest(_ context.Context, telegramID int64, message string) (*models.HRRequest, error) {
	req := &models.HRRequest{ID: len(f.requests) + 1, Message: message, Status: models.HRStatusNew}
	f.requests = append(f.requests, req)
	return req, nil
}

func (f *fakeBackend) GetHRRequests(_ context.Context, telegramID int64, offset, limit int) ([]*models.HRRequest, error) {
	all := f.history[telegramID]
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func newTestEngine(backend *fakeBackend) *Engine {
	return NewEngine(backend, NewSwearFilter([]string{"дурак"}), Options{
		MinMessageLen:   30,
		PageSize:        5,
		SwearProba:      0.33,
		HRQuestionTitle: "не нашел ответ на свой вопрос?",
	})
}

const longQuestion = "Подскажите, пожалуйста, как оформить отпуск за свой счёт"

func TestEngineStart(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestEngine(backend)
	s := NewSession(20)

	node, err := engine.Start(context.Background(), &s, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, node.ID)
	assert.Equal(t, []int{1}, s.Stack)
	assert.False(t, s.IsAdmin)
}

func TestEngineStartDenied(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestEngine(backend)
	s := NewSession(20)

	_, err := engine.Start(context.Background(), &s, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestEngineStartAuthErrorFailsClosed(t *testing.T) {
	backend := newFakeBackend()
	backend.authErr = errors.New("backend down")
	engine := newTestEngine(backend)
	s := NewSession(20)

	_, err := engine.Start(context.Background(), &s, 100)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestEngineNavigateAndBack(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestEngine(backend)
	ctx := context.Background()
	s := NewSession(20)

	_, err := engine.Start(ctx, &s, 100)
	require.NoError(t, err)

	_, err = engine.Navigate(ctx, &s, 2)
	require.NoError(t, err)
	_, err = engine.Navigate(ctx, &s, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, s.Stack)

	node, err := engine.Back(ctx, &s)
	require.NoError(t, err)
	assert.Equal(t, 2, node.ID)

	node, err = engine.Back(ctx, &s)
	require.NoError(t, err)
	assert.Equal(t, 1, node.ID)

	// Ниже корня не уйти.
	node, err = engine.Back(ctx, &s)
	require.NoError(t, err)
	assert.Equal(t, 1, node.ID)
	assert.Equal(t, []int{1}, s.Stack)
}

func TestEngineNavigateMissingNode(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestEngine(backend)
	ctx := context.Background()
	s := NewSession(20)

	_, err := engine.Start(ctx, &s, 100)
	require.NoError(t, err)

	_, err = engine.Navigate(ctx, &s, 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	// Стек не испорчен неудачным переходом.
	assert.Equal(t, []int{1}, s.Stack)
}

func TestEngineHomeResetsStack(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestEngine(backend)
	ctx := context.Background()
	s := NewSession(20)

	_, err := engine.Start(ctx, &s, 100)
	require.NoError(t, err)
	_, err = engine.Navigate(ctx, &s, 2)
	require.NoError(t, err)
	_, err = engine.Navigate(ctx, &s, 3)
	require.NoError(t, err)

	node, err := engine.Home(ctx, &s, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, node.ID)
	assert.Equal(t, []int{1}, s.Stack)
}

func TestEngineBackCancelsAwaiting(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestEngine(backend)
	ctx := context.Background()
	s := NewSession(20)

	_, err := engine.Start(ctx, &s, 100)
	require.NoError(t, err)
	_, err = engine.Navigate(ctx, &s, 2)
	require.NoError(t, err)

	engine.RequestSupport(&s)
	require.True(t, s.AwaitingSupport)

	// «Назад» из ожидания снимает флаг, позиция не меняется.
	node, err := engine.Back(ctx, &s)
	require.NoError(t, err)
	assert.Equal(t, 2, node.ID)
	assert.False(t, s.AwaitingSupport)
	assert.Equal(t, []int{1, 2}, s.Stack)
}

func TestEngineSubmitTooShort(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestEngine(backend)
	ctx := context.Background()
	s := NewSession(20)

	_, err := engine.Start(ctx, &s, 100)
	require.NoError(t, err)
	engine.RequestSupport(&s)

	res, err := engine.SubmitSupport(ctx, &s, 100, "короткий вопрос")
	require.NoError(t, err)
	assert.Equal(t, SubmitTooShort, res.Status)
	// Отклонение не снимает режим ожидания.
	assert.True(t, s.AwaitingSupport)
	assert.Empty(t, backend.requests)
}

func TestEngineSubmitAbusive(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestEngine(backend)
	ctx := context.Background()
	s := NewSession(20)

	_, err := engine.Start(ctx, &s, 100)
	require.NoError(t, err)
	engine.RequestSupport(&s)

	res, err := engine.SubmitSupport(ctx, &s, 100,
		"дурак дурак дурак, а теперь достаточно длинный текст вопроса")
	require.NoError(t, err)
	assert.Equal(t, SubmitAbusive, res.Status)
	assert.True(t, s.AwaitingSupport)
	assert.Empty(t, backend.requests)
}

func TestEngineSubmitAccepted(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestEngine(backend)
	ctx := context.Background()
	s := NewSession(20)

	_, err := engine.Start(ctx, &s, 100)
	require.NoError(t, err)
	_, err = engine.Navigate(ctx, &s, 2)
	require.NoError(t, err)
	engine.RequestSupport(&s)

	res, err := engine.SubmitSupport(ctx, &s, 100, longQuestion)
	require.NoError(t, err)
	assert.Equal(t, SubmitAccepted, res.Status)
	require.NotNil(t, res.Request)
	assert.Equal(t, longQuestion, res.Request.Message)

	// Принятое обращение снимает флаг и возвращает в корень.
	assert.False(t, s.AwaitingSupport)
	assert.Equal(t, []int{1}, s.Stack)
	require.NotNil(t, res.Node)
	assert.Equal(t, 1, res.Node.ID)
}

func TestEngineSubmitAdminBlocked(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestEngine(backend)
	ctx := context.Background()
	s := NewSession(20)

	_, err := engine.Start(ctx, &s, 200)
	require.NoError(t, err)
	engine.RequestSupport(&s)

	res, err := engine.SubmitSupport(ctx, &s, 200, longQuestion)
	require.NoError(t, err)
	assert.Equal(t, SubmitAdminBlocked, res.Status)
	assert.False(t, s.AwaitingSupport)
	assert.Empty(t, backend.requests)
}

func TestEngineHints(t *testing.T) {
	backend := newFakeBackend()
	backend.nodes[4] = &models.NodeView{ID: 4, Title: "Не нашел ответ на свой вопрос?"}
	engine := newTestEngine(backend)
	ctx := context.Background()
	s := NewSession(20)

	root, err := engine.Start(ctx, &s, 100)
	require.NoError(t, err)

	hints := engine.Hints(&s, root)
	assert.False(t, hints.ShowBack)
	assert.False(t, hints.ShowWriteHR)

	node, err := engine.Navigate(ctx, &s, 4)
	require.NoError(t, err)

	// Вход в обращение к HR узнаётся по названию без учёта регистра.
	hints = engine.Hints(&s, node)
	assert.True(t, hints.ShowBack)
	assert.True(t, hints.ShowWriteHR)
	assert.False(t, hints.IsAdmin)
}

func TestEngineMyRequestsPaging(t *testing.T) {
	backend := newFakeBackend()
	for i := 1; i <= 12; i++ {
		backend.history[100] = append(backend.history[100],
			&models.HRRequest{ID: i, Status: models.HRStatusNew})
	}
	engine := newTestEngine(backend)
	ctx := context.Background()
	s := NewSession(20)

	page, err := engine.MyRequests(ctx, &s, 100)
	require.NoError(t, err)
	assert.Len(t, page.Requests, 5)
	assert.False(t, page.HasPrev)
	assert.True(t, page.HasNext)

	page, err = engine.NextRequests(ctx, &s, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.True(t, page.HasPrev)
	assert.True(t, page.HasNext)
	assert.Equal(t, 6, page.Requests[0].ID)

	page, err = engine.NextRequests(ctx, &s, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Requests, 2)
	assert.False(t, page.HasNext)

	// Дальше некуда: страница не меняется.
	page, err = engine.NextRequests(ctx, &s, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)

	page, err = engine.PrevRequests(ctx, &s, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)

	s.HRPage = 0
	page, err = engine.PrevRequests(ctx, &s, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Page)
}
