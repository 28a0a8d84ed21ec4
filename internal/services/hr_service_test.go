package services

import (
	"context"
	"errors"
	"hrbot/internal/apperrors"
	"hrbot/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHRRepo struct {
	requests map[int]*models.HRRequest
	nextID   int
}

func (f *fakeHRRepo) CreateHRRequest(_ context.Context, userID int, message string) (*models.HRRequest, error) {
	f.nextID++
	req := &models.HRRequest{
		ID:        f.nextID,
		UserID:    userID,
		Message:   message,
		Status:    models.HRStatusNew,
		CreatedAt: time.Now(),
	}
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeHRRepo) GetHRRequestByID(_ context.Context, id int) (*models.HRRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return req, nil
}

func (f *fakeHRRepo) GetUserHRRequests(_ context.Context, userID, offset, limit int) ([]*models.HRRequest, error) {
	var out []*models.HRRequest
	for _, req := range f.requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeHRRepo) GetAllHRRequests(_ context.Context, status string, offset, limit int) ([]*models.HRRequest, error) {
	var out []*models.HRRequest
	for _, req := range f.requests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeHRRepo) AnswerHRRequest(_ context.Context, id int, reply string) (*models.HRRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if req.HRReply != nil {
		return nil, apperrors.Validation("можно ответить только один раз")
	}
	now := time.Now()
	req.HRReply = &reply
	req.Status = models.HRStatusAnswered
	req.RepliedAt = &now
	return req, nil
}

type fakeUserRepo struct {
	byTelegram map[int64]*models.User
	byID       map[int]*models.User
}

func (f *fakeUserRepo) GetByTelegramID(_ context.Context, telegramID int64) (*models.User, error) {
	u, ok := f.byTelegram[telegramID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) SendMessage(_ context.Context, chatID int64, text string) {
	f.sent = append(f.sent, text)
}

func newTestHRService() (*HRService, *fakeHRRepo, *fakeNotifier) {
	tgID := int64(100)
	user := &models.User{ID: 1, Login: "ivanov", TelegramID: &tgID, IsActive: true, Role: models.RoleUser}
	users := &fakeUserRepo{
		byTelegram: map[int64]*models.User{tgID: user},
		byID:       map[int]*models.User{1: user},
	}
	repo := &fakeHRRepo{requests: map[int]*models.HRRequest{}}
	notifier := &fakeNotifier{}
	return NewHRService(repo, users, notifier), repo, notifier
}

func TestHRCreate(t *testing.T) {
	svc, _, notifier := newTestHRService()

	req, err := svc.Create(context.Background(), 100, "Не могу оформить отпуск, помогите разобраться")
	require.NoError(t, err)

	assert.Equal(t, models.HRStatusNew, req.Status)
	assert.Equal(t, 1, req.UserID)
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "#1 зарегистрирован")
}

func TestHRCreateUnknownUser(t *testing.T) {
	svc, _, notifier := newTestHRService()

	_, err := svc.Create(context.Background(), 999, "вопрос")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Empty(t, notifier.sent)
}

func TestHRAnswer(t *testing.T) {
	svc, _, notifier := newTestHRService()

	req, err := svc.Create(context.Background(), 100, "Вопрос про график работы в праздники")
	require.NoError(t, err)

	answered, err := svc.Answer(context.Background(), req.ID, "График опубликован на портале")
	require.NoError(t, err)

	assert.Equal(t, models.HRStatusAnswered, answered.Status)
	require.NotNil(t, answered.HRReply)
	assert.Equal(t, "График опубликован на портале", *answered.HRReply)
	assert.NotNil(t, answered.RepliedAt)

	// Уведомления: регистрация + ответ.
	require.Len(t, notifier.sent, 2)
	assert.Contains(t, notifier.sent[1], "Ответ от HR по вопросу #1")
}

func TestHRAnswerOnce(t *testing.T) {
	svc, _, _ := newTestHRService()

	req, err := svc.Create(context.Background(), 100, "Вопрос про ДМС для членов семьи")
	require.NoError(t, err)

	_, err = svc.Answer(context.Background(), req.ID, "первый ответ")
	require.NoError(t, err)

	_, err = svc.Answer(context.Background(), req.ID, "второй ответ")
	assert.True(t, apperrors.IsValidation(err))
}

func TestHRAnswerUserWithoutTelegram(t *testing.T) {
	svc, repo, notifier := newTestHRService()

	// Автор без привязки к Telegram: ответ сохраняется, уведомления нет.
	svcUsers := svc.users.(*fakeUserRepo)
	svcUsers.byID[2] = &models.User{ID: 2, Login: "petrov", IsActive: true, Role: models.RoleUser}
	repo.nextID++
	repo.requests[repo.nextID] = &models.HRRequest{
		ID: repo.nextID, UserID: 2, Message: "вопрос", Status: models.HRStatusNew, CreatedAt: time.Now(),
	}

	answered, err := svc.Answer(context.Background(), repo.nextID, "ответ")
	require.NoError(t, err)
	assert.Equal(t, models.HRStatusAnswered, answered.Status)
	assert.Empty(t, notifier.sent)
}

func TestHRListForUser(t *testing.T) {
	svc, _, _ := newTestHRService()

	_, err := svc.Create(context.Background(), 100, "Первый вопрос, достаточно длинный для примера")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 100, "Второй вопрос, тоже достаточно длинный")
	require.NoError(t, err)

	list, err := svc.ListForUser(context.Background(), 100, 0, 5)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.ListForUser(context.Background(), 999, 0, 5)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
