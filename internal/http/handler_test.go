package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todo-folders.com/todo-folders/internal/constants"
	dto "todo-folders.com/todo-folders/internal/data_models"
	model "todo-folders.com/todo-folders/internal/models"
	"todo-folders.com/todo-folders/internal/reminders"
	repository "todo-folders.com/todo-folders/internal/repositories"
	"todo-folders.com/todo-folders/internal/services"
)

// flakyScheduler fails every schedule call while down is set.
type flakyScheduler struct {
	*reminders.MemoryScheduler
	down bool
}

func (f *flakyScheduler) ScheduleRecurring(ctx context.Context, title, body string, intervalMinutes int) (string, error) {
	if f.down {
		return "", errors.New("notifications not permitted")
	}
	return f.MemoryScheduler.ScheduleRecurring(ctx, title, body, intervalMinutes)
}

type testServer struct {
	e         *echo.Echo
	scheduler *flakyScheduler
	token     string
}

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.User{}, &model.Folder{}, &model.Todo{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func newTestServer(t *testing.T, rateLimit int) *testServer {
	db := setupTestDB(t)
	sched := &flakyScheduler{MemoryScheduler: reminders.NewMemoryScheduler(nil)}
	manager := reminders.NewManager(sched, constants.ReminderTitle)

	todoRepo := repository.NewTodoRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	users := services.NewUserService(repository.NewUserRepository(db))

	user, err := users.Register(context.Background(), "owner@example.com")
	require.NoError(t, err)

	e := echo.New()
	h := NewHandler(
		services.NewTodoService(todoRepo, folderRepo, manager),
		services.NewFolderService(folderRepo, todoRepo, manager),
	)
	Register(e, h, users, rateLimit)

	return &testServer{e: e, scheduler: sched, token: user.APIToken}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if s.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHandler_Health(t *testing.T) {
	s := newTestServer(t, 100)
	s.token = ""

	rec := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_RequiresToken(t *testing.T) {
	s := newTestServer(t, 100)

	s.token = ""
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/todos", "").Code)

	s.token = "not-a-token"
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/todos", "").Code)
}

func TestHandler_CreateTodoWithReminder(t *testing.T) {
	s := newTestServer(t, 100)

	rec := s.do(t, http.MethodPost, "/todos", `{"text":"water plants","priority":"high","reminder_interval":30}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[dto.TodoResponse](t, rec)
	require.NotNil(t, resp.Todo)
	assert.Equal(t, "water plants", resp.Todo.Text)
	assert.Equal(t, constants.PriorityHigh, resp.Todo.Priority)
	require.NotNil(t, resp.Todo.ReminderID)
	assert.Empty(t, resp.Warning)

	active, err := s.scheduler.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, *resp.Todo.ReminderID, active[0].ID)
}

func TestHandler_CreateTodoReportsScheduleWarning(t *testing.T) {
	s := newTestServer(t, 100)
	s.scheduler.down = true

	rec := s.do(t, http.MethodPost, "/todos", `{"text":"stretch","reminder_interval":15}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[dto.TodoResponse](t, rec)
	assert.Nil(t, resp.Todo.ReminderID)
	assert.Contains(t, resp.Warning, "notifications not permitted")

	list := decode[dto.TodoListResponse](t, s.do(t, http.MethodGet, "/todos", ""))
	assert.Equal(t, 1, list.Count)
}

func TestHandler_CreateTodoRejectsBadInput(t *testing.T) {
	s := newTestServer(t, 100)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"text":`},
		{"blank text", `{"text":"   "}`},
		{"negative interval", `{"text":"a","reminder_interval":-5}`},
		{"unknown priority", `{"text":"a","priority":"urgent"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/todos", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_EditToggleDeleteFlow(t *testing.T) {
	s := newTestServer(t, 100)

	created := decode[dto.TodoResponse](t, s.do(t, http.MethodPost, "/todos", `{"text":"read","reminder_interval":60}`))
	id := created.Todo.ID
	first := *created.Todo.ReminderID

	body := fmt.Sprintf(`{"text":"read a book","reminder_interval":120,"prior_reminder_id":%q}`, first)
	rec := s.do(t, http.MethodPut, "/todos/"+id, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	edited := decode[dto.TodoResponse](t, rec)
	require.NotNil(t, edited.Todo.ReminderID)
	assert.NotEqual(t, first, *edited.Todo.ReminderID)

	// the first form copy is now stale
	rec = s.do(t, http.MethodPut, "/todos/"+id, body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/todos/"+id+"/toggle", `{"is_completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	completed := decode[dto.TodoResponse](t, rec)
	assert.True(t, completed.Todo.IsCompleted)
	assert.Nil(t, completed.Todo.ReminderID)

	rec = s.do(t, http.MethodPost, "/todos/"+id+"/toggle", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/todos/"+id+"/toggle", `{"is_completed":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	reopened := decode[dto.TodoResponse](t, rec)
	assert.NotNil(t, reopened.Todo.ReminderID)

	rec = s.do(t, http.MethodDelete, "/todos/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	active, err := s.scheduler.Active(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/todos/"+id, "").Code)
}

func TestHandler_FolderRoutes(t *testing.T) {
	s := newTestServer(t, 100)

	rec := s.do(t, http.MethodPost, "/folders", `{"name":"Home"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	folder := decode[dto.FolderResponse](t, rec).Folder
	assert.Equal(t, constants.DefaultFolderColor(), folder.Color)

	rec = s.do(t, http.MethodPost, "/folders/"+folder.ID+"/todos", `{"text":"vacuum","reminder_interval":5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	todo := decode[dto.TodoResponse](t, rec).Todo
	require.NotNil(t, todo.FolderID)
	assert.Equal(t, folder.ID, *todo.FolderID)

	list := decode[dto.FolderListResponse](t, s.do(t, http.MethodGet, "/folders", ""))
	require.Equal(t, 1, list.Count)
	assert.EqualValues(t, 1, list.Folders[0].TodoCount)

	inFolder := decode[dto.TodoListResponse](t, s.do(t, http.MethodGet, "/folders/"+folder.ID+"/todos", ""))
	assert.Equal(t, 1, inFolder.Count)

	rec = s.do(t, http.MethodPut, "/folders/"+folder.ID, `{"name":"House","color":"#10b981"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "#10B981", decode[dto.FolderResponse](t, rec).Folder.Color)

	rec = s.do(t, http.MethodPut, "/folders/"+folder.ID, `{"name":"House","color":"#123456"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/folders/"+folder.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	deleted := decode[dto.FolderDeletedResponse](t, rec)
	assert.Equal(t, 1, deleted.RemovedTodos)

	active, err := s.scheduler.Active(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/todos/"+todo.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/folders/"+folder.ID, "").Code)
}

func TestHandler_CreateTodoInUnknownFolder(t *testing.T) {
	s := newTestServer(t, 100)

	rec := s.do(t, http.MethodPost, "/folders/"+uuid.NewString()+"/todos", `{"text":"lost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_RateLimit(t *testing.T) {
	s := newTestServer(t, 2)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/todos", "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/todos", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodGet, "/todos", "").Code)
}

func TestHandler_RateLimitCountsRejectedTokens(t *testing.T) {
	s := newTestServer(t, 2)
	s.token = "guessed-token"

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/todos", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/todos", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodGet, "/todos", "").Code)
}
