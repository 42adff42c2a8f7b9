package http

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"todo-folders.com/todo-folders/internal/constants"
	dto "todo-folders.com/todo-folders/internal/data_models"
	apperrors "todo-folders.com/todo-folders/internal/errors"
	middleware "todo-folders.com/todo-folders/internal/http/middlewares"
	"todo-folders.com/todo-folders/internal/http/validators"
	"todo-folders.com/todo-folders/internal/services"
)

type Handler struct {
	todoService   *services.TodoService
	folderService *services.FolderService
}

func NewHandler(todoService *services.TodoService, folderService *services.FolderService) *Handler {
	return &Handler{
		todoService:   todoService,
		folderService: folderService,
	}
}

func (h *Handler) CreateTodo(c echo.Context) error {
	return h.createTodo(c, nil)
}

func (h *Handler) CreateFolderTodo(c echo.Context) error {
	folderID := c.Param("id")
	return h.createTodo(c, &folderID)
}

func (h *Handler) createTodo(c echo.Context, folderID *string) error {
	var req dto.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidJSON.Message)
	}
	if err := validators.ValidateCreateTodoRequest(c, &req); err != nil {
		return err
	}
	if folderID == nil {
		folderID = req.FolderID
	}

	result, err := h.todoService.CreateTodo(c.Request().Context(), ownerID(c), services.CreateTodoInput{
		Text:             req.Text,
		Priority:         constants.Priority(req.Priority),
		ReminderInterval: req.ReminderInterval,
		DueDate:          req.DueDate,
		FolderID:         folderID,
	})
	if err != nil {
		return httpError(err, "failed to create todo")
	}

	return c.JSON(http.StatusCreated, todoResponse(result))
}

func (h *Handler) GetTodo(c echo.Context) error {
	todo, err := h.todoService.GetTodo(c.Request().Context(), ownerID(c), c.Param("id"))
	if err != nil {
		return httpError(err, "failed to load todo")
	}

	return c.JSON(http.StatusOK, dto.TodoResponse{Todo: todo})
}

func (h *Handler) ListTodos(c echo.Context) error {
	todos, err := h.todoService.ListTodos(c.Request().Context(), ownerID(c))
	if err != nil {
		return httpError(err, "failed to list todos")
	}

	return c.JSON(http.StatusOK, dto.TodoListResponse{Count: len(todos), Todos: todos})
}

func (h *Handler) EditTodo(c echo.Context) error {
	var req dto.EditTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidJSON.Message)
	}
	if err := validators.ValidateEditTodoRequest(c, &req); err != nil {
		return err
	}

	result, err := h.todoService.EditTodo(c.Request().Context(), ownerID(c), c.Param("id"), services.EditTodoInput{
		Text:             req.Text,
		Priority:         constants.Priority(req.Priority),
		ReminderInterval: req.ReminderInterval,
		DueDate:          req.DueDate,
		PriorReminderID:  req.PriorReminderID,
	})
	if err != nil {
		return httpError(err, "failed to update todo")
	}

	return c.JSON(http.StatusOK, todoResponse(result))
}

func (h *Handler) ToggleTodo(c echo.Context) error {
	var req dto.ToggleTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidJSON.Message)
	}
	if err := validators.ValidateToggleTodoRequest(c, &req); err != nil {
		return err
	}

	result, err := h.todoService.ToggleTodo(c.Request().Context(), ownerID(c), c.Param("id"), *req.IsCompleted)
	if err != nil {
		return httpError(err, "failed to update todo")
	}

	return c.JSON(http.StatusOK, todoResponse(result))
}

func (h *Handler) DeleteTodo(c echo.Context) error {
	result, err := h.todoService.DeleteTodo(c.Request().Context(), ownerID(c), c.Param("id"))
	if err != nil {
		return httpError(err, "failed to delete todo")
	}

	return c.JSON(http.StatusOK, todoResponse(result))
}

func ownerID(c echo.Context) string {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}

func todoResponse(result *services.TodoResult) dto.TodoResponse {
	resp := dto.TodoResponse{Todo: result.Todo}
	if result.Warning != nil {
		resp.Warning = result.Warning.Error()
	}
	return resp
}

// httpError turns a service error into an echo error. Anything that is not an
// application exception is logged and reported with fallback.
func httpError(err error, fallback string) error {
	status := apperrors.StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", fallback, err)
	}
	return echo.NewHTTPError(status, apperrors.Message(err, fallback))
}
