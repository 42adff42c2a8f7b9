package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	middleware "todo-folders.com/todo-folders/internal/http/middlewares"
	"todo-folders.com/todo-folders/internal/http/validators"
	"todo-folders.com/todo-folders/internal/services"
)

func Register(e *echo.Echo, h *Handler, users *services.UserService, rateLimitPerMinute int) {
	e.Validator = validators.NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// the IP limiter runs first so unauthenticated guesses are counted too
	api := e.Group("",
		middleware.RateLimiter(rateLimitPerMinute, time.Minute, middleware.ByIP),
		middleware.RequireToken(users),
		middleware.RateLimiter(rateLimitPerMinute, time.Minute, middleware.ByUser),
	)

	api.GET("/todos", h.ListTodos)
	api.POST("/todos", h.CreateTodo)
	api.GET("/todos/:id", h.GetTodo)
	api.PUT("/todos/:id", h.EditTodo)
	api.POST("/todos/:id/toggle", h.ToggleTodo)
	api.DELETE("/todos/:id", h.DeleteTodo)

	api.GET("/folders", h.ListFolders)
	api.POST("/folders", h.CreateFolder)
	api.GET("/folders/:id", h.GetFolder)
	api.PUT("/folders/:id", h.UpdateFolder)
	api.DELETE("/folders/:id", h.DeleteFolder)
	api.GET("/folders/:id/todos", h.ListFolderTodos)
	api.POST("/folders/:id/todos", h.CreateFolderTodo)
}
