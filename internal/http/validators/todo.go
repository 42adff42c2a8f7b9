package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "todo-folders.com/todo-folders/internal/data_models"
)

func ValidateCreateTodoRequest(c echo.Context, r *dto.CreateTodoRequest) error {
	if strings.TrimSpace(r.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	return c.Validate(r)
}

func ValidateEditTodoRequest(c echo.Context, r *dto.EditTodoRequest) error {
	if strings.TrimSpace(r.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	return c.Validate(r)
}

func ValidateToggleTodoRequest(c echo.Context, r *dto.ToggleTodoRequest) error {
	if r.IsCompleted == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "is_completed is required")
	}
	return c.Validate(r)
}
