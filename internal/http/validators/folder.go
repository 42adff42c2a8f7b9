package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "todo-folders.com/todo-folders/internal/data_models"
)

func ValidateFolderRequest(c echo.Context, r *dto.FolderRequest) error {
	if strings.TrimSpace(r.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "folder name is required")
	}
	return c.Validate(r)
}
