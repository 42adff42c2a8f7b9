package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "todo-folders.com/todo-folders/internal/data_models"
	apperrors "todo-folders.com/todo-folders/internal/errors"
	"todo-folders.com/todo-folders/internal/http/validators"
)

func (h *Handler) CreateFolder(c echo.Context) error {
	var req dto.FolderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidJSON.Message)
	}
	if err := validators.ValidateFolderRequest(c, &req); err != nil {
		return err
	}

	folder, err := h.folderService.CreateFolder(c.Request().Context(), ownerID(c), req.Name, req.Color)
	if err != nil {
		return httpError(err, "failed to create folder")
	}

	return c.JSON(http.StatusCreated, dto.FolderResponse{Folder: folder})
}

func (h *Handler) GetFolder(c echo.Context) error {
	folder, err := h.folderService.GetFolder(c.Request().Context(), ownerID(c), c.Param("id"))
	if err != nil {
		return httpError(err, "failed to load folder")
	}

	return c.JSON(http.StatusOK, dto.FolderResponse{Folder: folder})
}

func (h *Handler) ListFolders(c echo.Context) error {
	folders, err := h.folderService.ListFolders(c.Request().Context(), ownerID(c))
	if err != nil {
		return httpError(err, "failed to list folders")
	}

	return c.JSON(http.StatusOK, dto.FolderListResponse{Count: len(folders), Folders: folders})
}

func (h *Handler) UpdateFolder(c echo.Context) error {
	var req dto.FolderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidJSON.Message)
	}
	if err := validators.ValidateFolderRequest(c, &req); err != nil {
		return err
	}

	folder, err := h.folderService.UpdateFolder(c.Request().Context(), ownerID(c), c.Param("id"), req.Name, req.Color)
	if err != nil {
		return httpError(err, "failed to update folder")
	}

	return c.JSON(http.StatusOK, dto.FolderResponse{Folder: folder})
}

func (h *Handler) DeleteFolder(c echo.Context) error {
	deletion, err := h.folderService.DeleteFolder(c.Request().Context(), ownerID(c), c.Param("id"))
	if err != nil {
		return httpError(err, "failed to delete folder")
	}

	resp := dto.FolderDeletedResponse{Folder: deletion.Folder, RemovedTodos: deletion.RemovedTodos}
	if deletion.Warning != nil {
		resp.Warning = deletion.Warning.Error()
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListFolderTodos(c echo.Context) error {
	todos, err := h.todoService.ListFolderTodos(c.Request().Context(), ownerID(c), c.Param("id"))
	if err != nil {
		return httpError(err, "failed to list folder todos")
	}

	return c.JSON(http.StatusOK, dto.TodoListResponse{Count: len(todos), Todos: todos})
}
