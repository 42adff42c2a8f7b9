package dto

import model "todo-folders.com/todo-folders/internal/models"

type FolderRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type FolderResponse struct {
	Folder *model.Folder `json:"folder"`
}

type FolderListResponse struct {
	Count   int                   `json:"count"`
	Folders []model.FolderSummary `json:"folders"`
}

type FolderDeletedResponse struct {
	Folder       *model.Folder `json:"folder"`
	RemovedTodos int           `json:"removed_todos"`
	Warning      string        `json:"warning,omitempty"`
}
