package dto

import (
	"time"

	model "todo-folders.com/todo-folders/internal/models"
)

type CreateTodoRequest struct {
	Text             string     `json:"text" validate:"required,max=500"`
	Priority         string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	ReminderInterval int        `json:"reminder_interval" validate:"gte=0,lte=525600"`
	DueDate          *time.Time `json:"due_date"`
	FolderID         *string    `json:"folder_id" validate:"omitempty,uuid"`
}

// EditTodoRequest is the edit form payload. PriorReminderID is the
// reminder_id the client had when the form was opened.
type EditTodoRequest struct {
	Text             string     `json:"text" validate:"required,max=500"`
	Priority         string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	ReminderInterval int        `json:"reminder_interval" validate:"gte=0,lte=525600"`
	DueDate          *time.Time `json:"due_date"`
	PriorReminderID  *string    `json:"prior_reminder_id"`
}

type ToggleTodoRequest struct {
	IsCompleted *bool `json:"is_completed" validate:"required"`
}

type TodoResponse struct {
	Todo    *model.Todo `json:"todo"`
	Warning string      `json:"warning,omitempty"`
}

type TodoListResponse struct {
	Count int          `json:"count"`
	Todos []model.Todo `json:"todos"`
}
