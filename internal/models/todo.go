package model

import (
	"time"

	"todo-folders.com/todo-folders/internal/constants"
)

type Todo struct {
	ID               string             `gorm:"primaryKey;size:36" json:"id"`
	OwnerID          string             `gorm:"size:36;index;not null" json:"owner_id"`
	FolderID         *string            `gorm:"size:36;index" json:"folder_id,omitempty"`
	Text             string             `gorm:"not null" json:"text"`
	IsCompleted      bool               `gorm:"not null;default:false" json:"is_completed"`
	Priority         constants.Priority `gorm:"type:varchar(10);not null;default:medium" json:"priority"`
	DueDate          *time.Time         `json:"due_date,omitempty"`
	ReminderInterval int                `gorm:"not null;default:0" json:"reminder_interval"`
	ReminderID       *string            `gorm:"size:64" json:"reminder_id,omitempty"`
	Version          uint               `gorm:"not null;default:1" json:"version"`
	CreatedAt        time.Time          `json:"created_at"`
}

// HasReminder reports whether the todo references an active reminder.
func (t *Todo) HasReminder() bool {
	return t.ReminderID != nil && *t.ReminderID != ""
}
