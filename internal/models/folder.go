package model

import "time"

type Folder struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string    `gorm:"size:36;index;not null" json:"owner_id"`
	Name      string    `gorm:"not null" json:"name"`
	Color     string    `gorm:"type:varchar(9);not null" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FolderSummary is a folder together with the number of todos it holds.
type FolderSummary struct {
	Folder
	TodoCount int64 `json:"todo_count"`
}
