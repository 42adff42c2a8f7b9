package model

import "time"

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	APIToken  string    `gorm:"uniqueIndex;size:36;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
