package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Board struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Post struct {
	ID         uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title      string         `json:"title" gorm:"not null"`
	Content    string         `json:"content" gorm:"type:text"`
	Tags       datatypes.JSON `json:"tags"`
	BoardID    uint           `json:"boardId" gorm:"index;not null"`
	CategoryID uint           `json:"categoryId" gorm:"index"`
	AuthorID   uint           `json:"authorId" gorm:"index;not null"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
