package domain

import (
	"time"
)

// Visitor is a per-identifier visit counter. Increments must go
// through an atomic increment-or-insert so concurrent logins for the
// same identifier never lose updates.
type Visitor struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Identifier string    `json:"identifier" gorm:"uniqueIndex;not null"`
	Count      int64     `json:"count" gorm:"not null;default:0"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
