package domain

import (
	"time"
)

// RefreshToken is the server-side record of an issued refresh token.
// Rows are never deleted; revocation is the only mutation and is
// one-way. A token is usable iff the row exists, Revoked is false and
// ExpiresAt has not passed.
type RefreshToken struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	UserEmail string    `json:"userEmail" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

func (RefreshToken) TableName() string {
	return "refresh_token"
}

// Active reports whether the token can still be exchanged at the given
// instant.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.Revoked && !now.After(t.ExpiresAt)
}
