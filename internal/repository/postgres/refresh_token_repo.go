package postgres

import (
	"context"
	"time"

	"github.com/devjh/commboard/internal/domain"
	"gorm.io/gorm"
)

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *refreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByToken returns the row for the exact token string. It does not
// filter on revoked or expiry; callers that need an exchangeable
// token must check both (or use RevokeIfActive).
func (r *refreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var record domain.RefreshToken
	err := r.db.WithContext(ctx).First(&record, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Revoke is idempotent: revoking an already revoked row changes
// nothing and returns no error. ExpiresAt is never touched.
func (r *refreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("id = ?", id).
		Update("revoked", true).Error
}

// RevokeIfActive performs rotation's revocation step as one
// conditional UPDATE. The WHERE clause carries the full validity
// predicate, so two concurrent exchanges of the same token race on a
// single row update and the database lets exactly one through.
func (r *refreshTokenRepository) RevokeIfActive(ctx context.Context, token string, now time.Time) (*domain.RefreshToken, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("token = ? AND revoked = false AND expires_at > ?", token, now).
		Update("revoked", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrTokenInvalid
	}

	var record domain.RefreshToken
	if err := r.db.WithContext(ctx).First(&record, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
