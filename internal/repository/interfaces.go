package repository

import (
	"context"
	"time"

	"github.com/devjh/commboard/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	// Revoke flips the revoked flag on a row. Revoking an already
	// revoked row is a no-op, not an error.
	Revoke(ctx context.Context, id uint) error
	// RevokeIfActive revokes the row for the given token string only
	// if it is not yet revoked and not expired at now, as a single
	// conditional update. Returns the revoked row, or
	// domain.ErrTokenInvalid when no row qualified. Under concurrent
	// calls with the same token at most one caller succeeds.
	RevokeIfActive(ctx context.Context, token string, now time.Time) (*domain.RefreshToken, error)
}

type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	GetByID(ctx context.Context, id uint) (*domain.Board, error)
	GetAll(ctx context.Context) ([]*domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uint) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint) error
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uint) (*domain.Post, error)
	GetByBoardID(ctx context.Context, boardID uint, limit, offset int) ([]*domain.Post, error)
	GetRecent(ctx context.Context, limit int) ([]*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type VisitorRepository interface {
	// Increment bumps the counter for the identifier, inserting the
	// row if it does not exist yet. Must be atomic so concurrent
	// increments never lose updates.
	Increment(ctx context.Context, identifier string) error
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Visitor, error)
	TotalCount(ctx context.Context) (int64, error)
}

type Repositories struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Board        BoardRepository
	Category     CategoryRepository
	Post         PostRepository
	Visitor      VisitorRepository
}
