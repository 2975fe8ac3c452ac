package service

import (
	"github.com/devjh/commboard/internal/config"
	"github.com/devjh/commboard/internal/repository"
	"github.com/devjh/commboard/internal/token"
)

type Services struct {
	Auth      *AuthService
	Post      *PostService
	Board     *BoardService
	Category  *CategoryService
	Visitor   *VisitorService
	Dashboard *DashboardService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	visitor := NewVisitorService(repos.Visitor)

	return &Services{
		Auth:      NewAuthService(repos.User, repos.RefreshToken, visitor, issuer),
		Post:      NewPostService(repos.Post, repos.Board),
		Board:     NewBoardService(repos.Board),
		Category:  NewCategoryService(repos.Category),
		Visitor:   visitor,
		Dashboard: NewDashboardService(repos.Post, repos.Board, repos.Visitor),
	}
}
