package service

import (
	"context"

	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/repository"
)

type DashboardService struct {
	postRepo    repository.PostRepository
	boardRepo   repository.BoardRepository
	visitorRepo repository.VisitorRepository
}

func NewDashboardService(postRepo repository.PostRepository, boardRepo repository.BoardRepository, visitorRepo repository.VisitorRepository) *DashboardService {
	return &DashboardService{
		postRepo:    postRepo,
		boardRepo:   boardRepo,
		visitorRepo: visitorRepo,
	}
}

type DashboardStats struct {
	TotalPosts  int64          `json:"totalPosts"`
	TotalBoards int64          `json:"totalBoards"`
	TotalVisits int64          `json:"totalVisits"`
	RecentPosts []*domain.Post `json:"recentPosts"`
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	totalPosts, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalBoards, err := s.boardRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalVisits, err := s.visitorRepo.TotalCount(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.postRepo.GetRecent(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalPosts:  totalPosts,
		TotalBoards: totalBoards,
		TotalVisits: totalVisits,
		RecentPosts: recent,
	}, nil
}
