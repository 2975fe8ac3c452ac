package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/repository"
)

type BoardService struct {
	boardRepo repository.BoardRepository
}

func NewBoardService(boardRepo repository.BoardRepository) *BoardService {
	return &BoardService{boardRepo: boardRepo}
}

func (s *BoardService) Create(ctx context.Context, actor *domain.User, name, description string) (*domain.Board, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	board := &domain.Board{Name: name, Description: description}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) Get(ctx context.Context, id uint) (*domain.Board, error) {
	board, err := s.boardRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBoardNotFound
		}
		return nil, err
	}
	return board, nil
}

func (s *BoardService) List(ctx context.Context) ([]*domain.Board, error) {
	return s.boardRepo.GetAll(ctx)
}

func (s *BoardService) Update(ctx context.Context, actor *domain.User, id uint, name, description string) (*domain.Board, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	board, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	board.Name = name
	board.Description = description
	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) Delete(ctx context.Context, actor *domain.User, id uint) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.boardRepo.Delete(ctx, id)
}
