package service

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/repository"
)

type PostService struct {
	postRepo  repository.PostRepository
	boardRepo repository.BoardRepository
}

func NewPostService(postRepo repository.PostRepository, boardRepo repository.BoardRepository) *PostService {
	return &PostService{postRepo: postRepo, boardRepo: boardRepo}
}

type CreatePostInput struct {
	Title      string
	Content    string
	Tags       datatypes.JSON
	BoardID    uint
	CategoryID uint
}

type UpdatePostInput struct {
	Title   string
	Content string
	Tags    datatypes.JSON
}

func (s *PostService) Create(ctx context.Context, author *domain.User, input CreatePostInput) (*domain.Post, error) {
	if _, err := s.boardRepo.GetByID(ctx, input.BoardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBoardNotFound
		}
		return nil, err
	}

	post := &domain.Post{
		Title:      input.Title,
		Content:    input.Content,
		Tags:       input.Tags,
		BoardID:    input.BoardID,
		CategoryID: input.CategoryID,
		AuthorID:   author.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListByBoard(ctx context.Context, boardID uint, limit, offset int) ([]*domain.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.GetByBoardID(ctx, boardID, limit, offset)
}

// Update is permitted to the author or an admin.
func (s *PostService) Update(ctx context.Context, actor *domain.User, id uint, input UpdatePostInput) (*domain.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != actor.ID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	post.Title = input.Title
	post.Content = input.Content
	post.Tags = input.Tags
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, actor *domain.User, id uint) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != actor.ID && !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	return s.postRepo.Delete(ctx, id)
}
