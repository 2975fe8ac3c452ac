package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/repository"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) Create(ctx context.Context, actor *domain.User, name string) (*domain.Category, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	category := &domain.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

func (s *CategoryService) Update(ctx context.Context, actor *domain.User, id uint, name string) (*domain.Category, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, actor *domain.User, id uint) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
