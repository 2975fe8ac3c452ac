package postgres

import (
	"context"

	"github.com/devjh/commboard/internal/domain"
	"gorm.io/gorm"
)

type boardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *boardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) Create(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *boardRepository) GetByID(ctx context.Context, id uint) (*domain.Board, error) {
	var board domain.Board
	err := r.db.WithContext(ctx).First(&board, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) GetAll(ctx context.Context) ([]*domain.Board, error) {
	var boards []*domain.Board
	err := r.db.WithContext(ctx).Order("name ASC").Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *boardRepository) Update(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

func (r *boardRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Board{}, "id = ?", id).Error
}

func (r *boardRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Board{}).Count(&count).Error
	return count, err
}
