package postgres

import (
	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.RefreshToken{},
		&domain.Board{},
		&domain.Category{},
		&domain.Post{},
		&domain.Visitor{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Board:        NewBoardRepository(db),
		Category:     NewCategoryRepository(db),
		Post:         NewPostRepository(db),
		Visitor:      NewVisitorRepository(db),
	}
}
