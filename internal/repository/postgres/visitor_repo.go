package postgres

import (
	"context"
	"time"

	"github.com/devjh/commboard/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type visitorRepository struct {
	db *gorm.DB
}

func NewVisitorRepository(db *gorm.DB) *visitorRepository {
	return &visitorRepository{db: db}
}

// Increment is a single INSERT ... ON CONFLICT DO UPDATE, so
// concurrent increments for the same identifier serialize in the
// database and none are lost.
func (r *visitorRepository) Increment(ctx context.Context, identifier string) error {
	visitor := &domain.Visitor{
		Identifier: identifier,
		Count:      1,
		UpdatedAt:  time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "identifier"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":      gorm.Expr("visitors.count + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(visitor).Error
}

func (r *visitorRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Visitor, error) {
	var visitor domain.Visitor
	err := r.db.WithContext(ctx).First(&visitor, "identifier = ?", identifier).Error
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (r *visitorRepository) TotalCount(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.Visitor{}).
		Select("COALESCE(SUM(count), 0)").
		Scan(&total).Error
	return total, err
}
