package service

import (
	"context"

	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/repository"
)

type VisitorService struct {
	visitorRepo repository.VisitorRepository
}

func NewVisitorService(visitorRepo repository.VisitorRepository) *VisitorService {
	return &VisitorService{visitorRepo: visitorRepo}
}

// Touch records one visit for the identifier. The increment is atomic
// at the store level, so concurrent logins for the same identifier
// never lose counts.
func (s *VisitorService) Touch(ctx context.Context, identifier string) error {
	return s.visitorRepo.Increment(ctx, identifier)
}

func (s *VisitorService) Get(ctx context.Context, identifier string) (*domain.Visitor, error) {
	return s.visitorRepo.GetByIdentifier(ctx, identifier)
}

func (s *VisitorService) Total(ctx context.Context) (int64, error) {
	return s.visitorRepo.TotalCount(ctx)
}
