package profile

import (
	"context"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
)

// Service adapts stored profiles to the scorer's ProfileReader port.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetHealthProfile(ctx context.Context, userID string) (*nutrition.HealthProfile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	hp := p.HealthProfile()
	return &hp, nil
}
