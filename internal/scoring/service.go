package scoring

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/core"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/profile"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
)

type Service struct {
	models   *scoremodel.Store
	profiles core.ProfileReader
}

func NewService(models *scoremodel.Store, profiles core.ProfileReader) *Service {
	return &Service{
		models:   models,
		profiles: profiles,
	}
}

// Score scores a request with the named model, or the default model when
// name is empty. Condition flags implied by the markers are filled in first.
func (s *Service) Score(name string, req Request) (Result, error) {
	m, err := s.models.Catalog().Get(name)
	if err != nil {
		return Result{}, err
	}
	req.Profile = profile.Resolve(req.Profile)
	return NewEngine(m).Score(req), nil
}

// ScoreBatch scores every request against one model snapshot.
func (s *Service) ScoreBatch(name string, reqs []Request) ([]Result, error) {
	m, err := s.models.Catalog().Get(name)
	if err != nil {
		return nil, err
	}
	resolved := make([]Request, len(reqs))
	for i, r := range reqs {
		r.Profile = profile.Resolve(r.Profile)
		resolved[i] = r
	}
	return NewEngine(m).ScoreBatch(resolved), nil
}

// ScoreForUser loads the user's stored profile and scores against it. A user
// without a profile is scored unconditioned.
func (s *Service) ScoreForUser(ctx context.Context, userID, name string, req Request) (Result, error) {
	req.Profile = nutrition.HealthProfile{UserID: userID}

	if s.profiles != nil {
		p, err := s.profiles.GetHealthProfile(ctx, userID)
		switch {
		case errors.Is(err, core.ErrProfileNotFound):
			log.Printf("[SCORING] no health profile for user %s, scoring unconditioned", userID)
		case err != nil:
			return Result{}, fmt.Errorf("load health profile: %w", err)
		default:
			req.Profile = *p
		}
	}

	return s.Score(name, req)
}
