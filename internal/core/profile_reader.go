package core

import (
	"context"
	"errors"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
)

var ErrProfileNotFound = errors.New("health profile not found")

// ProfileReader supplies the health profile of a user. Implementations return
// ErrProfileNotFound when the user has none.
type ProfileReader interface {
	GetHealthProfile(ctx context.Context, userID string) (*nutrition.HealthProfile, error)
}
