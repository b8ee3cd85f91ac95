package profile

import (
	"context"
	"sync"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/core"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		profiles: make(map[string]*Profile),
	}
}

// Put stores a copy of p. Used by tests and local seeding.
func (r *MemoryRepository) Put(p *Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.profiles[p.UserID] = &cp
}

func (r *MemoryRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, core.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}
