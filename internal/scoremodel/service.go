package scoremodel

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

var ErrReadOnly = errors.New("model publishing is not configured")

// Summary describes a model without its tables.
type Summary struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Default     bool   `json:"default"`
}

type Service struct {
	store       *Store
	repo        Repository
	sources     []Source
	defaultName string

	reloadMu sync.Mutex
}

// NewService manages the catalog in store. repo may be nil, in which case
// Publish fails with ErrReadOnly.
func NewService(store *Store, repo Repository, defaultName string, sources ...Source) *Service {
	return &Service{
		store:       store,
		repo:        repo,
		sources:     sources,
		defaultName: defaultName,
	}
}

// Reload rebuilds the catalog from the sources and publishes it. On error
// the catalog in effect is kept.
func (s *Service) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	c, err := LoadCatalog(ctx, s.defaultName, s.sources...)
	if err != nil {
		return fmt.Errorf("reload models: %w", err)
	}
	s.store.Publish(c)
	log.Printf("[MODELS] catalog published: %v (default %s)", c.Names(), c.DefaultName())
	return nil
}

// Publish validates and stores a model, then reloads the catalog. Once the
// record is saved the publish has succeeded: a failed reload is logged and
// the model goes live on the next successful reload.
func (s *Service) Publish(ctx context.Context, m *Model) (*Record, error) {
	if s.repo == nil {
		return nil, ErrReadOnly
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	rec := NewRecord(m)
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.Reload(ctx); err != nil {
		log.Printf("[MODELS] %s saved, catalog not refreshed: %v", rec.Name, err)
	}
	return rec, nil
}

func (s *Service) List() []Summary {
	c := s.store.Catalog()
	out := make([]Summary, 0)
	for _, name := range c.Names() {
		m, _ := c.Get(name)
		out = append(out, Summary{
			Name:        m.Name,
			Version:     m.Version,
			Description: m.Description,
			Default:     name == c.DefaultName(),
		})
	}
	return out
}

func (s *Service) Get(name string) (*Model, error) {
	return s.store.Catalog().Get(name)
}
