package scoremodel

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Catalog is an immutable set of models addressed by name.
type Catalog struct {
	models      map[string]*Model
	defaultName string
}

// NewCatalog validates the models and indexes them by name. Later models
// replace earlier ones with the same name, which lets directory or database
// models override the built-in ones.
func NewCatalog(defaultName string, models ...*Model) (*Catalog, error) {
	c := &Catalog{
		models:      make(map[string]*Model, len(models)),
		defaultName: defaultName,
	}
	for _, m := range models {
		if m == nil {
			continue
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		c.models[m.Name] = m
	}
	if _, ok := c.models[defaultName]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrModelNotFound, defaultName)
	}
	return c, nil
}

// Get returns the named model, or the default model for an empty name.
func (c *Catalog) Get(name string) (*Model, error) {
	if name == "" {
		name = c.defaultName
	}
	m, ok := c.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	return m, nil
}

// Default returns the default model.
func (c *Catalog) Default() *Model {
	return c.models[c.defaultName]
}

func (c *Catalog) DefaultName() string {
	return c.defaultName
}

// Names lists model names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.models))
	for n := range c.models {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Store publishes catalogs to concurrent readers. Readers never block;
// publishing swaps the whole catalog.
type Store struct {
	current atomic.Pointer[Catalog]
}

func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Catalog returns the catalog in effect.
func (s *Store) Catalog() *Catalog {
	return s.current.Load()
}

// Publish replaces the catalog in effect.
func (s *Store) Publish(c *Catalog) {
	s.current.Store(c)
}
