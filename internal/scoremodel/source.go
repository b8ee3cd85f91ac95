package scoremodel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source yields models to publish. Later sources override earlier ones by
// name when a catalog is assembled.
type Source interface {
	Load(ctx context.Context) ([]*Model, error)
}

// BuiltinSource yields the models compiled into the binary.
type BuiltinSource struct{}

func (BuiltinSource) Load(ctx context.Context) ([]*Model, error) {
	return Builtin(), nil
}

// DirSource reads every *.json file in a directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Load(ctx context.Context) ([]*Model, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read model dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]*Model, 0, len(names))
	for _, name := range names {
		m, err := LoadFile(filepath.Join(s.Dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// LoadFile decodes and validates one model file.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// RepositorySource yields the models published to a repository.
type RepositorySource struct {
	Repo Repository
}

func (s RepositorySource) Load(ctx context.Context) ([]*Model, error) {
	records, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Model, 0, len(records))
	for _, r := range records {
		out = append(out, r.Model)
	}
	return out, nil
}

// ObjectStore is the subset of a bucket client needed to distribute model
// bundles.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Fetch(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// ObjectSource reads every *.json object under a prefix.
type ObjectSource struct {
	Store  ObjectStore
	Prefix string
}

func (s ObjectSource) Load(ctx context.Context) ([]*Model, error) {
	keys, err := s.Store.List(ctx, s.Prefix)
	if err != nil {
		return nil, fmt.Errorf("list model objects: %w", err)
	}
	sort.Strings(keys)

	var out []*Model
	for _, key := range keys {
		if !strings.HasSuffix(strings.ToLower(key), ".json") {
			continue
		}
		body, err := s.Store.Fetch(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", key, err)
		}
		m, err := DecodeBytes(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// ObjectKey is where a model bundle lives under a prefix.
func ObjectKey(prefix, name string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + name + ".json"
}

// LoadCatalog builds a catalog from the sources in order.
func LoadCatalog(ctx context.Context, defaultName string, sources ...Source) (*Catalog, error) {
	var all []*Model
	for _, src := range sources {
		models, err := src.Load(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, models...)
	}
	return NewCatalog(defaultName, all...)
}
